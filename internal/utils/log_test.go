package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "non-positive limit", input: "Jane Doe", limit: 0, want: ""},
		{name: "fits", input: "Jane Doe", limit: 20, want: "Jane Doe"},
		{name: "resume block is flattened", input: "Jane Doe\n\n  Go,\tKubernetes\n", limit: 50, want: "Jane Doe Go, Kubernetes"},
		{name: "cut does not end on a space", input: "Senior Go engineer", limit: 7, want: "Senior..."},
		{name: "counts runes", input: "Zoë Müller", limit: 3, want: "Zoë..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Preview(tt.input, tt.limit))
		})
	}
}
