package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const resultTimeLayout = "20060102_150405"

// ResultFileName is "<candidate>_<id>_<finished>.json" with the candidate
// name reduced to lowercase letters, digits and underscores.
func ResultFileName(s State) string {
	name := slug(s.CandidateName())
	id := slug(s.CandidateID)
	if len(id) > 8 {
		id = id[:8]
	}

	parts := []string{name}
	if id != "" {
		parts = append(parts, id)
	}
	parts = append(parts, s.FinishedAt.Format(resultTimeLayout))

	return strings.Join(parts, "_") + ".json"
}

// WriteResult stores the state as indented JSON in dir and returns the path.
func WriteResult(dir string, s State) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}

	path := filepath.Join(dir, ResultFileName(s))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing result: %w", err)
	}

	return path, nil
}

func slug(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			underscore = false
		case !underscore && b.Len() > 0:
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
