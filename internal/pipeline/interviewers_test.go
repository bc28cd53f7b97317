package pipeline

import (
	"reflect"
	"testing"

	"github.com/spigell/hr-screener/internal/screening"
)

func TestSuggestInterviewers(t *testing.T) {
	years := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		job       *screening.JobProfile
		candidate *screening.CandidateProfile
		want      []string
	}{
		{
			name:      "non technical junior",
			job:       &screening.JobProfile{Title: "Account Manager", Department: "Sales"},
			candidate: &screening.CandidateProfile{YearsOfExperience: years(2)},
			want:      []string{"HR Manager", "Sales Lead"},
		},
		{
			name:      "technical senior",
			job:       &screening.JobProfile{Title: "Data Analyst"},
			candidate: &screening.CandidateProfile{YearsOfExperience: years(8)},
			want:      []string{"HR Manager", "Technical Lead", "Senior Team Member"},
		},
		{
			name:      "exactly five years",
			job:       &screening.JobProfile{Title: "Senior Developer", Department: "Platform"},
			candidate: &screening.CandidateProfile{YearsOfExperience: years(5)},
			want:      []string{"HR Manager", "Platform Lead", "Technical Lead"},
		},
		{
			name: "nothing known",
			want: []string{"HR Manager"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestInterviewers(tt.job, tt.candidate); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
