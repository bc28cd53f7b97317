package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spigell/hr-screener/internal/screening"
)

func TestResultFileName(t *testing.T) {
	finished := time.Date(2026, time.January, 28, 9, 5, 7, 0, time.UTC)

	tests := []struct {
		name  string
		state State
		want  string
	}{
		{
			name: "named candidate",
			state: State{
				CandidateID: "3f1c2a9e-1111-2222-3333-444455556666",
				Profile:     &screening.CandidateProfile{Contact: screening.ContactInfo{Name: "Jane  O'Doe"}},
				FinishedAt:  finished,
			},
			want: "jane_o_doe_3f1c2a9e_20260128_090507.json",
		},
		{
			name:  "no profile",
			state: State{FinishedAt: finished},
			want:  "unknown_candidate_20260128_090507.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResultFileName(tt.state); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	score, err := screening.NewScreeningScore(90, "fit", nil, nil, 100)
	if err != nil {
		t.Fatalf("building score: %v", err)
	}

	s := State{
		CandidateID: "c-1",
		ResumeText:  "secret resume text",
		Score:       &score,
		Decision:    DecisionAccept,
		CurrentStep: StepCompleted,
		FinishedAt:  time.Now(),
	}

	path, err := WriteResult(dir, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding result: %v", err)
	}

	if decoded["final_decision"] != "accept" || decoded["current_step"] != "completed" {
		t.Fatalf("unexpected result: %v", decoded)
	}
	if _, ok := decoded["ResumeText"]; ok {
		t.Fatalf("resume text must not be written")
	}
	if score := decoded["screening_score"].(map[string]any); score["classification"] != "Strong Fit" {
		t.Fatalf("unexpected score: %v", score)
	}
}
