package screening

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate []string
		required  []string
		expect    float64
	}{
		{name: "partial", candidate: []string{"Python", "LangGraph", "JavaScript"}, required: []string{"Python", "LangGraph", "LangChain"}, expect: 200.0 / 3},
		{name: "perfect", candidate: []string{"python", " Go "}, required: []string{"Python", "Go"}, expect: 100},
		{name: "none", candidate: []string{"Java"}, required: []string{"Python", "Go"}, expect: 0},
		{name: "nothing required", candidate: []string{"Java"}, required: nil, expect: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SkillMatch(tt.candidate, tt.required); math.Abs(got-tt.expect) > 0.001 {
				t.Fatalf("expected %.3f, got %.3f", tt.expect, got)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		30:  "30 minutes",
		60:  "1 hour",
		90:  "1 hour 30 minutes",
		120: "2 hours",
	}
	for minutes, expect := range cases {
		if got := FormatDuration(minutes); got != expect {
			t.Fatalf("%d: expected %q, got %q", minutes, expect, got)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	got := SanitizeText("\n    Line 1\n\n\n    Line 2\n\n    Line 3\n")
	if got != "Line 1\nLine 2\nLine 3" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}

func TestValidateResumeText(t *testing.T) {
	t.Parallel()

	valid := "John Doe\nExperience: 5 years\nSkills: Python, LangGraph\nEducation: BS Computer Science"
	if !ValidateResumeText(valid) {
		t.Fatalf("expected resume to be valid")
	}
	if ValidateResumeText("") || ValidateResumeText("Too short") {
		t.Fatalf("expected short text to be invalid")
	}
	if ValidateResumeText(strings.Repeat("lorem ipsum ", 10)) {
		t.Fatalf("expected text without indicators to be invalid")
	}
}

func TestLoadJobProfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "job.yaml")
	yamlDoc := "title: Backend Engineer\nrequired_skills: [Python, Go]\npreferred_skills: [Rust]\nmin_years_experience: 3\ndepartment: Platform\n"
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	job, err := LoadJobProfile(yamlPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Title != "Backend Engineer" || len(job.RequiredSkills) != 2 || job.MinYears() != 3 {
		t.Fatalf("unexpected job: %+v", job)
	}
	if got := job.AllSkills(); len(got) != 3 || got[2] != "Rust" {
		t.Fatalf("unexpected skills: %v", got)
	}

	jsonPath := filepath.Join(dir, "job.json")
	jsonDoc := `{"title": "AI Engineer", "required_skills": ["Python"], "department": "Engineering"}`
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if job, err = LoadJobProfile(jsonPath); err != nil || job.Department != "Engineering" {
		t.Fatalf("unexpected json load result: %+v, %v", job, err)
	}

	badPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("title: No Skills\n"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}
	if _, err := LoadJobProfile(badPath); err == nil {
		t.Fatalf("expected validation error")
	}
}
