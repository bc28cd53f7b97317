package screening

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidJob is returned for structurally invalid job profiles.
var ErrInvalidJob = errors.New("invalid job profile")

// JobProfile describes the position a candidate is screened against.
// It is shared read-only between runs once loaded.
type JobProfile struct {
	Title                 string   `yaml:"title" json:"title"`
	RequiredSkills        []string `yaml:"required_skills" json:"required_skills"`
	PreferredSkills       []string `yaml:"preferred_skills" json:"preferred_skills,omitempty"`
	MinYearsExperience    *float64 `yaml:"min_years_experience" json:"min_years_experience,omitempty"`
	EducationRequirements []string `yaml:"education_requirements" json:"education_requirements,omitempty"`
	Responsibilities      []string `yaml:"responsibilities" json:"responsibilities,omitempty"`
	Department            string   `yaml:"department" json:"department,omitempty"`
}

// Validate reports whether the profile can be screened against at all.
func (j *JobProfile) Validate() error {
	if j == nil {
		return fmt.Errorf("%w: job profile is required", ErrInvalidJob)
	}
	if strings.TrimSpace(j.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidJob)
	}
	if len(j.RequiredSkills) == 0 {
		return fmt.Errorf("%w: at least one required skill is expected", ErrInvalidJob)
	}
	return nil
}

// AllSkills returns required skills followed by preferred ones.
func (j *JobProfile) AllSkills() []string {
	skills := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	skills = append(skills, j.RequiredSkills...)
	return append(skills, j.PreferredSkills...)
}

// MinYears returns the minimum experience or zero when not set.
func (j *JobProfile) MinYears() float64 {
	if j == nil || j.MinYearsExperience == nil {
		return 0
	}
	return *j.MinYearsExperience
}

// LoadJobProfile reads a job profile from a YAML or JSON file.
func LoadJobProfile(path string) (*JobProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job profile %q: %w", path, err)
	}

	var job JobProfile
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing job profile %q: %w", path, err)
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job profile %q: %w", path, err)
	}

	return &job, nil
}
