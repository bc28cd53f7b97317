package screening

import "strings"

type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	Year         string `json:"year,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
}

// CandidateProfile is the structured view of a résumé produced by the analyzer.
type CandidateProfile struct {
	Contact           ContactInfo  `json:"candidate_info"`
	Skills            []string     `json:"skills"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
	YearsOfExperience *float64     `json:"years_of_experience,omitempty"`
	Summary           string       `json:"summary"`
}

const unknownCandidate = "Unknown Candidate"

// DisplayName returns the candidate name or a placeholder.
func (c *CandidateProfile) DisplayName() string {
	if c == nil {
		return unknownCandidate
	}
	if name := strings.TrimSpace(c.Contact.Name); name != "" {
		return name
	}
	return unknownCandidate
}

// Years returns the total years of experience or zero when unknown.
func (c *CandidateProfile) Years() float64 {
	if c == nil || c.YearsOfExperience == nil {
		return 0
	}
	return *c.YearsOfExperience
}
