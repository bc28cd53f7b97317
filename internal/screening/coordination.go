package screening

import (
	"errors"
	"strings"
)

var ErrEmptyEmail = errors.New("email template must have a subject and a body")

type InterviewQuestion struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	Reasoning string `json:"reasoning"`
}

type EmailTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Tone    string `json:"tone,omitempty"`
}

func (e EmailTemplate) Validate() error {
	if strings.TrimSpace(e.Subject) == "" || strings.TrimSpace(e.Body) == "" {
		return ErrEmptyEmail
	}
	return nil
}

// Coordination is the output of either coordination branch.
type Coordination struct {
	Questions    []InterviewQuestion `json:"interview_questions"`
	Email        EmailTemplate       `json:"email_template"`
	Slots        []InterviewSlot     `json:"interview_slots"`
	Interviewers []string            `json:"recommended_interviewers"`
	// Booked reports whether the first slot was durably recorded.
	Booked bool `json:"booked"`
}

// BookedSlot returns the slot advertised to the candidate, if any.
func (c *Coordination) BookedSlot() (InterviewSlot, bool) {
	if c == nil || len(c.Slots) == 0 {
		return InterviewSlot{}, false
	}
	return c.Slots[0], true
}
