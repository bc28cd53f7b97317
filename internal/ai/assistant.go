package ai

import (
	"context"

	"github.com/spigell/hr-screener/internal/screening"
)

// Analyzer turns résumé text into a candidate profile and scores it.
type Analyzer interface {
	ExtractProfile(ctx context.Context, resumeText string, job *screening.JobProfile) (*screening.CandidateProfile, error)
	Score(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile) (screening.ScreeningScore, error)
}

// Generator produces candidate-facing material. A nil slot on Invitation
// means no slot could be offered and the email must say a time follows.
type Generator interface {
	Questions(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore, count int) ([]screening.InterviewQuestion, error)
	Invitation(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore, slot *screening.InterviewSlot) (screening.EmailTemplate, error)
	Rejection(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore) (screening.EmailTemplate, error)
}

// Company is the sender identity injected into emails.
type Company struct {
	Name      string `mapstructure:"name"`
	Email     string `mapstructure:"email"`
	Signature string `mapstructure:"signature"`
}

func DefaultCompany() Company {
	return Company{
		Name:      "Zelora Tech",
		Email:     "hr@zeloratech.com",
		Signature: "Best regards,\nThe Zelora Tech Talent Team\nhr@zeloratech.com",
	}
}
