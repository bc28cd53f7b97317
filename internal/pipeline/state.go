package pipeline

import (
	"time"

	"github.com/spigell/hr-screener/internal/screening"
)

// Step is the position of a run in the state machine
// start -> analyzed -> coordinated -> completed, with failed absorbing.
type Step string

const (
	StepStart       Step = "start"
	StepAnalyzed    Step = "analyzed"
	StepCoordinated Step = "coordinated"
	StepCompleted   Step = "completed"
	StepFailed      Step = "failed"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
	DecisionReview Decision = "review"
	// DecisionNone marks a run that has not been routed yet.
	DecisionNone Decision = "none"
)

// State is the single record a run carries through every stage.
type State struct {
	CandidateID string                `json:"candidate_id"`
	ResumeText  string                `json:"-"`
	Job         *screening.JobProfile `json:"job_requirements"`

	Profile      *screening.CandidateProfile `json:"resume_analysis,omitempty"`
	Score        *screening.ScreeningScore   `json:"screening_score,omitempty"`
	Coordination *screening.Coordination     `json:"interview_coordination,omitempty"`

	Decision    Decision `json:"final_decision"`
	HumanReview bool     `json:"requires_human_review"`
	CurrentStep Step     `json:"current_step"`
	Error       string   `json:"error,omitempty"`
	Err         error    `json:"-"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewState(candidateID, resumeText string, job *screening.JobProfile) State {
	return State{
		CandidateID: candidateID,
		ResumeText:  resumeText,
		Job:         job,
		Decision:    DecisionNone,
		CurrentStep: StepStart,
	}
}

// CandidateName returns the extracted candidate name or a placeholder.
func (s *State) CandidateName() string {
	return s.Profile.DisplayName()
}

func (s *State) Failed() bool {
	return s.CurrentStep == StepFailed
}
