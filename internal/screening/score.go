package screening

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScore is returned when a score falls outside its allowed ranges.
var ErrInvalidScore = errors.New("invalid screening score")

type Classification string

const (
	StrongFit   Classification = "Strong Fit"
	ModerateFit Classification = "Moderate Fit"
	NotSuitable Classification = "Not Suitable"
)

const (
	StrongFitThreshold   = 75
	ModerateFitThreshold = 50
)

// Classify maps a score onto its classification.
func Classify(score int) Classification {
	switch {
	case score >= StrongFitThreshold:
		return StrongFit
	case score >= ModerateFitThreshold:
		return ModerateFit
	default:
		return NotSuitable
	}
}

type ScreeningScore struct {
	Score                int            `json:"score"`
	Classification       Classification `json:"classification"`
	Reasoning            string         `json:"reasoning"`
	Strengths            []string       `json:"strengths"`
	Gaps                 []string       `json:"gaps"`
	SkillMatchPercentage float64        `json:"skill_match_percentage"`
}

// NewScreeningScore builds a score whose classification is always derived from
// the numeric score. Out-of-range values are rejected, never clamped.
func NewScreeningScore(score int, reasoning string, strengths, gaps []string, skillMatch float64) (ScreeningScore, error) {
	if score < 0 || score > 100 {
		return ScreeningScore{}, fmt.Errorf("%w: score %d is outside 0..100", ErrInvalidScore, score)
	}
	if math.IsNaN(skillMatch) || skillMatch < 0 || skillMatch > 100 {
		return ScreeningScore{}, fmt.Errorf("%w: skill match %.2f is outside 0..100", ErrInvalidScore, skillMatch)
	}

	return ScreeningScore{
		Score:                score,
		Classification:       Classify(score),
		Reasoning:            reasoning,
		Strengths:            strengths,
		Gaps:                 gaps,
		SkillMatchPercentage: skillMatch,
	}, nil
}
