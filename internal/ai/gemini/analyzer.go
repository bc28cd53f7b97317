package gemini

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

const (
	analyzerTemperature  = 0.1
	generatorTemperature = 0.3
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string, temperature float32) (string, error)
}

var (
	//go:embed prompts/extract.md
	extractPrompt string
	//go:embed prompts/score.md
	scorePrompt string
)

// Analyzer extracts candidate profiles and scores them with Gemini.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewAnalyzer(generator contentGenerator, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{generator: generator, logger: logger}
}

func (a *Analyzer) ExtractProfile(ctx context.Context, resumeText string, job *screening.JobProfile) (*screening.CandidateProfile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, errors.New("resume text is required")
	}

	title := ""
	if job != nil {
		title = job.Title
	}
	system := strings.ReplaceAll(extractPrompt, "{{JOB_TITLE}}", title)

	raw, err := a.generator.GenerateContent(ctx, system, "Resume:\n\n"+resumeText, analyzerTemperature)
	if err != nil {
		return nil, fmt.Errorf("extract profile: %w", err)
	}

	var profile screening.CandidateProfile
	if err := decodeResponse(raw, &profile); err != nil {
		return nil, fmt.Errorf("extract profile: %w", err)
	}
	if strings.TrimSpace(profile.Summary) == "" {
		return nil, errors.New("extract profile: model returned no summary")
	}

	a.logger.Info("resume data extracted",
		zap.String("candidate", profile.DisplayName()),
		zap.Int("skills", len(profile.Skills)),
		zap.Float64("years", profile.Years()),
	)

	return &profile, nil
}

type scoreResponse struct {
	Score     float64  `json:"score"`
	Reasoning string   `json:"reasoning"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// Score asks the model for a 0..100 score. The skill-match percentage is
// computed locally and both fed to the model and kept on the result.
func (a *Analyzer) Score(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile) (screening.ScreeningScore, error) {
	if candidate == nil {
		return screening.ScreeningScore{}, errors.New("candidate profile is required")
	}
	if err := job.Validate(); err != nil {
		return screening.ScreeningScore{}, err
	}

	skillMatch := screening.SkillMatch(candidate.Skills, job.AllSkills())

	raw, err := a.generator.GenerateContent(ctx, scorePrompt, buildScoreMessage(candidate, job, skillMatch), analyzerTemperature)
	if err != nil {
		return screening.ScreeningScore{}, fmt.Errorf("score candidate: %w", err)
	}

	var resp scoreResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return screening.ScreeningScore{}, fmt.Errorf("score candidate: %w", err)
	}

	value, err := integralScore(resp.Score)
	if err != nil {
		return screening.ScreeningScore{}, fmt.Errorf("score candidate: %w", err)
	}

	score, err := screening.NewScreeningScore(value, resp.Reasoning, resp.Strengths, resp.Gaps, skillMatch)
	if err != nil {
		return screening.ScreeningScore{}, fmt.Errorf("score candidate: %w", err)
	}

	a.logger.Info("candidate scored",
		zap.String("candidate", candidate.DisplayName()),
		zap.Int("score", score.Score),
		zap.String("classification", string(score.Classification)),
	)

	return score, nil
}

// integralScore accepts whole numbers in 0..100 only; 100.9 or -0.9 must not
// be truncated into range.
func integralScore(v float64) (int, error) {
	if math.IsNaN(v) || v != math.Trunc(v) || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: score %v is not a whole number in 0..100", screening.ErrInvalidScore, v)
	}
	return int(v), nil
}

func buildScoreMessage(candidate *screening.CandidateProfile, job *screening.JobProfile, skillMatch float64) string {
	education := make([]string, 0, len(candidate.Education))
	for _, e := range candidate.Education {
		education = append(education, fmt.Sprintf("%s from %s", e.Degree, e.Institution))
	}

	var b strings.Builder
	b.WriteString("Job requirements:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Required skills: %s\n", joinOr(job.RequiredSkills, 0, "none"))
	fmt.Fprintf(&b, "Preferred skills: %s\n", joinOr(job.PreferredSkills, 0, "none"))
	fmt.Fprintf(&b, "Min experience: %g years\n", job.MinYears())
	fmt.Fprintf(&b, "Education: %s\n\n", joinOr(job.EducationRequirements, 0, "not specified"))

	b.WriteString("Candidate profile:\n")
	fmt.Fprintf(&b, "Name: %s\n", candidate.DisplayName())
	fmt.Fprintf(&b, "Skills: %s\n", joinOr(candidate.Skills, 0, "none"))
	fmt.Fprintf(&b, "Experience: %g years\n", candidate.Years())
	fmt.Fprintf(&b, "Education: %s\n", joinOr(education, 0, "not specified"))
	fmt.Fprintf(&b, "Summary: %s\n\n", candidate.Summary)

	fmt.Fprintf(&b, "Calculated skill match: %.1f%%\n\n", math.Round(skillMatch*10)/10)
	b.WriteString("Provide a comprehensive screening evaluation.")

	return b.String()
}
