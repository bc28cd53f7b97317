package gemini

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/screening"
)

var (
	//go:embed prompts/question.md
	questionPrompt string
	//go:embed prompts/invitation.md
	invitationPrompt string
	//go:embed prompts/rejection.md
	rejectionPrompt string
)

var (
	_ ai.Analyzer  = (*Analyzer)(nil)
	_ ai.Generator = (*Generator)(nil)
)

// QuestionCategories is the order in which interview questions are asked for.
var QuestionCategories = []string{
	"Technical", "Technical", "Technical",
	"Behavioral", "Behavioral",
	"Experience", "Experience",
	"Problem-Solving",
}

// Generator writes interview questions and candidate emails with Gemini.
type Generator struct {
	generator contentGenerator
	company   ai.Company
	logger    *zap.Logger
}

func NewGenerator(generator contentGenerator, company ai.Company, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{generator: generator, company: company, logger: logger}
}

// Questions asks for one question per category, up to count. A category
// that fails is logged and skipped; an error is returned only when every
// category failed.
func (g *Generator) Questions(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore, count int) ([]screening.InterviewQuestion, error) {
	questions := []screening.InterviewQuestion{}
	if count <= 0 {
		return questions, nil
	}
	if count > len(QuestionCategories) {
		count = len(QuestionCategories)
	}

	var lastErr error
	for _, category := range QuestionCategories[:count] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := g.generator.GenerateContent(ctx, questionPrompt, buildQuestionMessage(candidate, job, score, category), generatorTemperature)
		if err == nil {
			var q screening.InterviewQuestion
			if err = decodeResponse(raw, &q); err == nil && strings.TrimSpace(q.Question) == "" {
				err = errors.New("empty question")
			}
			if err == nil {
				if q.Category == "" {
					q.Category = category
				}
				questions = append(questions, q)
				continue
			}
		}

		lastErr = err
		g.logger.Warn("failed to generate interview question",
			zap.String("category", category),
			zap.Error(err),
		)
	}

	if len(questions) == 0 && lastErr != nil {
		return nil, fmt.Errorf("generate interview questions: %w", lastErr)
	}

	g.logger.Info("interview questions generated", zap.Int("count", len(questions)))
	return questions, nil
}

func (g *Generator) Invitation(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore, slot *screening.InterviewSlot) (screening.EmailTemplate, error) {
	slotText := "No slot is available yet; the team will follow up with a proposed time."
	duration := screening.FormatDuration(screening.DefaultDurationMinutes)
	if slot != nil {
		slotText = slot.String()
		if slot.DurationMinutes > 0 {
			duration = screening.FormatDuration(slot.DurationMinutes)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", candidateName(candidate))
	fmt.Fprintf(&b, "Position: %s\n", jobTitle(job))
	fmt.Fprintf(&b, "Candidate strengths: %s\n\n", joinOr(score.Strengths, 2, "relevant experience"))
	fmt.Fprintf(&b, "Scheduled interview time slot:\n%s\n\n", slotText)
	fmt.Fprintf(&b, "Duration: %s\n\n", duration)
	b.WriteString("Create an engaging invitation email with the scheduled interview time and ask them to confirm their availability.")

	return g.email(ctx, "invitation", invitationPrompt, b.String())
}

func (g *Generator) Rejection(ctx context.Context, candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore) (screening.EmailTemplate, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", candidateName(candidate))
	fmt.Fprintf(&b, "Position: %s\n", jobTitle(job))
	fmt.Fprintf(&b, "Feedback points: %s\n\n", joinOr(score.Gaps, 2, "role requirements"))
	b.WriteString("Create a respectful rejection email with constructive feedback and proper formatting.")

	return g.email(ctx, "rejection", rejectionPrompt, b.String())
}

func (g *Generator) email(ctx context.Context, kind, template, message string) (screening.EmailTemplate, error) {
	system := strings.ReplaceAll(template, "{{COMPANY_NAME}}", g.company.Name)
	system = strings.ReplaceAll(system, "{{SIGNATURE}}", g.company.Signature)

	raw, err := g.generator.GenerateContent(ctx, system, message, generatorTemperature)
	if err != nil {
		return screening.EmailTemplate{}, fmt.Errorf("generate %s email: %w", kind, err)
	}

	var email screening.EmailTemplate
	if err := decodeResponse(raw, &email); err != nil {
		return screening.EmailTemplate{}, fmt.Errorf("generate %s email: %w", kind, err)
	}
	if err := email.Validate(); err != nil {
		return screening.EmailTemplate{}, fmt.Errorf("generate %s email: %w", kind, err)
	}

	g.logger.Info("email generated", zap.String("kind", kind), zap.String("subject", email.Subject))
	return email, nil
}

func buildQuestionMessage(candidate *screening.CandidateProfile, job *screening.JobProfile, score screening.ScreeningScore, category string) string {
	var skills []string
	summary := ""
	if candidate != nil {
		skills = candidate.Skills
		summary = truncateRunes(candidate.Summary, 200)
	}
	var responsibilities []string
	if job != nil {
		responsibilities = job.Responsibilities
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Job: %s\n", jobTitle(job))
	fmt.Fprintf(&b, "Key responsibilities: %s\n\n", joinOr(responsibilities, 3, "not specified"))
	b.WriteString("Candidate background:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", joinOr(skills, 10, "none listed"))
	fmt.Fprintf(&b, "- Experience: %s\n", summary)
	fmt.Fprintf(&b, "- Strengths: %s\n", joinOr(score.Strengths, 3, "none identified"))
	fmt.Fprintf(&b, "- Areas to probe: %s\n\n", joinOr(score.Gaps, 2, "None identified"))
	fmt.Fprintf(&b, "Generate ONE %s interview question.", category)

	return b.String()
}

func candidateName(c *screening.CandidateProfile) string {
	if c == nil || strings.TrimSpace(c.Contact.Name) == "" {
		return "Candidate"
	}
	return strings.TrimSpace(c.Contact.Name)
}

func jobTitle(j *screening.JobProfile) string {
	if j == nil {
		return ""
	}
	return j.Title
}

func truncateRunes(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit])
}
