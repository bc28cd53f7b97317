package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/retry"
	"github.com/spigell/hr-screener/internal/routing"
	"github.com/spigell/hr-screener/internal/screening"
)

type analyzeStage struct {
	cfg      Config
	analyzer ai.Analyzer
	logger   *zap.Logger
}

func (a *analyzeStage) Name() string {
	return "analyze"
}

func (a *analyzeStage) Apply(ctx context.Context, s *State) (Update, error) {
	if err := s.Job.Validate(); err != nil {
		return Update{}, err
	}
	if strings.TrimSpace(s.ResumeText) == "" {
		return Update{}, errors.New("resume text is empty")
	}
	if a.analyzer == nil {
		return Update{}, errors.New("analyzer is not configured")
	}

	profile, err := retry.Do(ctx, a.cfg.Retry, a.logger, "extract profile",
		func(ctx context.Context) (*screening.CandidateProfile, error) {
			return a.analyzer.ExtractProfile(ctx, s.ResumeText, s.Job)
		})
	if err != nil {
		return Update{}, err
	}
	s.Profile = profile

	score, err := retry.Do(ctx, a.cfg.Retry, a.logger, "score candidate",
		func(ctx context.Context) (screening.ScreeningScore, error) {
			return a.analyzer.Score(ctx, profile, s.Job)
		})
	if err != nil {
		return Update{}, err
	}
	s.Score = &score

	return Update{
		Step: StepAnalyzed,
		Fields: append(logger.CandidateFields(profile.DisplayName(), s.CandidateID),
			zap.Int("score", score.Score),
			zap.String("classification", string(score.Classification)),
		),
	}, nil
}

type coordinateStage struct {
	cfg       Config
	router    routing.Router
	allocator Allocator
	generator ai.Generator
	logger    *zap.Logger
}

func (c *coordinateStage) Name() string {
	return "coordinate"
}

func (c *coordinateStage) Apply(ctx context.Context, s *State) (Update, error) {
	if s.Score == nil {
		return Update{}, errors.New("no screening score to route on")
	}
	if c.generator == nil {
		return Update{}, errors.New("generator is not configured")
	}

	path := c.router.Route(s.Score.Score)
	switch path {
	case routing.Accept:
		s.Decision = DecisionAccept
		return c.accept(ctx, s)
	default:
		s.Decision = DecisionReject
		return c.reject(ctx, s)
	}
}

func (c *coordinateStage) accept(ctx context.Context, s *State) (Update, error) {
	if c.allocator == nil {
		return Update{}, errors.New("allocator is not configured")
	}

	// The first slot is committed before anything is written to the candidate.
	slots, booked := c.allocator.Allocate(ctx, s.CandidateName(), c.cfg.Slots)
	coordination := &screening.Coordination{
		Slots:        slots,
		Interviewers: SuggestInterviewers(s.Job, s.Profile),
		Booked:       booked,
	}
	s.Coordination = coordination

	questions, err := retry.Do(ctx, c.cfg.Retry, c.logger, "generate questions",
		func(ctx context.Context) ([]screening.InterviewQuestion, error) {
			return c.generator.Questions(ctx, s.Profile, s.Job, *s.Score, c.cfg.Questions)
		})
	if err != nil {
		return Update{}, err
	}
	coordination.Questions = questions

	var slot *screening.InterviewSlot
	if first, ok := coordination.BookedSlot(); ok {
		slot = &first
	}

	email, err := retry.Do(ctx, c.cfg.Retry, c.logger, "generate invitation",
		func(ctx context.Context) (screening.EmailTemplate, error) {
			return c.generator.Invitation(ctx, s.Profile, s.Job, *s.Score, slot)
		})
	if err != nil {
		return Update{}, err
	}
	if err := email.Validate(); err != nil {
		return Update{}, fmt.Errorf("invitation: %w", err)
	}
	coordination.Email = email

	fields := []zap.Field{
		zap.String("decision", string(s.Decision)),
		zap.Int("slots", len(slots)),
		zap.Bool("booked", booked),
		zap.Int("questions", len(questions)),
	}
	if slot != nil {
		fields = append(fields, zap.String("slot", slot.String()))
	}

	return Update{Step: StepCoordinated, Fields: fields}, nil
}

func (c *coordinateStage) reject(ctx context.Context, s *State) (Update, error) {
	email, err := retry.Do(ctx, c.cfg.Retry, c.logger, "generate rejection",
		func(ctx context.Context) (screening.EmailTemplate, error) {
			return c.generator.Rejection(ctx, s.Profile, s.Job, *s.Score)
		})
	if err != nil {
		return Update{}, err
	}
	if err := email.Validate(); err != nil {
		return Update{}, fmt.Errorf("rejection: %w", err)
	}

	s.Coordination = &screening.Coordination{Email: email}

	return Update{
		Step:   StepCoordinated,
		Fields: []zap.Field{zap.String("decision", string(s.Decision))},
	}, nil
}

type finalizeStage struct {
	router routing.Router
	logger *zap.Logger
}

func (f *finalizeStage) Name() string {
	return "finalize"
}

func (f *finalizeStage) Apply(_ context.Context, s *State) (Update, error) {
	if s.Score == nil {
		s.HumanReview = true
		return Update{Step: StepCompleted}, nil
	}

	s.HumanReview = f.router.NeedsHumanReview(s.Score.Score, len(s.Score.Gaps))

	f.logger.Info("screening decision",
		append(logger.CandidateFields(s.CandidateName(), s.CandidateID),
			zap.Int("score", s.Score.Score),
			zap.String("classification", string(s.Score.Classification)),
			zap.String("decision", string(s.Decision)),
			zap.Bool("human_review", s.HumanReview),
		)...,
	)

	return Update{
		Step:   StepCompleted,
		Fields: []zap.Field{zap.Bool("human_review", s.HumanReview)},
	}, nil
}
