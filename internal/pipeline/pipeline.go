// Package pipeline moves one candidate through analysis, routing,
// coordination and finalization.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/retry"
	"github.com/spigell/hr-screener/internal/routing"
	"github.com/spigell/hr-screener/internal/scheduling"
	"github.com/spigell/hr-screener/internal/screening"
)

const (
	DefaultTimeout     = 5 * time.Minute
	DefaultConcurrency = 4
	DefaultQuestions   = 8
)

// ErrTimeout marks a run that ran out of time.
var ErrTimeout = errors.New("pipeline timed out")

type Config struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	Questions   int           `mapstructure:"questions"`
	Slots       int           `mapstructure:"slots"`

	Retry retry.Policy `mapstructure:"-"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Questions:   DefaultQuestions,
		Slots:       scheduling.DefaultSlots,
		Retry:       retry.DefaultPolicy(),
	}
}

// Allocator books interview slots for accepted candidates.
type Allocator interface {
	Allocate(ctx context.Context, candidate string, count int) ([]screening.InterviewSlot, bool)
}

// Stage is one ordered step of a run. Apply mutates the state and reports
// the step the run reached.
type Stage interface {
	Name() string
	Apply(ctx context.Context, s *State) (Update, error)
}

// Update describes the outcome of a stage.
type Update struct {
	Step   Step
	Fields []zap.Field
}

type Deps struct {
	Analyzer  ai.Analyzer
	Generator ai.Generator
	Allocator Allocator
	Router    routing.Router
	Logger    *zap.Logger
}

type Orchestrator struct {
	cfg    Config
	stages []Stage
	logger *zap.Logger
}

func New(cfg Config, deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Orchestrator{
		cfg: cfg,
		stages: []Stage{
			&analyzeStage{cfg: cfg, analyzer: deps.Analyzer, logger: deps.Logger},
			&coordinateStage{cfg: cfg, router: deps.Router, allocator: deps.Allocator, generator: deps.Generator, logger: deps.Logger},
			&finalizeStage{router: deps.Router, logger: deps.Logger},
		},
		logger: deps.Logger,
	}
}

// Stages returns the names of the configured stages in order.
func (o *Orchestrator) Stages() []string {
	names := make([]string, 0, len(o.stages))
	for _, stage := range o.stages {
		names = append(names, stage.Name())
	}
	return names
}

// Run executes every stage in order and always returns the resulting state.
// A failing stage moves the run to the failed step with a review decision;
// results produced before the failure are kept.
func (o *Orchestrator) Run(ctx context.Context, s State) State {
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	if s.CurrentStep == "" {
		s.CurrentStep = StepStart
	}
	if s.Decision == "" {
		s.Decision = DecisionNone
	}
	s.StartedAt = time.Now()

	log := o.logger.With(zap.String("candidate_id", s.CandidateID))
	log.Info("pipeline started")

	for _, stage := range o.stages {
		from := s.CurrentStep

		update, err := stage.Apply(ctx, &s)
		if err != nil {
			fail(ctx, &s, stage.Name(), err)
			log.Error("pipeline stage failed",
				zap.String("stage", stage.Name()),
				zap.String("from", string(from)),
				zap.Error(s.Err),
			)
			break
		}

		s.CurrentStep = update.Step
		log.Info("pipeline stage",
			append([]zap.Field{
				zap.String("stage", stage.Name()),
				zap.String("from", string(from)),
				zap.String("to", string(update.Step)),
			}, update.Fields...)...,
		)
	}

	s.FinishedAt = time.Now()
	return s
}

func fail(ctx context.Context, s *State, stage string, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	err = fmt.Errorf("%s: %w", stage, err)

	s.Err = err
	s.Error = err.Error()
	s.CurrentStep = StepFailed
	s.Decision = DecisionReview
	s.HumanReview = true
}
