package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/ai/gemini"
	"github.com/spigell/hr-screener/internal/booking"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/pipeline"
	"github.com/spigell/hr-screener/internal/routing"
	"github.com/spigell/hr-screener/internal/scheduling"
	"github.com/spigell/hr-screener/internal/secrets"
)

func newAllocator(config *Config, log *zap.Logger) (*booking.FileStore, *scheduling.Allocator) {
	store := booking.NewFileStore(config.BookingsFile, log)
	return store, scheduling.NewAllocator(config.Scheduling, store, log)
}

func newOrchestrator(ctx context.Context, config *Config, log *zap.Logger) (*pipeline.Orchestrator, error) {
	analyzer, generator, err := newAI(ctx, config, log)
	if err != nil {
		return nil, fmt.Errorf("building ai: %w", err)
	}

	_, allocator := newAllocator(config, log)

	return pipeline.New(config.Pipeline, pipeline.Deps{
		Analyzer:  analyzer,
		Generator: generator,
		Allocator: allocator,
		Router:    routing.New(config.Routing),
		Logger:    log,
	}), nil
}

func newAI(ctx context.Context, config *Config, log *zap.Logger) (*gemini.Analyzer, *gemini.Generator, error) {
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  config.AI.Gemini.APIKeyFile,
		Value: config.AI.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey, config.AI.Gemini.Model, log)
	if err != nil {
		return nil, nil, err
	}

	aiLogger := logger.WithAI(log, gemini.Provider, client.Model())

	return gemini.NewAnalyzer(client, aiLogger), gemini.NewGenerator(client, config.Company, aiLogger), nil
}

func requireJob(config *Config) error {
	if strings.TrimSpace(config.JobFile) == "" {
		return errors.New("job profile is required: set job-file in the config or pass --job")
	}
	return nil
}
