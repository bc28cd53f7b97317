package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hr-screener/internal/scheduling"
)

func TestDumpConfig(t *testing.T) {
	config := &Config{
		JobFile:    "examples/job.yaml",
		Scheduling: scheduling.DefaultConfig(),
		AI: &AIConfig{
			Provider: "gemini",
			Gemini:   &GeminiConfig{APIKey: "AIza-secret", Model: "gemini-2.5-flash"},
		},
	}

	out, err := dumpConfig(config)
	require.NoError(t, err)

	assert.Contains(t, out, "examples/job.yaml")
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, redacted)
	assert.NotContains(t, out, "AIza-secret")

	assert.Equal(t, "AIza-secret", config.AI.Gemini.APIKey, "the loaded config must keep the real key")
}

func TestDumpConfigWithoutAI(t *testing.T) {
	out, err := dumpConfig(&Config{Scheduling: scheduling.DefaultConfig()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, redacted)
}
