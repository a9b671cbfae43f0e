package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "LLM_PROVIDER", "LLM_MODEL", "LLM_MAX_TOKENS", "CHAT_HISTORY_WINDOW", "CORS_ALLOWED_ORIGINS", "OTEL_ENABLED", "NATS_URL"} {
		// Setenv restores the original value after the test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "anthropic", cfg.Ai.LLMProvider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Ai.LLMModel)
	assert.Equal(t, "http://localhost:3000,http://127.0.0.1:3000", cfg.App.CorsAllowedOrigins)
	assert.Equal(t, 1000, cfg.Ai.MaxTokens)
	assert.Equal(t, 10, cfg.Ai.HistoryWindow)
	assert.False(t, cfg.Telemetry.OtelEnabled)
	assert.Empty(t, cfg.Events.NatsURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MAX_TOKENS", "512")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("CHAT_HISTORY_WINDOW", "16")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.Equal(t, 512, cfg.Ai.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 1e-9)
	assert.Equal(t, 16, cfg.Ai.HistoryWindow)
	assert.Equal(t, "sk-test", cfg.Ai.LLMAPIKey)
	assert.True(t, cfg.Telemetry.OtelEnabled)
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
