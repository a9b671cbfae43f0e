package factory

import (
	"fmt"

	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/llm/anthropic"
	"portfolio-chat-be/pkg/llm/ollama"
	"portfolio-chat-be/pkg/llm/openai"
)

// ProviderConfig carries what a concrete adapter needs; it is filled from config.AIConfig.
type ProviderConfig struct {
	Provider    string // "anthropic", "openai", "ollama"
	Model       string
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	defaults := llm.Options{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	switch cfg.Provider {
	case "anthropic", "claude":
		provider, err := anthropic.NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, defaults)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "openai":
		provider, err := openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, defaults)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, defaults), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
