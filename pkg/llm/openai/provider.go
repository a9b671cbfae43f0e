package openai

import (
	"context"
	"fmt"
	"math"

	"portfolio-chat-be/pkg/llm"

	openaigo "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions API
// (OpenAI, OpenRouter, the HuggingFace router, vLLM...).
type OpenAIProvider struct {
	client   *openaigo.Client
	model    string
	defaults llm.Options
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, model string, defaults llm.Options) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	config := openaigo.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if defaults.MaxTokens == 0 {
		defaults.MaxTokens = 500
	}
	return &OpenAIProvider{
		client:   openaigo.NewClientWithConfig(config),
		model:    model,
		defaults: defaults,
	}, nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(p.defaults, options...)

	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	messages := make([]openaigo.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    toOpenAIRole(msg.Role),
			Content: msg.Content,
		})
	}

	req := openaigo.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: temperature(opts.Temperature),
	}
	if opts.JSONOutput {
		req.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: openai chat completion: %v", llm.ErrProviderFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices from openai api", llm.ErrProviderFailed)
	}

	return resp.Choices[0].Message.Content, nil
}

// temperature maps 0 to the smallest positive float32: go-openai omits a zero
// temperature and the API would fall back to its default of 1.
func temperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func toOpenAIRole(role string) string {
	switch role {
	case llm.RoleSystem:
		return openaigo.ChatMessageRoleSystem
	case llm.RoleAssistant:
		return openaigo.ChatMessageRoleAssistant
	default:
		return openaigo.ChatMessageRoleUser
	}
}
