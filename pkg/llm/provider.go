package llm

import (
	"context"
	"errors"
)

// ErrProviderFailed marks transport, timeout, quota and other provider-side failures.
// It is distinct from a provider that answered with text we could not parse.
var ErrProviderFailed = errors.New("llm provider failed")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	JSONOutput  bool   // ask for a single JSON object where the backend supports it
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithJSONOutput requests structured output. Backends without a JSON mode ignore it,
// so callers still have to extract the object from the reply.
func WithJSONOutput() Option {
	return func(o *Options) {
		o.JSONOutput = true
	}
}

// ApplyOptions folds opts over defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	// A leading "system" message carries the system prompt.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

// WithSystemPrompt returns the messages the pipelines hand to Chat: the system prompt first,
// then the conversation turns.
func WithSystemPrompt(systemPrompt string, turns []Message) []Message {
	messages := make([]Message, 0, len(turns)+1)
	if systemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	}
	return append(messages, turns...)
}

// SplitSystem separates system messages (joined) from conversation turns, for providers that
// take the system prompt as a separate field.
func SplitSystem(history []Message) (string, []Message) {
	var system string
	turns := make([]Message, 0, len(history))
	for _, msg := range history {
		if msg.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content
			continue
		}
		turns = append(turns, msg)
	}
	return system, turns
}
