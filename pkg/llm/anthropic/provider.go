package anthropic

import (
	"context"
	"fmt"
	"strings"

	"portfolio-chat-be/pkg/llm"

	anthropicgo "github.com/liushuangls/go-anthropic/v2"
)

const defaultModel = "claude-sonnet-4-20250514"

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	client   *anthropicgo.Client
	model    string
	defaults llm.Options
}

var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(apiKey, baseURL, model string, defaults llm.Options) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	if defaults.MaxTokens == 0 {
		defaults.MaxTokens = 1000
	}

	var clientOpts []anthropicgo.ClientOption
	if baseURL != "" {
		clientOpts = append(clientOpts, anthropicgo.WithBaseURL(baseURL))
	}

	return &AnthropicProvider{
		client:   anthropicgo.NewClient(apiKey, clientOpts...),
		model:    model,
		defaults: defaults,
	}, nil
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(p.defaults, options...)

	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	system, turns := llm.SplitSystem(history)
	messages := toAnthropicMessages(turns)
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: anthropic: no user turn to answer", llm.ErrProviderFailed)
	}

	req := anthropicgo.MessagesRequest{
		Model:     anthropicgo.Model(model),
		System:    system,
		Messages:  messages,
		MaxTokens: opts.MaxTokens,
	}
	temperature := float32(opts.Temperature)
	req.Temperature = &temperature

	resp, err := p.client.CreateMessages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic create messages: %v", llm.ErrProviderFailed, err)
	}

	var sb strings.Builder
	for _, content := range resp.Content {
		if content.Type == anthropicgo.MessagesContentTypeText {
			sb.WriteString(content.GetText())
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: anthropic returned no text content", llm.ErrProviderFailed)
	}

	return sb.String(), nil
}

// toAnthropicMessages drops leading assistant turns (the widget greets first) and merges
// consecutive turns of the same role, since the Messages API wants strict user/assistant
// alternation starting with user.
func toAnthropicMessages(turns []llm.Message) []anthropicgo.Message {
	type merged struct {
		role    string
		content string
	}

	var out []merged
	for _, turn := range turns {
		role := llm.RoleUser
		if turn.Role == llm.RoleAssistant {
			role = llm.RoleAssistant
		}
		if len(out) == 0 && role == llm.RoleAssistant {
			continue
		}
		if len(out) > 0 && out[len(out)-1].role == role {
			out[len(out)-1].content += "\n\n" + turn.Content
			continue
		}
		out = append(out, merged{role: role, content: turn.Content})
	}

	messages := make([]anthropicgo.Message, 0, len(out))
	for _, m := range out {
		if m.role == llm.RoleAssistant {
			messages = append(messages, anthropicgo.NewAssistantTextMessage(m.content))
		} else {
			messages = append(messages, anthropicgo.NewUserTextMessage(m.content))
		}
	}
	return messages
}
