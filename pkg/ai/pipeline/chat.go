package pipeline

import (
	"context"
	"fmt"
	"strings"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/ai/state"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"
)

const logModule = "PIPELINE"

// ChatResponder answers conversationally, grounded on the summary table.
type ChatResponder struct {
	llmProvider llm.LLMProvider
	store       *portfolio.Store
	window      int
	logger      logger.ILogger
}

func NewChatResponder(llmProvider llm.LLMProvider, store *portfolio.Store, window int, logger logger.ILogger) *ChatResponder {
	return &ChatResponder{
		llmProvider: llmProvider,
		store:       store,
		window:      window,
		logger:      logger,
	}
}

// BuildPrompt returns the system prompt for s.
func (r *ChatResponder) BuildPrompt(s *state.DialogueState) string {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf(constant.ChatPromptV1, r.store.RenderSummary()))

	var lines []string
	if s.CurrentTopic != nil {
		lines = append(lines, fmt.Sprintf(constant.ContextLineTopic, *s.CurrentTopic))
	}
	if s.SelectedItemID != nil {
		lines = append(lines, fmt.Sprintf(constant.ContextLineSelectedItem, *s.SelectedItemID))
	}
	if len(s.ImportantPoints) > 0 {
		lines = append(lines, fmt.Sprintf(constant.ContextLineImportantPoints, strings.Join(s.ImportantPoints, "; ")))
	}
	if len(lines) > 0 {
		prompt.WriteString("\n\nCONVERSATION CONTEXT:\n")
		prompt.WriteString(strings.Join(lines, "\n"))
	}

	return prompt.String()
}

// Respond returns the completion verbatim. Topic, item and mode are left as received.
func (r *ChatResponder) Respond(ctx context.Context, turns []llm.Message, s *state.DialogueState) (*Result, error) {
	messages := llm.WithSystemPrompt(r.BuildPrompt(s), state.Window(turns, r.window))

	r.logger.Debug(logModule, "Executing chat responder", map[string]interface{}{
		"messages": len(messages),
	})

	reply, err := r.llmProvider.Chat(ctx, messages)
	if err != nil {
		r.logger.Error(logModule, "Chat responder call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("chat responder: %w", err)
	}

	next := s.Clone()
	next.NeedsSelection = false
	return &Result{Reply: reply, State: next}, nil
}
