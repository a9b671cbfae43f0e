package pipeline

import (
	"context"
	"fmt"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/ai/state"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"
)

// Scope is how much of the detail data a deep-dive prompt carries.
type Scope string

const (
	ScopeRecord Scope = "record" // the selected item only
	ScopeTopic  Scope = "topic"  // every item of the current topic
	ScopeAll    Scope = "all"    // the whole detail store
)

// DeepDiveResponder answers with technical depth, grounded on the detail tables.
type DeepDiveResponder struct {
	llmProvider llm.LLMProvider
	store       *portfolio.Store
	window      int
	logger      logger.ILogger
}

func NewDeepDiveResponder(llmProvider llm.LLMProvider, store *portfolio.Store, window int, logger logger.ILogger) *DeepDiveResponder {
	return &DeepDiveResponder{
		llmProvider: llmProvider,
		store:       store,
		window:      window,
		logger:      logger,
	}
}

// BuildPrompt returns the system prompt for s and the grounding scope it used. An item
// id missing from the table widens the scope instead of failing.
func (r *DeepDiveResponder) BuildPrompt(s *state.DialogueState) (string, Scope) {
	scope, label, data := r.grounding(s)
	return fmt.Sprintf(constant.DeepDivePromptV1, label, data), scope
}

func (r *DeepDiveResponder) grounding(s *state.DialogueState) (Scope, string, string) {
	if s.CurrentTopic == nil || !r.store.HasDetail(*s.CurrentTopic) {
		return ScopeAll, "all portfolio items", r.store.RenderAllDetail()
	}

	topic := *s.CurrentTopic
	if s.SelectedItemID != nil {
		if record, ok := r.store.GetDetail(topic, *s.SelectedItemID); ok {
			return ScopeRecord, fmt.Sprintf("%s item %d", topic, *s.SelectedItemID), r.store.RenderDetailRecord(record)
		}
		r.logger.Warn(logModule, "Selected item not in detail table, using full topic", map[string]interface{}{
			"topic": topic,
			"id":    *s.SelectedItemID,
		})
	}

	return ScopeTopic, fmt.Sprintf("all %s", topic), r.store.RenderDetail(topic)
}

// Respond returns the completion verbatim and clears the selection flag.
func (r *DeepDiveResponder) Respond(ctx context.Context, turns []llm.Message, s *state.DialogueState) (*Result, error) {
	prompt, scope := r.BuildPrompt(s)
	messages := llm.WithSystemPrompt(prompt, state.Window(turns, r.window))

	r.logger.Debug(logModule, "Executing deep-dive responder", map[string]interface{}{
		"scope":    scope,
		"messages": len(messages),
	})

	reply, err := r.llmProvider.Chat(ctx, messages)
	if err != nil {
		r.logger.Error(logModule, "Deep-dive responder call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("deep-dive responder: %w", err)
	}

	next := s.Clone()
	next.NeedsSelection = false
	return &Result{Reply: reply, State: next}, nil
}
