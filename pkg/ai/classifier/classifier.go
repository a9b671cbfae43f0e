package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/ai/router"
	"portfolio-chat-be/pkg/ai/state"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"
)

const logModule = "CLASSIFIER"

// Source tells how a decision was reached.
type Source string

const (
	SourceSelection Source = "selection" // deterministic, from a selection payload
	SourceModel     Source = "model"
	SourceFallback  Source = "fallback" // model reply could not be parsed
)

// Result is a routing decision plus how it was produced.
type Result struct {
	Decision *state.RoutingDecision
	Source   Source
}

// Classifier turns the latest turn into a routing decision. Selection payloads are
// resolved locally; everything else costs exactly one model call.
type Classifier struct {
	llmProvider llm.LLMProvider
	store       *portfolio.Store
	window      int
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, store *portfolio.Store, window int, logger logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		store:       store,
		window:      window,
		logger:      logger,
	}
}

// Classify returns the next routing decision. A malformed model reply degrades to the
// prior state in chat mode; only provider failures are returned as errors.
func (c *Classifier) Classify(ctx context.Context, turns []llm.Message, prior *state.DialogueState) (*Result, error) {
	prior = prior.Clone()

	if selection, ok := SelectionFromTurns(turns); ok {
		decision := ApplySelection(prior, selection)
		c.logger.Debug(logModule, "Selection payload short-circuit", map[string]interface{}{
			"type": selection.Type,
			"id":   selection.ID,
		})
		return &Result{Decision: decision, Source: SourceSelection}, nil
	}

	instruction, err := c.buildInstruction(prior)
	if err != nil {
		return nil, err
	}

	history := llm.WithSystemPrompt(instruction, state.Window(turns, c.window))

	// Temperature 0 for deterministic routing
	reply, err := c.llmProvider.Chat(ctx, history, llm.WithTemperature(0.0), llm.WithJSONOutput())
	if err != nil {
		c.logger.Error(logModule, "Classification call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("classify turn: %w", err)
	}

	decision, err := parseDecision(reply)
	if err != nil {
		c.logger.Warn(logModule, "Unparseable routing reply, keeping prior state", map[string]interface{}{
			"error": err.Error(),
			"reply": truncate(reply, 200),
		})
		return &Result{Decision: fallbackDecision(prior), Source: SourceFallback}, nil
	}

	// not populated by the model; carried until a population rule exists
	decision.ImportantPoints = prior.ImportantPoints
	decision.Normalize()

	c.logger.Info(logModule, "Turn classified", map[string]interface{}{
		"topic":          topicLabel(decision.CurrentTopic),
		"mode":           decision.Mode,
		"needsSelection": decision.NeedsSelection,
	})

	return &Result{Decision: decision, Source: SourceModel}, nil
}

// SelectionFromTurns inspects the latest user turn for a selection payload.
func SelectionFromTurns(turns []llm.Message) (*router.Selection, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == llm.RoleUser {
			return router.ParseSelection(turns[i].Content)
		}
	}
	return nil, false
}

// ApplySelection is the deterministic transition for a menu pick: topic and item come
// from the payload, mode and important points from the prior state.
func ApplySelection(prior *state.DialogueState, selection *router.Selection) *state.RoutingDecision {
	next := prior.Clone()
	next.CurrentTopic = state.TopicPtr(selection.Topic())
	next.SelectedItemID = state.IntPtr(selection.ID)
	next.NeedsSelection = false
	if next.Mode != state.ModeDeepDive {
		next.Mode = state.ModeChat
	}
	return next
}

func (c *Classifier) buildInstruction(prior *state.DialogueState) (string, error) {
	priorJSON, err := json.Marshal(prior)
	if err != nil {
		return "", fmt.Errorf("encode prior state: %w", err)
	}
	return fmt.Sprintf(constant.ClassifierPromptV1, c.store.RenderSummary(), string(priorJSON)), nil
}

// ErrSchema marks a reply that is valid JSON but not a routing decision.
var ErrSchema = errors.New("routing reply violates schema")

// requiredKeys must be present in every reply; currentTopic and selectedItemId may be null.
var requiredKeys = []string{"currentTopic", "selectedItemId", "mode"}

// routingReply is the wire shape the instruction asks for. Topic and mode stay raw
// strings so values outside the taxonomy can be coerced instead of rejected.
type routingReply struct {
	CurrentTopic   *string          `json:"currentTopic"`
	SelectedItemID *json.RawMessage `json:"selectedItemId"`
	Mode           *string          `json:"mode"`
	NeedsSelection bool             `json:"needsSelection"`
}

func parseDecision(reply string) (*state.RoutingDecision, error) {
	raw, err := router.ExtractJSON(reply)
	if err != nil {
		return nil, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("decode routing reply: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrSchema, key)
		}
	}

	var parsed routingReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("decode routing reply: %w", err)
	}
	if parsed.Mode == nil {
		return nil, fmt.Errorf("%w: mode is null", ErrSchema)
	}

	decision := &state.RoutingDecision{
		Mode:           state.Mode(*parsed.Mode),
		NeedsSelection: parsed.NeedsSelection,
	}
	if parsed.CurrentTopic != nil {
		if topic, ok := portfolio.ParseTopic(*parsed.CurrentTopic); ok {
			decision.CurrentTopic = state.TopicPtr(topic)
		}
	}
	if parsed.SelectedItemID != nil {
		var value interface{}
		if err := json.Unmarshal(*parsed.SelectedItemID, &value); err == nil && value != nil {
			if id, ok := (portfolio.Record{"id": value}).ID(); ok {
				decision.SelectedItemID = state.IntPtr(id)
			}
		}
	}

	return decision, nil
}

func fallbackDecision(prior *state.DialogueState) *state.RoutingDecision {
	next := prior.Clone()
	next.Mode = state.ModeChat
	next.NeedsSelection = false
	return next
}

func topicLabel(topic *portfolio.Topic) string {
	if topic == nil {
		return "none"
	}
	return string(*topic)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
