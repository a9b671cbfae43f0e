package orchestrator

import (
	"context"
	"time"

	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/ai/classifier"
	"portfolio-chat-be/pkg/ai/pipeline"
	"portfolio-chat-be/pkg/ai/state"
	"portfolio-chat-be/pkg/events"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	logModule  = "ORCHESTRATOR"
	tracerName = "portfolio-chat-be/pkg/ai/orchestrator"
)

// TurnResult is what one request produces: the reply and the state the client must
// send back next time.
type TurnResult struct {
	TurnID   string
	Response string
	State    *state.DialogueState
	Node     state.Node
}

// NeedsSelection mirrors the outgoing state flag.
func (r *TurnResult) NeedsSelection() bool {
	return r.State.NeedsSelection
}

// Orchestrator runs one turn through classify and exactly one terminal node.
type Orchestrator struct {
	classifier *classifier.Classifier
	presenter  *pipeline.SelectionPresenter
	chat       *pipeline.ChatResponder
	deepDive   *pipeline.DeepDiveResponder
	publisher  events.Publisher
	tracer     trace.Tracer
	logger     logger.ILogger
}

// Config carries the collaborators every node shares.
type Config struct {
	LLMProvider llm.LLMProvider
	Store       *portfolio.Store
	Window      int
	Publisher   events.Publisher     // optional
	Tracer      trace.TracerProvider // defaults to the global provider
	Logger      logger.ILogger
}

func New(cfg Config) *Orchestrator {
	window := cfg.Window
	if window == 0 {
		window = state.DefaultWindow
	}
	tp := cfg.Tracer
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Orchestrator{
		classifier: classifier.NewClassifier(cfg.LLMProvider, cfg.Store, window, cfg.Logger),
		presenter:  pipeline.NewSelectionPresenter(),
		chat:       pipeline.NewChatResponder(cfg.LLMProvider, cfg.Store, window, cfg.Logger),
		deepDive:   pipeline.NewDeepDiveResponder(cfg.LLMProvider, cfg.Store, window, cfg.Logger),
		publisher:  cfg.Publisher,
		tracer:     tp.Tracer(tracerName),
		logger:     cfg.Logger,
	}
}

// HandleTurn processes one inbound request. A nil prior starts a new conversation.
// Provider failures are returned unchanged and no state is produced.
func (o *Orchestrator) HandleTurn(ctx context.Context, turns []llm.Message, prior *state.DialogueState) (*TurnResult, error) {
	start := time.Now()
	turnID := uuid.NewString()

	ctx, span := o.tracer.Start(ctx, "HandleTurn", trace.WithAttributes(
		attribute.String("turn.id", turnID),
		attribute.Int("turn.messages", len(turns)),
	))
	defer span.End()

	if prior == nil {
		prior = state.Initial()
	}

	classified, err := o.classifier.Classify(ctx, turns, prior)
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	llmCalls := 0
	if classified.Source != classifier.SourceSelection {
		llmCalls++
	}

	node := state.Next(classified.Decision)

	var result *pipeline.Result
	switch node {
	case state.NodeSelect:
		result = o.presenter.Present(classified.Decision)
	case state.NodeDeepDive:
		result, err = o.deepDive.Respond(ctx, turns, classified.Decision)
		llmCalls++
	default:
		result, err = o.chat.Respond(ctx, turns, classified.Decision)
		llmCalls++
	}
	if err != nil {
		failSpan(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("turn.node", string(node)),
		attribute.String("turn.source", string(classified.Source)),
		attribute.Int("turn.llm_calls", llmCalls),
	)

	o.logger.Info(logModule, "Turn completed", map[string]interface{}{
		"turn_id":   turnID,
		"node":      node,
		"source":    classified.Source,
		"llm_calls": llmCalls,
	})

	o.emit(ctx, events.TurnRouted{
		TurnID:         turnID,
		Node:           string(node),
		Source:         string(classified.Source),
		Topic:          topicName(result.State.CurrentTopic),
		SelectedItemID: result.State.SelectedItemID,
		Mode:           string(result.State.Mode),
		NeedsSelection: result.State.NeedsSelection,
		LLMCalls:       llmCalls,
		Duration:       time.Since(start),
	})

	return &TurnResult{
		TurnID:   turnID,
		Response: result.Reply,
		State:    result.State,
		Node:     node,
	}, nil
}

func (o *Orchestrator) emit(ctx context.Context, t events.TurnRouted) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(ctx, events.NewTurnRoutedEvent(t)); err != nil {
		o.logger.Warn(logModule, "Failed to publish TURN_ROUTED event", map[string]interface{}{
			"turn_id": t.TurnID,
			"error":   err.Error(),
		})
	}
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "turn failed")
}

func topicName(topic *portfolio.Topic) string {
	if topic == nil {
		return ""
	}
	return string(*topic)
}
