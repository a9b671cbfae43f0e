package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TURN_ROUTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeTurnRouted = "TURN_ROUTED"
)

// TurnRouted records which node answered a turn. It carries routing metadata only,
// never message content.
type TurnRouted struct {
	TurnID         string
	Node           string
	Source         string
	Topic          string
	SelectedItemID *int
	Mode           string
	NeedsSelection bool
	LLMCalls       int
	Duration       time.Duration
}

// NewTurnRoutedEvent wraps a TurnRouted record as an Event.
func NewTurnRoutedEvent(t TurnRouted) BaseEvent {
	data := map[string]interface{}{
		"turn_id":         t.TurnID,
		"node":            t.Node,
		"source":          t.Source,
		"topic":           t.Topic,
		"mode":            t.Mode,
		"needs_selection": t.NeedsSelection,
		"llm_calls":       t.LLMCalls,
		"duration_ms":     t.Duration.Milliseconds(),
	}
	if t.SelectedItemID != nil {
		data["selected_item_id"] = *t.SelectedItemID
	}

	return BaseEvent{
		Type:       TypeTurnRouted,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
