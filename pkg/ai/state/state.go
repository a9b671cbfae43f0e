package state

import (
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"
)

// Mode is the depth of the next answer.
type Mode string

const (
	ModeChat     Mode = "chat"
	ModeDeepDive Mode = "deep_dive"
)

// DialogueState is the bundle the client echoes back on every request. The server
// never stores it.
type DialogueState struct {
	CurrentTopic    *portfolio.Topic `json:"currentTopic"`
	SelectedItemID  *int             `json:"selectedItemId"`
	ImportantPoints []string         `json:"importantPoints"`
	Mode            Mode             `json:"mode"`
	NeedsSelection  bool             `json:"needsSelection"`
}

// RoutingDecision is the classifier's verdict. It has the same shape as the state it
// replaces.
type RoutingDecision = DialogueState

// Initial is the state of a conversation that has not been classified yet.
func Initial() *DialogueState {
	return &DialogueState{Mode: ModeChat}
}

// Clone returns a deep copy so callers never share pointers across turns.
func (s *DialogueState) Clone() *DialogueState {
	if s == nil {
		return Initial()
	}
	out := *s
	if s.CurrentTopic != nil {
		topic := *s.CurrentTopic
		out.CurrentTopic = &topic
	}
	if s.SelectedItemID != nil {
		id := *s.SelectedItemID
		out.SelectedItemID = &id
	}
	if s.ImportantPoints != nil {
		out.ImportantPoints = append([]string(nil), s.ImportantPoints...)
	}
	return &out
}

// Normalize coerces values outside the taxonomy and restores the selection gate:
// a deep dive without an item needs a selection, a resolved item never does.
func (s *DialogueState) Normalize() *DialogueState {
	if s.CurrentTopic != nil {
		if _, ok := portfolio.ParseTopic(string(*s.CurrentTopic)); !ok {
			s.CurrentTopic = nil
		}
	}
	if s.Mode != ModeChat && s.Mode != ModeDeepDive {
		s.Mode = ModeChat
	}
	if s.Mode == ModeDeepDive && s.SelectedItemID == nil {
		s.NeedsSelection = true
	}
	if s.SelectedItemID != nil {
		s.NeedsSelection = false
	}
	return s
}

// Node is a vertex of the per-turn routing graph.
type Node string

const (
	NodeClassify Node = "classify"
	NodeSelect   Node = "select"
	NodeChat     Node = "chat"
	NodeDeepDive Node = "deepdive"
)

// Next picks the terminal node for a classified state. Every turn ends on exactly
// one of select, chat or deepdive.
func Next(s *DialogueState) Node {
	switch {
	case s.NeedsSelection:
		return NodeSelect
	case s.Mode == ModeDeepDive:
		return NodeDeepDive
	default:
		return NodeChat
	}
}

// Window bounds for the turns forwarded to the model.
const (
	MinWindow     = 10
	MaxWindow     = 16
	DefaultWindow = MinWindow
)

// Window returns the last k non-system turns, k clamped to [MinWindow, MaxWindow].
// The input slice is not modified.
func Window(turns []llm.Message, k int) []llm.Message {
	if k < MinWindow {
		k = MinWindow
	}
	if k > MaxWindow {
		k = MaxWindow
	}

	filtered := make([]llm.Message, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == llm.RoleSystem {
			continue
		}
		filtered = append(filtered, turn)
	}

	if len(filtered) > k {
		filtered = filtered[len(filtered)-k:]
	}
	return filtered
}

// TopicPtr and IntPtr build optional fields.
func TopicPtr(t portfolio.Topic) *portfolio.Topic { return &t }

func IntPtr(i int) *int { return &i }
