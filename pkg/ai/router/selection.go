package router

import (
	"encoding/json"
	"strings"

	"portfolio-chat-be/pkg/portfolio"
)

// PrefixSelected marks a turn the client synthesized from a picker choice.
const PrefixSelected = "selected:"

// Selection is a menu pick reported back by the client as a user turn, either
// `Selected: {"type":"project","id":2}` or the bare JSON object.
type Selection struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
}

// Topic returns the dialogue topic the selection points into.
func (s *Selection) Topic() portfolio.Topic {
	topic, _ := portfolio.TopicForOptionType(s.Type)
	return topic
}

// ParseSelection recognizes a selection payload. Anything that is not a well-formed
// payload returns false and is treated as ordinary chat text by the caller.
func ParseSelection(content string) (*Selection, bool) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(strings.ToLower(trimmed), PrefixSelected) {
		trimmed = strings.TrimSpace(trimmed[len(PrefixSelected):])
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var payload struct {
		Type *string         `json:"type"`
		ID   json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, false
	}
	if payload.Type == nil {
		return nil, false
	}

	selectionType := strings.ToLower(strings.TrimSpace(*payload.Type))
	if _, ok := portfolio.TopicForOptionType(selectionType); !ok {
		return nil, false
	}

	id, ok := parseID(payload.ID)
	if !ok {
		return nil, false
	}

	return &Selection{Type: selectionType, ID: id}, true
}

func parseID(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	return portfolio.Record{"id": value}.ID()
}
