package dto

import (
	"portfolio-chat-be/pkg/ai/state"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"
)

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessageDTO     `json:"messages" validate:"required,min=1,max=200,dive"`
	State    *state.DialogueState `json:"state"`
}

// Turns converts the request messages into provider-agnostic turns.
func (r *ChatRequest) Turns() []llm.Message {
	turns := make([]llm.Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		turns = append(turns, llm.Message{Role: m.Role, Content: m.Content})
	}
	return turns
}

// ChatResponse is returned without the BaseResponse envelope; the widget reads
// response, state and needsSelection at the top level.
type ChatResponse struct {
	Response       string               `json:"response"`
	State          *state.DialogueState `json:"state"`
	NeedsSelection bool                 `json:"needsSelection"`
}

type SelectionOptionsRequest struct {
	Type string `query:"type" validate:"omitempty,oneof=project experience"`
}

type SelectionOptionsResponse struct {
	Options []portfolio.SelectionOption `json:"options"`
}

type HealthResponse struct {
	Message string `json:"message"`
}
