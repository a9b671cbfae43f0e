package pipeline

import (
	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/pkg/ai/state"
)

// Result is the outcome of the terminal node of a turn.
type Result struct {
	Reply string
	State *state.DialogueState
}

// NeedsSelection mirrors the outgoing state flag.
func (r *Result) NeedsSelection() bool {
	return r.State.NeedsSelection
}

// SelectionPresenter halts the turn so the client can show its picker. It never calls
// the model.
type SelectionPresenter struct{}

func NewSelectionPresenter() *SelectionPresenter {
	return &SelectionPresenter{}
}

func (p *SelectionPresenter) Present(decision *state.RoutingDecision) *Result {
	next := decision.Clone()
	next.NeedsSelection = true
	return &Result{
		Reply: constant.SelectionPromptText,
		State: next,
	}
}
