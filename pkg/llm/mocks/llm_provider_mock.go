package mocks

import (
	"context"
	"sync"

	"portfolio-chat-be/pkg/llm"

	"github.com/stretchr/testify/mock"
)

// MockLLMProvider is a mock type for the LLMProvider type
type MockLLMProvider struct {
	mock.Mock

	mu      sync.Mutex
	options []llm.Options
}

// Chat provides a mock function with given fields: ctx, history, options
func (_m *MockLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	_m.mu.Lock()
	_m.options = append(_m.options, llm.ApplyOptions(llm.Options{}, options...))
	_m.mu.Unlock()

	ret := _m.Called(ctx, history)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, []llm.Message) string); ok {
		r0 = rf(ctx, history)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, []llm.Message) error); ok {
		r1 = rf(ctx, history)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// History returns the message slice passed to the i-th Chat call.
func (_m *MockLLMProvider) History(i int) []llm.Message {
	calls := _m.Calls
	if i < 0 || i >= len(calls) {
		return nil
	}
	return calls[i].Arguments.Get(1).([]llm.Message)
}

// Options returns the options applied to the i-th Chat call, folded over zero defaults.
func (_m *MockLLMProvider) Options(i int) llm.Options {
	_m.mu.Lock()
	defer _m.mu.Unlock()
	if i < 0 || i >= len(_m.options) {
		return llm.Options{}
	}
	return _m.options[i]
}

// NewMockLLMProvider creates a new instance of MockLLMProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLLMProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLLMProvider {
	m := &MockLLMProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ llm.LLMProvider = (*MockLLMProvider)(nil)
