package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/llm/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type slowProvider struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (p *slowProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	return "ok", nil
}

func TestNewProvider_DisabledReturnsInner(t *testing.T) {
	inner := mocks.NewMockLLMProvider(t)
	assert.Same(t, inner, NewProvider(inner, Config{}))
}

func TestProvider_BoundsConcurrency(t *testing.T) {
	inner := &slowProvider{}
	p := NewProvider(inner, Config{MaxConcurrent: 2})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := p.Chat(context.Background(), nil)
			assert.NoError(t, err)
			assert.Equal(t, "ok", reply)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int32(2))
}

func TestProvider_WaitCancelled(t *testing.T) {
	inner := mocks.NewMockLLMProvider(t)
	inner.On("Chat", mock.Anything, mock.Anything).Return("first", nil).Once()

	// one request per minute: the second call has to wait far longer than the deadline
	p := NewProvider(inner, Config{RequestsPerMinute: 1})

	reply, err := p.Chat(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.Chat(ctx, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrProviderFailed))
	inner.AssertNumberOfCalls(t, "Chat", 1)
}
