package ratelimit

import (
	"context"
	"fmt"

	"portfolio-chat-be/pkg/llm"

	"golang.org/x/time/rate"
)

// Config bounds outbound completion traffic. Zero values disable the matching limit.
type Config struct {
	RequestsPerMinute float64
	MaxConcurrent     int
}

// Provider wraps an LLMProvider with a request-rate limiter and a concurrency semaphore.
// It only waits for a slot; it never retries a failed call.
type Provider struct {
	inner          llm.LLMProvider
	requestLimiter *rate.Limiter
	semaphore      chan struct{}
}

var _ llm.LLMProvider = &Provider{}

// NewProvider returns inner unchanged when cfg disables both limits.
func NewProvider(inner llm.LLMProvider, cfg Config) llm.LLMProvider {
	if cfg.RequestsPerMinute <= 0 && cfg.MaxConcurrent <= 0 {
		return inner
	}

	p := &Provider{inner: inner}

	if cfg.RequestsPerMinute > 0 {
		rps := cfg.RequestsPerMinute / 60.0
		burst := int(rps * 2) // two seconds of quota
		if burst < 1 {
			burst = 1
		}
		p.requestLimiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	if cfg.MaxConcurrent > 0 {
		p.semaphore = make(chan struct{}, cfg.MaxConcurrent)
	}

	return p
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.requestLimiter != nil {
		if err := p.requestLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: request rate limit wait: %v", llm.ErrProviderFailed, err)
		}
	}

	if p.semaphore != nil {
		select {
		case p.semaphore <- struct{}{}:
		case <-ctx.Done():
			return "", fmt.Errorf("%w: concurrency slot wait: %v", llm.ErrProviderFailed, ctx.Err())
		}
		defer func() { <-p.semaphore }()
	}

	return p.inner.Chat(ctx, history, options...)
}
