package metrics

import (
	"context"
	"time"

	"portfolio-chat-be/pkg/llm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider records request counts and latencies for every completion call.
type Provider struct {
	inner    llm.LLMProvider
	model    string
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ llm.LLMProvider = &Provider{}

// NewProvider registers the collectors on reg. Pass prometheus.NewRegistry() in tests to
// avoid duplicate registration against the default registry.
func NewProvider(inner llm.LLMProvider, model string, reg prometheus.Registerer) *Provider {
	factory := promauto.With(reg)
	return &Provider{
		inner: inner,
		model: model,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_chat_llm_requests_total",
				Help: "Total number of completion requests sent to the LLM provider.",
			},
			[]string{"model", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_chat_llm_request_duration_seconds",
				Help:    "Histogram of LLM completion request durations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	model := llm.ApplyOptions(llm.Options{Model: p.model}, options...).Model

	start := time.Now()
	reply, err := p.inner.Chat(ctx, history, options...)
	p.duration.WithLabelValues(model).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		p.requests.WithLabelValues(model, "error").Inc()
	case reply == "":
		p.requests.WithLabelValues(model, "empty_response").Inc()
	default:
		p.requests.WithLabelValues(model, "success").Inc()
	}

	return reply, err
}
