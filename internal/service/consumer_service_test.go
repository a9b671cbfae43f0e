package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, module, message, details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("DEBUG", module, message, details)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("INFO", module, message, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("WARN", module, message, details)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("ERROR", module, message, details)
}

func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) snapshot() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

var _ logger.ILogger = &recordingLogger{}

func TestConsumerService_WritesAuditLog(t *testing.T) {
	bus := events.NewBus(gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}))
	defer bus.Close()

	audit := &recordingLogger{}
	consumer := NewConsumerService(bus, audit, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	id := 2
	require.NoError(t, bus.Publish(ctx, events.NewTurnRoutedEvent(events.TurnRouted{
		TurnID:         "turn-42",
		Node:           "deepdive",
		Source:         "selection",
		Topic:          "projects",
		SelectedItemID: &id,
		Mode:           "deep_dive",
		LLMCalls:       1,
	})))

	require.Eventually(t, func() bool { return len(audit.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)

	entry := audit.snapshot()[0]
	assert.Equal(t, "INFO", entry.level)
	assert.Equal(t, "EVENTS", entry.module)
	assert.Equal(t, events.TypeTurnRouted, entry.message)
	assert.Equal(t, "turn-42", entry.details["turn_id"])
	assert.Equal(t, "deepdive", entry.details["node"])
	assert.NotEmpty(t, entry.details["occurred_at"])
}
