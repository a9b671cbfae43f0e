package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &ZapLogger{logger: zap.New(core)}, logs
}

func TestZapLogger_Fields(t *testing.T) {
	l, logs := newObservedLogger()

	l.Warn("CLASSIFIER", "Unparseable routing reply", map[string]interface{}{
		"error":   "no JSON object",
		"turn_id": "turn-7",
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "Unparseable routing reply", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "CLASSIFIER", ctx["module"])
	assert.Equal(t, "no JSON object", ctx["error_ref"])
	assert.Equal(t, "turn-7", ctx["turn_id"])
}

func TestZapLogger_NilDetails(t *testing.T) {
	l, logs := newObservedLogger()

	l.Info("CHAT", "ready", nil)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, map[string]interface{}{}, ctx["details"])
	assert.NotContains(t, ctx, "error_ref")
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Error("ANY", "discarded", map[string]interface{}{"error": "x"})
	assert.NoError(t, l.Sync())
}
