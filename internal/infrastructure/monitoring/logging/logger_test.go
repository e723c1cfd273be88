package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLoggerEmitsStructuredFields(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	logger.Info("analysis complete",
		String("label", "Fraud"),
		Int("priority", 3),
		Bool("trained", true),
		Duration("elapsed", 2*time.Millisecond),
		Err(errors.New("soft failure")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "analysis complete", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "Fraud", fields["label"])
	assert.Equal(t, int64(3), fields["priority"])
	assert.Equal(t, true, fields["trained"])
	assert.Equal(t, "soft failure", fields["error"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "visible", logs.All()[0].Message)
}

func TestWithAttachesFieldsToChildren(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)

	child := logger.With(String("request_id", "abc"))
	child.Info("handled")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
}

func TestNamedBuildsDottedNames(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)

	logger.Named("casetrace").Named("http").Info("request handled")

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "casetrace.http", logs.All()[0].LoggerName)
}

func TestNewLoggerValidatesNothingButBuilds(t *testing.T) {
	logger, err := NewLogger(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Unknown levels fall back to info rather than failing.
	logger, err = NewLogger(Config{Level: "chatty", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestSetLevelAtRuntime(t *testing.T) {
	logger, err := NewLogger(Config{Level: "info", Format: "json", OutputPaths: []string{"stdout"}})
	require.NoError(t, err)

	setter, ok := logger.(LevelSetter)
	require.True(t, ok)
	setter.SetLevel("error")
	setter.SetLevel("debug")
}

func TestDefaultLoggerSwap(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	logger, logs := newObservedLogger(zapcore.InfoLevel)
	SetDefault(logger)

	Default().Info("via default")
	require.Len(t, logs.All(), 1)

	// nil is ignored.
	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("dropped")
	logger.With(String("k", "v")).Named("x").Error("also dropped")
}
