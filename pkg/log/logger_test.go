package log

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	molerrors "github.com/molbench/molbench/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	level, err := ToLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ToLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ToLogLevel("loud")
	assert.Error(t, err)
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, SetupLogger("verbose"))
	assert.NoError(t, SetupLogger("info"))
}

func TestStackHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := newStackHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := slog.New(handler)

	logger.Error("benchmark run failed", ErrAttr(molerrors.New("bad structure")))

	out := buf.String()
	assert.Contains(t, out, "bad structure")
	assert.Contains(t, out, StacktraceAttrKey)
	assert.Contains(t, out, "logger_test.go")
}

func TestStackHandlerPlainError(t *testing.T) {
	// Errors without recorded details log normally, with no stacktrace field.
	var buf bytes.Buffer
	logger := slog.New(newStackHandler(slog.NewJSONHandler(&buf, nil)))

	logger.Error("benchmark run failed", ErrAttr(stderrors.New("plain failure")))

	out := buf.String()
	assert.Contains(t, out, "plain failure")
	assert.NotContains(t, out, StacktraceAttrKey)
}

func TestGetLoggerWithName(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	GetLoggerWithName("bench").Info("benchmark finished")

	out := buf.String()
	assert.Contains(t, out, ComponentKey)
	assert.Contains(t, out, "bench")
}
