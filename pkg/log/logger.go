// Package log provides structured logging for the benchmark pipeline.
//
// It wraps Go's log/slog with a JSON handler that extracts stack traces from
// cockroachdb/errors values, and bridges the pkg/errors warning system onto a
// zerolog logger so benign diagnostics surface as structured debug events.
package log

import (
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	molerrors "github.com/molbench/molbench/pkg/errors"
)

// SetupLogger configures the process-wide slog default logger.
func SetupLogger(loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}
	handler := newStackHandler(slog.NewJSONHandler(os.Stderr, &ops))
	slog.SetDefault(slog.New(handler))
	return nil
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, molerrors.Newf("unknown log level %q", level)
	}
}

// GetLogger returns the default structured logger.
func GetLogger() *slog.Logger {
	return slog.Default()
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) *slog.Logger {
	return slog.Default().With(ComponentKey, name)
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// InstallWarningSink routes pkg/errors warnings to a zerolog logger at debug
// level. Warnings carrying a zerolog.LogObjectMarshaler are logged with their
// structured fields; anything else falls back to the error message.
func InstallWarningSink() {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	molerrors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Debug().Str("source", "warning")
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("benchmark warning")
			return
		}
		ev.Err(warning).Msg("benchmark warning")
	})
}
