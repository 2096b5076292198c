package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stackHandler decorates records carrying an error attribute with the stack
// trace recorded by cockroachdb/errors, so failures logged through ErrAttr
// keep their origin without callers formatting anything.
type stackHandler struct {
	inner slog.Handler
}

func newStackHandler(inner slog.Handler) slog.Handler {
	return &stackHandler{inner: inner}
}

func (h *stackHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *stackHandler) Handle(ctx context.Context, record slog.Record) error {
	var trace string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			trace = stacktraceOf(err)
		}
		return false
	})
	if trace != "" {
		record.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.inner.Handle(ctx, record)
}

func (h *stackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *stackHandler) WithGroup(name string) slog.Handler {
	return &stackHandler{inner: h.inner.WithGroup(name)}
}

// stacktraceOf pulls the redaction-safe details cockroachdb/errors records at
// construction time; the first entry is the captured stack.
func stacktraceOf(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) == 0 {
		return ""
	}
	return details[0]
}
