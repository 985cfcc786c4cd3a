package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stackTraceHandler decorates another slog handler: whenever a record
// carries an error attribute produced by ErrAttr, the cockroachdb stack
// trace embedded in that error is surfaced as a separate string
// attribute. Training failures then land in the JSON log with the full
// construction-site trace, not just the message chain.
type stackTraceHandler struct {
	next slog.Handler
}

// WithStackTraces wraps a slog handler so error attributes are logged
// together with their embedded stack traces.
func WithStackTraces(next slog.Handler) slog.Handler {
	return &stackTraceHandler{next: next}
}

func (h *stackTraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *stackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if trace := recordStackTrace(r); trace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.next.Handle(ctx, r)
}

func (h *stackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackTraceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stackTraceHandler) WithGroup(name string) slog.Handler {
	return &stackTraceHandler{next: h.next.WithGroup(name)}
}

// recordStackTrace finds the first error attribute on the record and
// pulls its stack trace out of the cockroachdb safe details. Errors
// built without WithStack yield an empty string.
func recordStackTrace(r slog.Record) string {
	var trace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
				trace = details[0]
			}
		}
		return false
	})
	return trace
}
