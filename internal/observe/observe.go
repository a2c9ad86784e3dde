// Package observe carries request-scoped diagnostics: request IDs in contexts and a
// structured error reporter backed by slog.
package observe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogReporter implements energy.Reporter by writing one structured record per failure.
type LogReporter struct {
	logger *slog.Logger
}

func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report logs upstream failures at error level and everything else at warn level.
func (r *LogReporter) Report(ctx context.Context, op string, err error, attrs ...any) {
	level := slog.LevelWarn
	if energy.IsUpstream(err) {
		level = slog.LevelError
	}

	args := make([]any, 0, len(attrs)+8)
	args = append(args, "op", op, "kind", Kind(err), "error", err.Error())
	if id := RequestID(ctx); id != "" {
		args = append(args, "request_id", id)
	}
	args = append(args, attrs...)

	r.logger.Log(ctx, level, "operation failed", args...)
}

// Kind names the failure class of err.
func Kind(err error) string {
	switch {
	case errors.Is(err, energy.ErrMissingParameter):
		return "MissingParameter"
	case errors.Is(err, energy.ErrInvalidParameter):
		return "InvalidParameter"
	case errors.Is(err, energy.ErrInvalidPeriod):
		return "InvalidPeriod"
	case errors.Is(err, energy.ErrUnknownCity):
		return "UnknownCity"
	case errors.Is(err, energy.ErrUpstreamContract):
		return "UpstreamContractViolation"
	case errors.Is(err, energy.ErrUpstreamUnavailable):
		return "UpstreamUnavailable"
	default:
		return "Internal"
	}
}

// NewLogger builds the process logger. format is "json" or "text"; level is a slog level name.
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), nil
}
