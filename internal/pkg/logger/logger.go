// Package logger provides structured logging using slog, with
// correlation-id propagation for the refactor facade's per-call log
// lines (SPEC_FULL.md §8).
package logger

import (
	"context"
	"log/slog"
	"os"
)

// Logger is the global logger instance.
var Logger *slog.Logger

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	JSON    bool
	Verbose bool
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) {
	var handler slog.Handler

	level := cfg.Level
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Verbose,
	}

	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// Default returns a basic default logger if Init hasn't been called.
func Default() *slog.Logger {
	if Logger == nil {
		Init(Config{Level: slog.LevelInfo})
	}
	return Logger
}

type contextKey int

const correlationIDKey contextKey = iota

// ContextWithCorrelationID returns a context carrying correlationID,
// retrievable by CorrelationIDFromContext and FromContext.
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// CorrelationIDFromContext returns the correlation id stashed by
// ContextWithCorrelationID, if any.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok
}

// WithRequestID returns a logger with the request ID attached.
func WithRequestID(ctx context.Context, requestID string) *slog.Logger {
	return Default().With(slog.String("request_id", requestID))
}

// WithCorrelationID returns a logger with correlationID attached under
// the "correlation_id" attribute, the refactor facade's analogue of
// WithRequestID for a single Plan/PlanAll call.
func WithCorrelationID(correlationID string) *slog.Logger {
	return Default().With(slog.String("correlation_id", correlationID))
}

// FromContext returns a logger carrying whatever correlation id ctx
// holds, falling back to Default() when there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := CorrelationIDFromContext(ctx); ok {
		return WithCorrelationID(id)
	}
	return Default()
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}
