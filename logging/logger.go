// Package logging provides slog setup and registry hooks that log every
// dispatched action.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bjaus/action"
)

// New creates a logger writing to stdout with the given level and format.
// format can be "json" or "text" (default is json).
func New(level slog.Level, format string) *slog.Logger {
	return NewWriter(os.Stdout, level, format)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location for errors and above
		AddSource: level >= slog.LevelError,
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error".
// Returns slog.LevelInfo for invalid values.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Hooks returns registry options that log dispatch outcomes to logger.
// Successes log at debug, failures at info, unknown keys and invoker
// faults at warn and error.
func Hooks(logger *slog.Logger) action.Option {
	return action.WithOptions(
		action.WithOnDispatch(func(ctx context.Context, key, id string) context.Context {
			logger.DebugContext(ctx, "dispatching action", Key(key), CorrelationID(id))
			return ctx
		}),
		action.WithOnSuccess(func(ctx context.Context, key, id string, d time.Duration) {
			logger.DebugContext(ctx, "action succeeded", Key(key), CorrelationID(id), Duration(d))
		}),
		action.WithOnFailure(func(ctx context.Context, key, id, msg string, d time.Duration) {
			logger.InfoContext(ctx, "action failed",
				Key(key), CorrelationID(id), Duration(d), slog.String(FieldMessage, msg))
		}),
		action.WithOnNoHandler(func(ctx context.Context, key, id string) {
			logger.WarnContext(ctx, "no action registered", Key(key), CorrelationID(id))
		}),
		action.WithOnInvokerFault(func(ctx context.Context, key, id string, fault *action.InvokerFault) {
			logger.ErrorContext(ctx, "invoker fault",
				Key(key), CorrelationID(id), Invoker(fault.Invoker), Error(fault.Err))
		}),
	)
}
