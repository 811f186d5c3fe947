package kmedoids

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000),
		})),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithRun tags every record with the run's matrix size and worker count.
func (l *Logger) WithRun(n, workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n, "workers", workers),
	}
}

// LogInit logs the outcome of medoid initialization.
func (l *Logger) LogInit(ctx context.Context, init Init, medoids []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "initialization failed",
			"init", init.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "medoids initialized",
		"init", init.String(),
		"medoids", medoids,
	)
}

// LogIteration logs one update+assign round.
func (l *Logger) LogIteration(ctx context.Context, iteration, changed int, cost float64, elapsed time.Duration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"changed", changed,
		"cost", cost,
		"elapsed", elapsed,
	)
}

// LogRun logs the end of a clustering run.
func (l *Logger) LogRun(ctx context.Context, res *Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"iterations", res.Iterations,
		"converged", res.Converged,
		"cost", res.Cost,
		"elapsed", elapsed,
	)
}
