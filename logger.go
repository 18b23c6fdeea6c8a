package geosearch

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with geosearch-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds a model id field to the logger.
func (l *Logger) WithID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithK adds a k (result count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// LogIndex logs an index operation.
func (l *Logger) LogIndex(ctx context.Context, id string, vertices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index failed",
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index completed",
			"id", id,
			"vertices", vertices,
		)
	}
}

// LogBatchIndex logs a batch index operation.
func (l *Logger) LogBatchIndex(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch index completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch index completed",
			"count", count,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, k, candidates, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"candidates", candidates,
			"results", resultsFound,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(ctx context.Context, id string, removed bool) {
	l.DebugContext(ctx, "remove completed",
		"id", id,
		"removed", removed,
	)
}

// LogReindex logs a reindex operation.
func (l *Logger) LogReindex(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reindex failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "reindex completed",
			"count", count,
		)
	}
}
