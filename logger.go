package factgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with factgo-specific helpers.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLanguage adds a language field to the logger.
func (l *Logger) WithLanguage(lang string) *Logger {
	return &Logger{
		Logger: l.Logger.With("language", lang),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogAppend logs a fact append operation.
func (l *Logger) LogAppend(ctx context.Context, id uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "append completed",
			"id", id,
		)
	}
}

// LogBatchAppend logs a batch append operation.
func (l *Logger) LogBatchAppend(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch append failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch append completed",
			"count", count,
		)
	}
}

// LogQuery logs a query execution.
func (l *Logger) LogQuery(ctx context.Context, plan string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"plan", plan,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"plan", plan,
			"results", results,
		)
	}
}

// LogTokenize logs a tokenize run.
func (l *Logger) LogTokenize(ctx context.Context, lang string, tokens int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "tokenize failed",
			"language", lang,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "tokenize completed",
			"language", lang,
			"tokens", tokens,
		)
	}
}
