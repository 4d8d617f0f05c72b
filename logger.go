package vector

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vector-specific context.
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

// WithName adds a name field to the logger (useful for telling vectors apart).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("vector", name),
	}
}

// LogGrow logs an attempt to move the elements into a larger block.
func (l *Logger) LogGrow(oldCap, newCap int, duration time.Duration, err error) {
	if err != nil {
		l.Error("grow failed",
			"old_capacity", oldCap,
			"error", err,
		)
	} else {
		l.Debug("grow completed",
			"old_capacity", oldCap,
			"new_capacity", newCap,
			"duration", duration,
		)
	}
}

// LogShrink logs a shrink to fit.
func (l *Logger) LogShrink(oldCap, newCap int) {
	l.Debug("shrink completed",
		"old_capacity", oldCap,
		"new_capacity", newCap,
	)
}

// LogRelease logs the release of a block.
func (l *Logger) LogRelease(capacity int) {
	l.Debug("block released",
		"capacity", capacity,
	)
}
