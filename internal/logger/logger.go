// Package logger provides structured logging setup for the runnable agent.
package logger

import (
	"context"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/Strob0t/runnable/internal/config"
)

// LevelFatal marks errors that end the process. It sorts above slog.LevelError.
const LevelFatal = slog.Level(12)

// StackKey is the attribute key under which Stack stores a goroutine trace.
const StackKey = "stack"

// New creates a *slog.Logger from the given Logging config writing to w.
// The text format prints one "[LEVEL] message key=value" line per record;
// the JSON format adds a "service" attribute on every record. Records logged
// with a context carrying a run ID get a run_id attribute.
func New(cfg config.Logging, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)

	if cfg.Format == config.FormatJSON {
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceLevel,
		})
		return slog.New(NewContextHandler(handler)).With("service", cfg.Service)
	}

	return slog.New(NewContextHandler(NewTagHandler(w, level)))
}

// Fatal logs msg at LevelFatal.
func Fatal(ctx context.Context, l *slog.Logger, msg string, args ...any) {
	l.Log(ctx, LevelFatal, msg, args...)
}

// Stack returns an attribute holding the calling goroutine's stack trace.
func Stack() slog.Attr {
	return slog.String(StackKey, string(debug.Stack()))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "fatal":
		return LevelFatal
	default:
		return slog.LevelInfo
	}
}

// levelName renders l the way the text handler tags it.
func levelName(l slog.Level) string {
	if l >= LevelFatal {
		return "FATAL"
	}
	return l.String()
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(l))
		}
	}
	return a
}
