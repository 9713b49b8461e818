package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level emitted; one of "debug", "info", "warn",
	// "error" (case-insensitive). Invalid or empty defaults to info.
	Level string
	// Source adds the source file and line of the log call to each record.
	Source bool
}

// NewLogger creates a slog.Logger with a JSON handler writing to w.
// A nil writer falls back to os.Stderr. The result is suitable for
// nest.WithLogger, so container lookup-miss diagnostics share the
// application's log stream.
func NewLogger(config Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: config.Source,
		Level:     parseLevel(config.Level),
	})

	return slog.New(handler)
}

// Discard returns a logger that drops every record. Useful in tests that
// exercise lookup misses without polluting test output.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
