package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup configures slog.Default() with the given format and level and returns
// the configured logger. Output goes to stderr so stdout stays free for
// command output and the MCP stdio transport.
//
// format is "text" (default) or "json"; level is "debug", "info", "warn" or
// "error".
//
// The level of the returned logger can be changed later with SetLevel.
func Setup(format, level string) *slog.Logger {
	SetLevel(level)
	logger := NewWithLevel(os.Stderr, format, &defaultLevel)
	slog.SetDefault(logger)
	return logger
}

// defaultLevel is the level of loggers created by Setup.
var defaultLevel slog.LevelVar

// SetLevel changes the level of loggers created by Setup.
func SetLevel(level string) {
	defaultLevel.Set(ParseLevel(level))
}

// Level returns the current level of loggers created by Setup.
func Level() slog.Level {
	return defaultLevel.Level()
}

// New returns a logger writing to w with the given format and level.
func New(w io.Writer, format, level string) *slog.Logger {
	return NewWithLevel(w, format, ParseLevel(level))
}

// NewWithLevel is like New but takes a slog.Leveler, so a *slog.LevelVar
// can adjust the level at runtime.
func NewWithLevel(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a level string to slog.Level.
// Defaults to slog.LevelInfo for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
