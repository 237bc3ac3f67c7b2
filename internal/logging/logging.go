package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs the default slog logger. Logs go to w, or stderr when w is
// nil, so they never mix with results written to stdout.
func Init(w io.Writer, json bool, level slog.Level) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
