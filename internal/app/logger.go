package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the application logger. It does not set the global
// logger, so tests can run isolated instances side by side.
//
// level takes any name slog.Level understands ("debug", "WARN", "info+2");
// anything else logs at info. Debug logging also records the source line.
func newLogger(level, format string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	opts.AddSource = opts.Level.Level() < slog.LevelInfo

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
