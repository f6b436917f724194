package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New constructs a text logger with the desired log level and installs it as
// the slog default.
func New(service, level string) *slog.Logger {
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	log := slog.New(h).With("service", service)
	slog.SetDefault(log)
	return log
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
