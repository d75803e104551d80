// Package log configures the process-wide slog default and hands out
// module-scoped loggers.
package log

import (
	"log/slog"
	"os"
)

func Setup(logLevel string) {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// WithModule returns the default logger tagged with a module attribute, the
// convention every package here uses for log filtering.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
