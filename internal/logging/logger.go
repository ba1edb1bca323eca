package logging

import (
	"io"
	"log/slog"
	"os"

	"beerdex/internal/config"
)

// Initialize sets up the global logger based on configuration.
func Initialize(cfg config.LoggingConfig) {
	logger := NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	slog.Info("Logging initialized",
		"level", cfg.Level,
		"format", cfg.Format,
	)
}

// NewLogger creates a logger writing to w with the given configuration.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	return slog.New(createHandler(w, cfg.Format, ParseLevel(cfg.Level)))
}

// ParseLevel maps a config level string to a slog level. Unknown values
// fall back to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func createHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
