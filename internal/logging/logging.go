package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"qlcc/internal/config"
)

// New builds the process logger from cfg, writing to stdout, and installs it
// as the slog default.
func New(cfg config.LogConfig) *slog.Logger {
	logger := NewWithWriter(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter is New without touching the default logger.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		opts.AddSource = true
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", "qlcc"))
}

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
