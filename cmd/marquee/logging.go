package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dkoosis/marquee/internal/config"
)

// newLogger returns the session logger. Without a log file nothing is
// logged, since the terminal is owned by the marquee and the prompt.
func newLogger(cfg *config.ResolvedConfig) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { _ = f.Close() }, nil
}
