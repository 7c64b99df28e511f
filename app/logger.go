package app

import (
	"io"
	"log/slog"

	"github.com/searchktools/serwer/config"
)

// NewLogger returns a text logger at Debug level in development and Info
// level otherwise.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
