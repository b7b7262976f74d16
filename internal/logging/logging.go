// Package logging собирает logr.Logger поверх slog-хендлера из конфигурации.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-logr/logr"

	"github.com/yourname/rmbg_lite/internal/config"
)

// New возвращает логгер с уровнем и форматом из cfg.
func New(cfg config.Log, w io.Writer) logr.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return logr.FromSlogHandler(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
