package app

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/geopulse/timeline/internal/config"
)

// newLogger returns a JSON logger writing to a rotated file at path.
func newLogger(cfg config.LogConfig, path string) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	}

	// an empty level keeps the zero value, which is info
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.Level))

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
