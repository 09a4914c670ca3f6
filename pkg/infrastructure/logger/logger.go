package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger. The dev environment lowers the level to
// debug so per-branch explosion traces are visible.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
