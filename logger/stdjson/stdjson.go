package stdjson

import (
	"log/slog"
	"os"
)

// NewDefault creates a structured JSON logger for production.
func NewDefault(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
