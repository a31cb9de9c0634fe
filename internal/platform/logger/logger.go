package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text on stdout keeps local
// runs readable; ship JSON by flipping the handler when log aggregation lands.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
