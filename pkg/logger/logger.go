package logger

import (
	"log/slog"
	"os"
)

// Log falls back to the slog default until Init runs, so packages used from tests can log freely.
var Log = slog.Default()

func Init(environment string) {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
