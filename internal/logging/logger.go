package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON logger on stdout and returns its handler so it can
// later be combined with the database sink. Development runs log at DEBUG.
func Setup(env string) slog.Handler {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return handler
}
