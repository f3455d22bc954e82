package cli

import (
	"log/slog"
	"os"
)

// newLogger keeps service logs on stderr so stdout stays parseable.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
