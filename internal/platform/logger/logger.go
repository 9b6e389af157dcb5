// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"

	"gitlab.com/greyxor/slogor"
)

// New returns a slog.Logger writing to stderr. JSON output is the default;
// "text" selects a colorized human-readable handler for local development.
func New(format string) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "text":
		handler = slogor.NewHandler(os.Stderr, slogor.ShowSource())
	default:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return slog.New(handler)
}
