package telemetry

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger initialises the global slog logger with a JSON handler. The
// level comes from LOG_LEVEL (debug, info, warn, error), defaulting to info.
func InitLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})
	slog.SetDefault(slog.New(handler))
}
