package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger based on environment.
// level (debug|info|warn|error) overrides the environment default when set.
func Setup(env, level string) {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	jsonFormat := false

	switch env {
	case "production", "prod":
		// Production: JSON format, info level
		jsonFormat = true
	case "local", "dev", "development":
		// Development: Text format, debug level
		opts.Level = slog.LevelDebug
	}

	if lvl, ok := ParseLevel(level); ok {
		opts.Level = lvl
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Logger 초기화", "env", env, "level", opts.Level.Level().String())
}

// ParseLevel maps a LOG_LEVEL value to a slog level
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
