// internal/util/logger.go
package util

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var logger *slog.Logger

// sensitiveKeys are attribute keys whose values never reach the log output.
var sensitiveKeys = map[string]struct{}{
	"pin":         {},
	"closepin":    {},
	"close_pin":   {},
	"loginpin":    {},
	"login_pin":   {},
	"accountpin":  {},
	"account_pin": {},
}

// InitLogger initializes the global structured logger.
// It sets up a JSON handler for production-like logs at the given level.
func InitLogger(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true, // Add file and line number to logs
		Level:       lvl,
		ReplaceAttr: maskSensitive,
	})
	logger = slog.New(handler)
	slog.SetDefault(logger) // Set as default logger for convenience
	return nil
}

// GetLogger returns the initialized global logger.
func GetLogger() *slog.Logger {
	if logger == nil {
		_ = InitLogger("info") // Should be called explicitly at app start
	}
	return logger
}

// ParseLevel maps a textual level (debug, info, warn, error) to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func maskSensitive(_ []string, a slog.Attr) slog.Attr {
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, "******")
	}
	return a
}

// IsSensitiveKey reports whether an attribute key names a credential.
func IsSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
