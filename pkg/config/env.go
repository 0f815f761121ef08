// Package config holds small environment and validation helpers shared by
// the configuration loader and the process entry points.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or defaultValue
// when it is unset or blank.
//
// Example:
//
//	version := GetEnvString("VERSION", "dev")
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the value of an environment variable parsed with
// time.ParseDuration. An unparsable value logs a warning and yields defaultValue.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Duration("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
