// Package config provides helpers for reading typed values from environment
// variables and validating them.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when it is unset or empty.
//
// Example:
//
//	addr := GetEnvString("SERVER_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns key parsed as an int. An unset key yields defaultValue;
// an unparsable one yields defaultValue and a warning.
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, "integer", strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns key parsed as a float64, with the same fallback rules as GetEnvInt.
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		warnInvalid(key, valueStr, "float", strconv.FormatFloat(defaultValue, 'g', -1, 64), err)
		return defaultValue
	}
	return value
}

// GetEnvInt64 returns key parsed as an int64, with the same fallback rules as GetEnvInt.
func GetEnvInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		warnInvalid(key, valueStr, "integer", strconv.FormatInt(defaultValue, 10), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns key parsed by time.ParseDuration (e.g. "30s",
// "1m30s"), with the same fallback rules as GetEnvInt.
//
// Example:
//
//	timeout := GetEnvDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, "duration", defaultValue.String(), err)
		return defaultValue
	}
	return value
}

func warnInvalid(key, value, kind, defaultValue string, err error) {
	slog.Warn("invalid "+kind+" value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", defaultValue),
		slog.String("error", err.Error()))
}
