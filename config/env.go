package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are the .env files LoadEnv reads when none are given.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads environment variables from the given .env files, later files
// overriding earlier ones and the process environment. Missing files are
// skipped. It returns the files that were loaded.
func LoadEnv(logger *slog.Logger, files ...string) []string {
	if logger == nil {
		logger = slog.Default()
	}
	if len(files) == 0 {
		files = DefaultEnvFiles
	}

	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			logger.Warn("failed to load env file", "file", file, "err", err)
			continue
		}
		loaded = append(loaded, file)
	}

	if len(loaded) == 0 {
		logger.Debug("no env files loaded; relying on process environment")
	} else {
		logger.Debug("loaded env files", "files", strings.Join(loaded, ", "))
	}
	return loaded
}

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default value
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvDuration gets a duration environment variable with a default value
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
