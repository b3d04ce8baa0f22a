package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      slog.Level
	Storage       string // "redis" or "memory"
	RedisURL      string
	ResultTTL     time.Duration
	LocationsFile string // optional YAML override of location monster lists
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Storage:       strings.ToLower(getEnv("STORAGE", "redis")),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		LocationsFile: os.Getenv("LOCATIONS_FILE"),
	}

	ttl, err := time.ParseDuration(getEnv("RESULT_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESULT_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("RESULT_TTL must be positive, got %s", ttl)
	}
	cfg.ResultTTL = ttl

	switch cfg.Storage {
	case "redis", "memory":
	default:
		return nil, fmt.Errorf("unsupported STORAGE %q (supported: redis, memory)", cfg.Storage)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
