package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	ContentDir        string
	LogLevel          string
	ReloadWorkerCount int
	ReloadQueueSize   int
	DueLimit          int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:prepdeck.db"),
		ContentDir:        envOr("CONTENT_DIR", "content"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		ReloadWorkerCount: envIntOr("RELOAD_WORKER_COUNT", 1),
		ReloadQueueSize:   envIntOr("RELOAD_QUEUE_SIZE", 8),
		DueLimit:          envIntOr("DUE_LIMIT", 0),
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR cannot be empty")
	}
	if c.ReloadWorkerCount < 1 {
		return fmt.Errorf("RELOAD_WORKER_COUNT must be at least 1, got %d", c.ReloadWorkerCount)
	}
	if c.ReloadQueueSize < 1 {
		return fmt.Errorf("RELOAD_QUEUE_SIZE must be at least 1, got %d", c.ReloadQueueSize)
	}
	if c.DueLimit < 0 {
		return fmt.Errorf("DUE_LIMIT cannot be negative, got %d", c.DueLimit)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
