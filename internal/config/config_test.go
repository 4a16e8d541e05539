package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshulm/prepdeck/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		ContentDir:        "content",
		LogLevel:          "INFO",
		ReloadWorkerCount: 1,
		ReloadQueueSize:   8,
		DueLimit:          0,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_EmptyContentDir(t *testing.T) {
	cfg := validConfig()
	cfg.ContentDir = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONTENT_DIR cannot be empty")
}

func TestValidate_WorkerAndQueueBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero workers", func(c *config.Config) { c.ReloadWorkerCount = 0 }},
		{"negative workers", func(c *config.Config) { c.ReloadWorkerCount = -2 }},
		{"zero queue", func(c *config.Config) { c.ReloadQueueSize = 0 }},
		{"negative due limit", func(c *config.Config) { c.DueLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "CONTENT_DIR", "LOG_LEVEL", "RELOAD_WORKER_COUNT", "RELOAD_QUEUE_SIZE", "DUE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:prepdeck.db", cfg.DBPath)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 1, cfg.ReloadWorkerCount)
	assert.Equal(t, 8, cfg.ReloadQueueSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesAndBadInts(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("RELOAD_WORKER_COUNT", "4")
	t.Setenv("RELOAD_QUEUE_SIZE", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 4, cfg.ReloadWorkerCount)
	assert.Equal(t, 8, cfg.ReloadQueueSize, "unparseable values fall back to the default")
}
