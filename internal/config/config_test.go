package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8600", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Dispatch.QueueDepth)
	assert.Equal(t, time.Second, cfg.Dispatch.MaintenanceInterval)
	assert.True(t, cfg.Monitor.Enabled)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FILEMGR_PORT", "9999")
	t.Setenv("FILEMGR_QUEUE_DEPTH", "4")
	t.Setenv("FILEMGR_MAINTENANCE_INTERVAL", "250ms")
	t.Setenv("FILEMGR_MONITOR_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Dispatch.QueueDepth)
	assert.Equal(t, 250*time.Millisecond, cfg.Dispatch.MaintenanceInterval)
	assert.False(t, cfg.Monitor.Enabled)
}

func TestLoadDefaultsWithoutEnv(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
}
