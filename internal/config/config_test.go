package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/config"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1), cfg.Simulation.Seed)
	assert.Equal(t, 10000, cfg.Simulation.Trials)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 2*time.Hour, cfg.Redis.SnapshotTTL)
	assert.Empty(t, cfg.Roles.File)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SIM_SEED", "42")
	t.Setenv("SIM_TRIALS", "250")
	t.Setenv("TICK_INTERVAL", "50ms")
	t.Setenv("ROLES_FILE", "/etc/lanternfall/roles.yaml")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 250, cfg.Simulation.Trials)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, "/etc/lanternfall/roles.yaml", cfg.Roles.File)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Redis.URL)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("SIM_TRIALS", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestLoad_RejectsUnparseable(t *testing.T) {
	t.Setenv("SIM_SEED", "not-a-number")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSlogLevel_FallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, config.LogConfig{Level: "loud"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, config.LogConfig{Level: "warn"}.SlogLevel())
}
