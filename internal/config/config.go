package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

// Config holds all configuration for the simulator and match host
type Config struct {
	Roles      RolesConfig
	Simulation SimulationConfig
	Redis      RedisConfig
	Log        LogConfig
}

// RolesConfig points at role definition data
type RolesConfig struct {
	// File overrides the embedded catalog when set
	File string `env:"ROLES_FILE"`
}

// SimulationConfig controls seeded simulation runs
type SimulationConfig struct {
	Seed         int64         `env:"SIM_SEED" envDefault:"1"`
	Trials       int           `env:"SIM_TRIALS" envDefault:"10000"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"100ms"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL         string        `env:"REDIS_URL"`
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"2h"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeValidation, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.Simulation.Trials <= 0 {
		return apperr.Validationf("SIM_TRIALS must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.TickInterval <= 0 {
		return apperr.Validationf("TICK_INTERVAL must be positive, got %s", c.Simulation.TickInterval)
	}
	if c.Redis.SnapshotTTL < 0 {
		return apperr.Validationf("SNAPSHOT_TTL cannot be negative, got %s", c.Redis.SnapshotTTL)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
