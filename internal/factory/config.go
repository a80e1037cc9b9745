package factory

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// Config holds configuration for the application factory, read from
// HWGAME_* environment variables
type Config struct {
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	StorageType string `env:"HWGAME_STORAGE_TYPE" envDefault:"memory"`

	// RedisURL is required when StorageType is "redis"
	RedisURL     string        `env:"HWGAME_REDIS_URL"`
	RedisGameTTL time.Duration `env:"HWGAME_REDIS_GAME_TTL" envDefault:"168h"`

	// SQLitePath is the database file used when StorageType is "sqlite"
	SQLitePath string `env:"HWGAME_SQLITE_PATH" envDefault:"homeworlds.db"`

	Host     string `env:"HWGAME_HOST"`
	Port     int    `env:"HWGAME_PORT" envDefault:"8080"`
	LogLevel string `env:"HWGAME_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the configuration from the process environment
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
