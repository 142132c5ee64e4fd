package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage backend names accepted in STORAGE_TYPE
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds server configuration, populated from the environment
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"scrambledash.db"`
	CatalogPath string `env:"CATALOG_PATH" envDefault:"data/acronyms.json"`

	// AdminPassword gates the admin surface; empty disables it
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.StorageType {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}

	return cfg, nil
}
