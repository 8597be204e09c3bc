package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Drivers de almacenamiento soportados
const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config configuración del servidor, leída de variables de entorno
type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"redis"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"gogoquiz.db"`
	Namespace     string        `env:"STORAGE_NAMESPACE" envDefault:"gogoquiz_storage_key_"`
	AppName       string        `env:"APP_NAME" envDefault:"gogoquiz"`
	SeedFile      string        `env:"SEED_FILE"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Load lee y valida la configuración
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverRedis, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER desconocido: %q", c.StorageDriver)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL no puede ser negativo: %s", c.SessionTTL)
	}
	return nil
}
