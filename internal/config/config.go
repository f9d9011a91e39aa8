package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config is read from ESTATESYNC_* environment variables.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`

	GatewayDriver string `envconfig:"GATEWAY_DRIVER" default:"memory"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"estatesync"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"estatesync.db"`

	// Empty keeps preferences in process.
	RedisURL string `envconfig:"REDIS_URL"`

	SeedOnStart     bool          `envconfig:"SEED_ON_START" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	ExpiringWindow  time.Duration `envconfig:"EXPIRING_WINDOW" default:"720h"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ESTATESYNC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.GatewayDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo driver")
		}
		if c.MongoDatabase == "" {
			return errors.New("MONGO_DATABASE is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unsupported GATEWAY_DRIVER: %s", c.GatewayDriver)
	}

	if c.ExpiringWindow <= 0 {
		return errors.New("EXPIRING_WINDOW must be positive")
	}
	return nil
}
