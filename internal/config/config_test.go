package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.GatewayDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.ExpiringWindow)
	assert.False(t, cfg.SeedOnStart)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("ESTATESYNC_GATEWAY_DRIVER", DriverPostgres)
	t.Setenv("ESTATESYNC_DATABASE_URL", "")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfig_Mongo(t *testing.T) {
	t.Setenv("ESTATESYNC_GATEWAY_DRIVER", DriverMongo)
	t.Setenv("ESTATESYNC_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("ESTATESYNC_SEED_ON_START", "true")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "estatesync", cfg.MongoDatabase)
	assert.True(t, cfg.SeedOnStart)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{GatewayDriver: "firestore", ExpiringWindow: time.Hour}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "firestore")
}
