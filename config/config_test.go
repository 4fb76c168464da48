package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("APP_MODE", "SERVER")
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("MONGO_DBNAME", "devconnector")
	t.Setenv("REDIS_URL", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "SERVER", cfg.AppMode)
}

func TestLoadCacheTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)

	t.Setenv("CACHE_TTL", "not-a-duration")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRequiredVariables(t *testing.T) {
	required := []string{"MONGO_URL", "MONGO_DBNAME", "REDIS_URL", "JWT_SECRET"}

	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
