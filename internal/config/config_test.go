package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGIN", "APP_ENV", "STORE_BACKEND", "DATABASE_URL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "FIRESTORE_PROJECT_ID",
		"AUTH_SECRET", "ACCESS_TOKEN_TTL_MINUTES", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Empty(t, cfg.AuthSecret)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, 480, cfg.AccessTokenTTLMinutes)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	require.NoError(t, cfg.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", " Redis ")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_SECRET", "  0123456789abcdef0123456789abcdef  ")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15, cfg.AccessTokenTTLMinutes)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.AuthSecret)
	require.NoError(t, cfg.Validate())
}

func TestLoadInfersBackendFromDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/backoffice")

	cfg := Load()
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
}

func TestLoadFallsBackOnInvalidTokenTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-5")

	assert.Equal(t, 480, Load().AccessTokenTTLMinutes)
}

func TestValidateRequiresBackendSettings(t *testing.T) {
	cases := []Config{
		{StoreBackend: BackendPostgres},
		{StoreBackend: BackendRedis},
		{StoreBackend: BackendFirestore},
		{StoreBackend: "mongo"},
	}
	for _, cfg := range cases {
		assert.Error(t, cfg.Validate(), cfg.StoreBackend)
	}
}
