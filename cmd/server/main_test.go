package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/backend/internal/config"
	"backoffice/backend/internal/store"
)

func TestValidateSecurityConfigRejectsWeakValues(t *testing.T) {
	assert.Error(t, validateSecurityConfig(config.Config{AuthSecret: "short"}))
	assert.Error(t, validateSecurityConfig(config.Config{}))
}

func TestValidateSecurityConfigAcceptsStrongValues(t *testing.T) {
	assert.NoError(t, validateSecurityConfig(config.Config{AuthSecret: "0123456789abcdef0123456789abcdef"}))
}

func TestOpenBackendMemory(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")
	t.Setenv("SEED_CASHIER_PASSWORD", "cashier123")

	collections, closers, err := openBackend(context.Background(), config.Config{StoreBackend: config.BackendMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, closers)

	docs, err := collections.All(context.Background(), store.CollectionInvoices)
	require.NoError(t, err)
	assert.NotEmpty(t, docs)
}

func TestOpenBackendUnknown(t *testing.T) {
	_, _, err := openBackend(context.Background(), config.Config{StoreBackend: "mongo"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLoggerHonoursOverrides(t *testing.T) {
	log, err := newLogger(config.Config{AppEnv: "production", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(1))

	_, err = newLogger(config.Config{LogLevel: "shout"})
	assert.Error(t, err)
}
