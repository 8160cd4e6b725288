package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StoreBackends(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "rahasia")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("RULES_PATH", "")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("STORAGE_BASE_URL", "")
	t.Setenv("JOB_RECONCILE_HOUR", "")
	t.Setenv("JOB_LOW_STOCK_HOUR", "")

	t.Setenv("STORE_BACKEND", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "http://localhost:9090/api/v1/leave-requests/proof", cfg.Storage.BaseURL)

	t.Setenv("STORE_BACKEND", "sqlite")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "data/nala.db", cfg.Store.SQLitePath)

	t.Setenv("STORE_BACKEND", "mongo")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}
