package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("API_BASE_URL", "")

	conf, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "DEV", conf.Env)
	assert.False(t, conf.TestMode)
	assert.Equal(t, "http://127.0.0.1:8000/api", conf.API.BaseURL)
	assert.Equal(t, 30*time.Second, conf.API.Timeout)
	assert.Equal(t, StoreMemory, conf.Session.Store)
	assert.Equal(t, 7*24*time.Hour, conf.Session.TTL)
	assert.Equal(t, "/login", conf.Gate.LoginPath)
	assert.Equal(t, "127.0.0.1:5432", conf.Database.Address())
	assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, StoreMemory, conf.Cache.Store)
	assert.False(t, conf.UsesRedis())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("TEST_SESSION_STORE", "Redis")
	t.Setenv("TEST_CACHE_TTL", "90s")
	t.Setenv("TEST_LOCALE", "EN")

	conf, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "https://api.example.com/api", conf.API.BaseURL)
	assert.Equal(t, StoreRedis, conf.Session.Store)
	assert.Equal(t, 90*time.Second, conf.Cache.TTL)
	assert.Equal(t, "en", conf.Locale)
	assert.True(t, conf.UsesRedis())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	t.Setenv("ENV", "qa")
	t.Setenv("API_BASE_URL", "")
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", ".env.qa"),
		[]byte("QA_SERVER_ADDRESS=:4000\nQA_GATE_LOGINPATH=/signin\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("QA_SERVER_ADDRESS")
		_ = os.Unsetenv("QA_GATE_LOGINPATH")
	})

	conf, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":4000", conf.Server.Address)
	assert.Equal(t, "/signin", conf.Gate.LoginPath)
}
