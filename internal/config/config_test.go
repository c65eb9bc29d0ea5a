package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urakawa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
store:
  backend: redis
  redis_addr: localhost:6379
  redis_db: 2
  redis_ttl: 90s
xuk:
  strict: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 2, cfg.Store.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.Store.RedisTTL)
	assert.Equal(t, "urakawa:doc:", cfg.Store.RedisPrefix, "unset keys keep their default")
	assert.True(t, cfg.Xuk.Strict)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: memory\n")
	t.Setenv("URAKAWA_STORE_BACKEND", "sqlite")
	t.Setenv("URAKAWA_STORE_SQLITE_PATH", "/tmp/docs.db")
	t.Setenv("URAKAWA_XUK_STRICT", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/docs.db", cfg.Store.SQLitePath)
	assert.True(t, cfg.Xuk.Strict)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"unknown key", "store:\n  backend: memory\n  colour: blue\n", false},
		{"malformed yaml", "store: [", false},
		{"bad duration", "store:\n  redis_ttl: soon\n", false},
		{"unknown backend", "store:\n  backend: tape\n", true},
		{"redis without addr", "store:\n  backend: redis\n", true},
		{"bad log level", "log_level: loud\n", true},
		{"bad metrics addr", "metrics_addr: nowhere\n", true},
		{"encryption key not base64", "store:\n  encryption_key: '***'\n", true},
		{"badger without dir", "store:\n  backend: badger\n  badger_dir: ''\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, config.ErrInvalid)
			} else {
				assert.NotErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestLoad_BadgerInMemoryNeedsNoDir(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: badger\n  badger_dir: ''\n  badger_in_memory: true\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Store.BadgerInMemory)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestXukOptions(t *testing.T) {
	cfg := config.Default()
	opts, err := cfg.XukOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	cfg.Xuk.BaseURI = "file:///books/"
	opts, err = cfg.XukOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}
