package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 8*time.Hour, cfg.Sync.Timeout)
	assert.True(t, cfg.Sync.Incremental)
	assert.Equal(t, "https://gitlab.com", cfg.GitLab.BaseURL)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("database:\n  host: db.internal\n  port: \"5433\"\n  user: indexer\n  name: commits\n  sslmode: disable\nsync:\n  timeout: 1h\n")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SYNC_TIMEOUT_SECONDS", "60")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, time.Minute, cfg.Sync.Timeout)
	assert.Equal(t,
		"host=db.internal user=indexer password=secret dbname=commits port=5433 sslmode=disable TimeZone=UTC",
		cfg.Database.DSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
