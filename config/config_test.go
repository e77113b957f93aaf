package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/habit-engine/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Server.Metrics)
	assert.Equal(t, "tally.db", cfg.Storage.Path)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9090"
cors_origins = ["http://localhost:5173"]

[storage]
path = "/tmp/test.db"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Server.Metrics)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_UnknownKeysRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
adress = ":9090"
`), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
