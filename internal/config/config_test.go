package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEngineReturnsDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadEngine(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEngine(), cfg)
}

func TestLoadEngineOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("map_dir: /data/maps\nmax_concurrency: 8\n"), 0o644))

	cfg, err := LoadEngine(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/maps", cfg.MapDir)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "info", cfg.LogLevel)
}
