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

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.StatePath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EVENTDECK_BASE_URL", "http://records.internal:3000")
	t.Setenv("EVENTDECK_REFRESH_INTERVAL", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://records.internal:3000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://store:9000\nlisten_addr: :9090\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://store:9000", cfg.BaseURL)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
