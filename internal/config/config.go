// Package config loads runtime configuration from defaults, an optional
// YAML config file, a local .env file, and EVENTDECK_-prefixed
// environment variables, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/eventdeck/eventdeck/pkg/errors"
)

// Config holds the runtime settings of the eventdeck process.
type Config struct {
	// BaseURL is the root address of the remote record store.
	BaseURL string

	// RefreshInterval is the catalog cache polling period.
	RefreshInterval time.Duration

	// ListenAddr is the HTTP facade bind address.
	ListenAddr string

	// StatePath is the identifier allocator's state file.
	StatePath string

	// CacheTTL bounds the HTTP facade's response cache.
	CacheTTL time.Duration

	// HTTPTimeout is the per-request timeout against the record store.
	HTTPTimeout time.Duration
}

// Load reads configuration. configFile may be empty; a missing .env is
// not an error.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("refresh_interval", "10s")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("state_path", defaultStatePath())
	v.SetDefault("cache_ttl", "30s")
	v.SetDefault("http_timeout", "30s")

	v.SetEnvPrefix("EVENTDECK")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapIO("read", configFile, err)
		}
	}

	cfg := &Config{
		BaseURL:         v.GetString("base_url"),
		RefreshInterval: v.GetDuration("refresh_interval"),
		ListenAddr:      v.GetString("listen_addr"),
		StatePath:       v.GetString("state_path"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		HTTPTimeout:     v.GetDuration("http_timeout"),
	}

	if cfg.BaseURL == "" {
		return nil, errors.NewValidationError("base_url", "", "cannot be empty")
	}
	return cfg, nil
}

// defaultStatePath places the allocator state under the user config
// directory, falling back to the working directory.
func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "eventdeck", "state.yaml")
	}
	return "eventdeck-state.yaml"
}
