package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultMode selects which built-in endpoint is used when the config file
// does not set one. Injected at build time via ldflags: "development" for
// local builds, "production" for releases.
var DefaultMode = "development"

const (
	devEndpoint  = "http://localhost:8081/api/medical-assistant/"
	prodEndpoint = "https://aid-dermatilogy-cbfbbad0cdhscbf9.spaincentral-01.azurewebsites.net/api/medical-assistant/"

	defaultTimeout = 2 * time.Minute
)

type Config struct {
	Mode     string // "development" or "production"
	Endpoint string // full URL of the diagnosis endpoint
	Timeout  time.Duration
}

type tomlConfig struct {
	Mode           string `toml:"mode"`
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Dir returns the per-user config directory (~/.config/dermassist). It also
// holds the durable session token and the TUI log file.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "dermassist")
}

// Load reads config from Dir(). A missing or unreadable config file is not an
// error; defaults apply.
func Load() (*Config, error) {
	return loadFrom(filepath.Join(Dir(), "config.toml"))
}

func loadFrom(path string) (*Config, error) {
	cfg := &Config{
		Mode:    DefaultMode,
		Timeout: defaultTimeout,
	}

	if _, err := os.Stat(path); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(path, &tc); err == nil {
			if tc.Mode != "" {
				cfg.Mode = strings.ToLower(strings.TrimSpace(tc.Mode))
			}
			cfg.Endpoint = strings.TrimSpace(tc.Endpoint)
			if tc.TimeoutSeconds > 0 {
				cfg.Timeout = time.Duration(tc.TimeoutSeconds) * time.Second
			}
		}
	}

	if cfg.Endpoint == "" {
		if cfg.Mode == "production" {
			cfg.Endpoint = prodEndpoint
		} else {
			cfg.Endpoint = devEndpoint
		}
	}

	return cfg, nil
}
