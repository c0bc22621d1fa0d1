// Package config loads service configuration from an optional YAML file
// with PRINTGEN_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	// Addr is the listen address for the HTTP API.
	Addr string `yaml:"addr"`

	Database struct {
		// DSN is the sqlite database path or URI.
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	Log struct {
		// Level is a zap level name: debug, info, warn, error.
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func defaults() *Config {
	cfg := &Config{Addr: ":8080"}
	cfg.Database.DSN = "printgen.db"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads path (optional) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("PRINTGEN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PRINTGEN_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("PRINTGEN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

// Module provides the configuration to the API binary. The config file
// path comes from PRINTGEN_CONFIG when set.
var Module = fx.Module("config",
	fx.Provide(func() (*Config, error) {
		return Load(os.Getenv("PRINTGEN_CONFIG"))
	}),
)
