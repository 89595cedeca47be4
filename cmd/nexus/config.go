package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ServeConfig holds the playground server configuration.
type ServeConfig struct {
	Addr           string     `toml:"addr"`
	ReadTimeout    Duration   `toml:"read_timeout"`
	WriteTimeout   Duration   `toml:"write_timeout"`
	MaxSourceBytes int64      `toml:"max_source_bytes"`
	CORS           CORSConfig `toml:"cors"`
}

// CORSConfig holds cross-origin settings for the browser playground.
type CORSConfig struct {
	Enabled        bool     `toml:"enabled"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration wraps time.Duration for TOML values like "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func defaultServeConfig() ServeConfig {
	return ServeConfig{
		Addr:           "localhost:8450",
		ReadTimeout:    Duration{15 * time.Second},
		WriteTimeout:   Duration{15 * time.Second},
		MaxSourceBytes: 1 << 20,
		CORS: CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
		},
	}
}

// loadServeConfig reads the TOML config at path. An empty path falls back to
// ./nexus.toml when present; a missing fallback just means defaults.
func loadServeConfig(path string) (ServeConfig, error) {
	cfg := defaultServeConfig()

	explicit := path != ""
	if !explicit {
		path = "nexus.toml"
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return cfg, fmt.Errorf("config file %q: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
