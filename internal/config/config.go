// Package config reads and writes the on-disk preference file. The engine
// itself never touches disk; this is collaborator territory feeding hotkey
// and cadence preferences into it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/mouseminder/mouseminder/internal/core/hotkey"
)

// Defaults match the tracking engine's design values.
const (
	DefaultPollIntervalMS  = 50
	DefaultIdleThresholdMS = 2000
)

// Config is the persisted preference set.
type Config struct {
	Hotkey          string `json:"hotkey"`
	PollIntervalMS  int    `json:"pollIntervalMs"`
	IdleThresholdMS int    `json:"idleThresholdMs"`
}

// Default returns a Config with the platform default hotkey and design
// default timings.
func Default() *Config {
	return &Config{
		Hotkey:          hotkey.Default().String(),
		PollIntervalMS:  DefaultPollIntervalMS,
		IdleThresholdMS: DefaultIdleThresholdMS,
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// malformed content is an error. Zero or negative timings fall back to the
// defaults so a partial file stays usable.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := sonic.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = DefaultPollIntervalMS
	}
	if cfg.IdleThresholdMS <= 0 {
		cfg.IdleThresholdMS = DefaultIdleThresholdMS
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := sonic.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Binding parses the configured hotkey.
func (c *Config) Binding() (hotkey.Binding, error) {
	return hotkey.Parse(c.Hotkey)
}

// PollInterval returns the polling cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// IdleThreshold returns the idle threshold as a duration.
func (c *Config) IdleThreshold() time.Duration {
	return time.Duration(c.IdleThresholdMS) * time.Millisecond
}
