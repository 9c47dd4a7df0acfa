// Package config loads the optional memsweep config file. Everything in it
// has a flag equivalent; flags win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables for the trim engine and the sampler loop.
type Config struct {
	// Workers bounds the trim worker pool.
	Workers int

	// Exclude lists pids a trim pass skips without opening.
	Exclude []int32

	// Interval is the stat watch cadence.
	Interval time.Duration
}

// fileConfig is the on-disk shape. Interval is a duration string ("1s",
// "500ms") so the file reads the way flags do.
type fileConfig struct {
	Workers  int     `yaml:"workers"`
	Exclude  []int32 `yaml:"exclude"`
	Interval string  `yaml:"interval"`
}

// Default returns the built-in configuration: a pool of ten workers and
// the one-second display cadence of the original widget.
func Default() Config {
	return Config{
		Workers:  10,
		Interval: time.Second,
	}
}

// DefaultPath is the config file location probed when --config is not set.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memsweep.yaml")
}

// Load reads path over the defaults. A missing file is not an error; a
// present but unreadable or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Workers >= 1 {
		cfg.Workers = fc.Workers
	}
	if len(fc.Exclude) > 0 {
		cfg.Exclude = fc.Exclude
	}
	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: interval: %w", path, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("parse config %s: interval must be positive", path)
		}
		cfg.Interval = d
	}
	return cfg, nil
}
