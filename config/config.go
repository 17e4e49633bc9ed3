// Package config provides configuration loading for aocli. All ambient
// environment lookups (session credential, cache root) are collected here
// once at startup and passed into the client by value.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingSession is returned when no session credential is configured.
// Without it every request would be redirected to the login page.
var ErrMissingSession = errors.New("missing session credential")

// Environment variables recognized by the loader.
const (
	// EnvSession holds the puzzle site session cookie value.
	EnvSession = "AOC_SESSION"
	// EnvCacheDir overrides the cache root directory.
	EnvCacheDir = "AOC_CACHE_DIR"
)

// Config is the complete aocli configuration.
type Config struct {
	// Session is the puzzle site session cookie value.
	Session string `yaml:"session"`
	// CacheDir is the cache root (default: <user cache dir>/aocli)
	CacheDir string `yaml:"cache_dir"`
	// BaseURL is the puzzle site base URL.
	BaseURL string `yaml:"base_url"`
	// UserAgent identifies this tool to the puzzle site.
	UserAgent string `yaml:"user_agent"`
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults. The session has
// no default; it must come from a config file or the environment.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://adventofcode.com",
		UserAgent: "aocli (+https://github.com/aockit/aocli)",
		Timeout:   30 * time.Second,
	}
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Session == "" {
		return fmt.Errorf("%w: set %s or the session config key", ErrMissingSession, EnvSession)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Unset keys stay
// zero so the result can be merged over another config.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return config, nil
}

// Merge merges another config into this one; other's non-zero values take
// precedence.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Session != "" {
		c.Session = other.Session
	}
	if other.CacheDir != "" {
		c.CacheDir = other.CacheDir
	}
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.UserAgent != "" {
		c.UserAgent = other.UserAgent
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
}
