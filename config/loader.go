package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file,
	// found by walking up from the working directory.
	ProjectConfigFile = "aocli.yaml"
	// UserConfigDir is the directory for user-level config, under $HOME.
	UserConfigDir = ".config/aocli"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Defaults
// 2. User config (~/.config/aocli/config.yaml)
// 3. Project config (aocli.yaml in current or parent directories)
// 4. Environment variables (AOC_SESSION, AOC_CACHE_DIR)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		userConfig, err := LoadFromFile(userConfigPath)
		switch {
		case err == nil:
			l.logger.Debug("loaded user config", "path", userConfigPath)
			config.Merge(userConfig)
		case !errors.Is(err, fs.ErrNotExist):
			l.logger.Warn("failed to load user config", "path", userConfigPath, "error", err)
		}
	}

	if projectConfigPath := l.findProjectConfig(); projectConfigPath != "" {
		projectConfig, err := LoadFromFile(projectConfigPath)
		if err == nil {
			l.logger.Debug("loaded project config", "path", projectConfigPath)
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("failed to load project config", "path", projectConfigPath, "error", err)
		}
	}

	if session := os.Getenv(EnvSession); session != "" {
		config.Session = session
	}
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		config.CacheDir = cacheDir
	}
	if config.CacheDir == "" {
		config.CacheDir = defaultCacheDir()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// userConfigPath returns the path of the user-level config file, or ""
// when the home directory cannot be determined.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks up from the working directory looking for a
// project config file.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// defaultCacheDir places the cache under the OS user cache directory,
// falling back to a local directory.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "cache"
	}
	return filepath.Join(base, "aocli")
}
