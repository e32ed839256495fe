// Package config loads tool configuration from YAML files and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for java-context-graph.
type Config struct {
	// Workers bounds concurrent method analyses per file; 0 means one
	// goroutine per method.
	Workers int `yaml:"workers" env:"JCG_WORKERS"`

	// MaxIterations bounds the reaching-definitions fixed point per
	// method. 0 means unbounded; the analysis converges on its own for
	// any finite method.
	MaxIterations int `yaml:"max_iterations" env:"JCG_MAX_ITERATIONS"`

	// CacheEnabled turns the on-disk document cache on or off.
	CacheEnabled bool `yaml:"cache_enabled" env:"JCG_CACHE_ENABLED"`

	// CacheDir is the directory holding the document cache.
	CacheDir string `yaml:"cache_dir" env:"JCG_CACHE_DIR"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"JCG_VERBOSE"`

	// JSONLogs switches log output to one JSON object per line.
	JSONLogs bool `yaml:"json_logs" env:"JCG_JSON_LOGS"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:       0,
		MaxIterations: 0,
		CacheEnabled:  true,
		CacheDir:      defaultCacheDir(),
		Verbose:       false,
		JSONLogs:      false,
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jcg/cache"
	}
	return filepath.Join(home, ".jcg", "cache")
}

// globalConfigFilePath returns the global config file path (~/.jcg/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jcg/config.yaml"
	}
	return filepath.Join(home, ".jcg", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.jcg/config.yaml)
func projectConfigFilePath() string {
	return ".jcg/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.jcg/config.yaml)
// 3. Global config (~/.jcg/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the specified YAML file path, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ProjectConfigPath returns the path Save should use for a project-level
// config file.
func ProjectConfigPath() string {
	return projectConfigFilePath()
}

// GlobalConfigPath returns the path Save should use for the global config
// file.
func GlobalConfigPath() string {
	return globalConfigFilePath()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be >= 0, got %d", c.MaxIterations)
	}
	if c.CacheEnabled && c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required when cache_enabled is true")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JCG_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("JCG_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv("JCG_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CacheEnabled = b
		}
	}
	if v := os.Getenv("JCG_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("JCG_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
	if v := os.Getenv("JCG_JSON_LOGS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.JSONLogs = b
		}
	}
}
