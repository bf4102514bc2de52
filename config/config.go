// Package config loads application configuration from an optional YAML
// file, applies environment overrides, and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store backend names.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// GoogleConfig configures the Google Cloud speech adapters. The same API
// key serves both recognition and synthesis.
type GoogleConfig struct {
	APIKey string `yaml:"api_key"`
	// STTModel overrides the recognition model. Empty means the adapter
	// default.
	STTModel string `yaml:"stt_model"`
	// RateLimit is the client-side QPS cap per adapter. Zero means the
	// adapter default.
	RateLimit float64 `yaml:"rate_limit"`
}

// GeminiConfig configures the generative text provider.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// StoreConfig selects and configures the session store backend.
type StoreConfig struct {
	// Backend is "memory" or "redis".
	Backend string `yaml:"backend"`
	// RedisAddr is the host:port of the Redis server (redis backend only).
	RedisAddr string `yaml:"redis_addr"`
	// KeyPrefix namespaces all Redis keys. Empty means the store default.
	KeyPrefix string `yaml:"key_prefix"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Config is the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google"`
	Gemini GeminiConfig `yaml:"gemini"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   StoreMemory,
			RedisAddr: "localhost:6379",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides on top, and validates. Environment variables
// GOOGLE_API_KEY, GEMINI_API_KEY and REDIS_ADDR always win over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Google.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the configuration for missing or inconsistent fields.
func (c *Config) Validate() error {
	var errs []error

	if c.Google.APIKey == "" {
		errs = append(errs, errors.New("google.api_key is required (or set GOOGLE_API_KEY)"))
	}
	if c.Gemini.APIKey == "" {
		errs = append(errs, errors.New("gemini.api_key is required (or set GEMINI_API_KEY)"))
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q (want %q or %q)", c.Store.Backend, StoreMemory, StoreRedis))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
