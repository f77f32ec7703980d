// Package config resolves server settings from defaults, an optional YAML
// file and the environment. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the web shell settings.
type Config struct {
	Addr         string        `yaml:"addr"`
	Catalog      string        `yaml:"catalog"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
	Server       ServerConfig  `yaml:"server"`
}

// ServerConfig mirrors the http.Server timeouts.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
}

// Default returns the settings used when nothing overrides them.
// An empty Catalog means the bundled games list.
func Default() *Config {
	return &Config{
		Addr:       ":8080",
		LogLevel:   "info",
		SessionTTL: 30 * time.Minute,
		Server: ServerConfig{
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			IdleTimeout:       120 * time.Second,
			RequestTimeout:    15 * time.Second,
		},
	}
}

// Load reads path over the defaults. A missing path is not an error when
// path is empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PORT and ARCADE_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if port := strings.TrimSpace(getenv("PORT")); port != "" {
		c.Addr = ":" + port
	}
	if path := strings.TrimSpace(getenv("ARCADE_CATALOG")); path != "" {
		c.Catalog = path
	}
	if level := strings.TrimSpace(getenv("ARCADE_LOG_LEVEL")); level != "" {
		c.LogLevel = level
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
