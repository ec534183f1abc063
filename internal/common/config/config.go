// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points at the loan-origination REST service.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout_ms"` // milliseconds, per request
	// Endpoints optionally replaces the built-in endpoint catalogue.
	Endpoints string `mapstructure:"endpoints"`
}

// RequestTimeout returns the per-request timeout.
func (a APIConfig) RequestTimeout() time.Duration {
	return GetDuration(a.Timeout)
}

// SessionConfig selects where the bearer token is persisted between runs.
type SessionConfig struct {
	Store string `mapstructure:"store"` // "file" or "redis"
	Path  string `mapstructure:"path"`  // file store location
	Key   string `mapstructure:"key"`   // storage key, fixed per installation
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig enables the Prometheus endpoint when ListenAddress is set.
type MetricsConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

// Enabled reports whether metrics should be served.
func (m MetricsConfig) Enabled() bool {
	return m.ListenAddress != ""
}

func (c *Config) String() string {
	return fmt.Sprintf("app=%s env=%s api=%s session=%s", c.App.Name, c.App.Environment, c.API.BaseURL, c.Session.Store)
}
