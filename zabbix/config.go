package zabbix

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything a Session and the mounted API need.
type Config struct {
	// Prefix is the URL prefix for the mounted HTTP API (default: "/zabbix").
	Prefix string `yaml:"prefix"`

	// Database selects the backing Zabbix database.
	Database DatabaseConfig `yaml:"database"`

	// Retry governs reconnection after a failed liveness probe.
	Retry RetryConfig `yaml:"retry"`

	// Stream configures the live alert websocket feed.
	Stream StreamConfig `yaml:"stream"`

	// DevMode enables verbose logging.
	DevMode bool `yaml:"dev_mode"`
}

// DatabaseConfig selects the database engine and DSN.
type DatabaseConfig struct {
	// Driver is one of "mysql", "postgres" or "sqlite".
	Driver string `yaml:"driver"`
	// DSN in the driver's native format.
	DSN string `yaml:"dsn"`
}

// RetryConfig bounds reconnection. Backoff doubles per attempt up to
// MaxBackoff. Retries apply to connection establishment only, never to
// query or statistic semantics.
type RetryConfig struct {
	Attempts   int           `yaml:"attempts"`
	Backoff    time.Duration `yaml:"backoff"`
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// StreamConfig configures the live alert feed.
type StreamConfig struct {
	// Enabled mounts the websocket endpoint and starts the poller.
	Enabled bool `yaml:"enabled"`
	// PollInterval between alert sweeps (default: 10s).
	PollInterval time.Duration `yaml:"poll_interval"`
}

var validDrivers = map[string]bool{
	"mysql":    true,
	"postgres": true,
	"sqlite":   true,
}

// applyDefaults fills zero-valued fields with sane defaults.
func applyDefaults(cfg Config) Config {
	if cfg.Prefix == "" {
		cfg.Prefix = "/zabbix"
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry.Attempts = 3
	}
	if cfg.Retry.Backoff == 0 {
		cfg.Retry.Backoff = 500 * time.Millisecond
	}
	if cfg.Retry.MaxBackoff == 0 {
		cfg.Retry.MaxBackoff = 5 * time.Second
	}
	if cfg.Stream.PollInterval == 0 {
		cfg.Stream.PollInterval = 10 * time.Second
	}
	return cfg
}

// validate fails fast on input that would only break later, before any I/O.
func (cfg Config) validate() error {
	if !validDrivers[cfg.Database.Driver] {
		return &ValidationError{Msg: fmt.Sprintf("database driver must be mysql, postgres or sqlite, got %q", cfg.Database.Driver)}
	}
	if cfg.Database.DSN == "" {
		return &ValidationError{Msg: "database dsn is required"}
	}
	return nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
