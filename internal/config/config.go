// Package config loads the turing CLI configuration from a YAML file and the
// environment. Precedence, lowest first: defaults, file, environment, CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string `yaml:"log_level" env:"TURING_LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"TURING_LOG_FILE"`

	// MaxSteps bounds runs started by the CLI and the servers. Zero means unbounded.
	MaxSteps int `yaml:"max_steps" env:"TURING_MAX_STEPS"`
	// Capacity is the number of tape cells.
	Capacity int `yaml:"capacity" env:"TURING_CAPACITY"`

	Store   StoreConfig   `yaml:"store" envPrefix:"TURING_STORE_"`
	HTTP    HTTPConfig    `yaml:"http" envPrefix:"TURING_HTTP_"`
	Tracing TracingConfig `yaml:"tracing" envPrefix:"TURING_TRACING_"`
}

// StoreConfig selects where run snapshots are persisted.
type StoreConfig struct {
	Driver        string        `yaml:"driver" env:"DRIVER"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	TTL           time.Duration `yaml:"ttl" env:"TTL"`
	SQLitePath    string        `yaml:"sqlite_path" env:"SQLITE_PATH"`

	// EncryptionKey is a base64 AES-256 key. When set, snapshots are sealed before
	// they reach the store.
	EncryptionKey string `yaml:"encryption_key" env:"ENCRYPTION_KEY"`
	// EncryptionFallbackKeys are older base64 keys still accepted for reading.
	EncryptionFallbackKeys []string `yaml:"encryption_fallback_keys" env:"ENCRYPTION_FALLBACK_KEYS" envSeparator:","`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// TracingConfig selects the OpenTelemetry exporter: none, stdout (to stderr) or otlp.
type TracingConfig struct {
	Exporter string `yaml:"exporter" env:"EXPORTER"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		MaxSteps: 100000,
		Capacity: 256,
		Store: StoreConfig{
			Driver:     DriverMemory,
			RedisAddr:  "localhost:6379",
			SQLitePath: "turing.db",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Tracing: TracingConfig{
			Exporter: "none",
		},
	}
}

// Load reads path (YAML) over the defaults, then applies environment overrides.
// A missing file is not an error; an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// no config file, keep defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the store driver.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps))
	}
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	switch c.Store.Driver {
	case DriverMemory, DriverRedis, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	switch c.Tracing.Exporter {
	case "", "none", "stdout":
	case "otlp":
		if c.Tracing.Endpoint == "" {
			errs = append(errs, errors.New("tracing.endpoint is required for the otlp exporter"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown trace exporter %q", c.Tracing.Exporter))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
