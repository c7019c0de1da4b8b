// Package main provides the taskboard API server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/good-yellow-bee/taskboard/internal/api/auth"
	"github.com/good-yellow-bee/taskboard/internal/storage"
)

// Config represents the server configuration. Values come from defaults,
// then the optional YAML file, then TASKBOARD_* environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Verbose  bool           `yaml:"-"` // set via CLI flag

	// JWTSecret signs access tokens. Secret: environment only.
	JWTSecret string `yaml:"-" env:"TASKBOARD_JWT_SECRET"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	HTTPAddress  string        `yaml:"http_address" env:"TASKBOARD_HTTP_ADDRESS"` // default :8080
	QueryTimeout time.Duration `yaml:"query_timeout" env:"TASKBOARD_QUERY_TIMEOUT"`
	TLS          TLSConfig     `yaml:"tls"`
}

// TLSConfig contains HTTPS settings for the API listener.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled" env:"TASKBOARD_TLS_ENABLED"`
	CertFile string `yaml:"cert_file" env:"TASKBOARD_TLS_CERT_FILE"`
	KeyFile  string `yaml:"key_file" env:"TASKBOARD_TLS_KEY_FILE"`
}

// DatabaseConfig selects the relational store.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"TASKBOARD_DB_DRIVER"` // sqlite or postgres
	// DSN is a file path for sqlite and a connection URL for postgres.
	DSN string `yaml:"dsn" env:"TASKBOARD_DB_DSN"`
}

// AuthConfig contains token and login protection settings.
type AuthConfig struct {
	TokenTTL         time.Duration `yaml:"token_ttl" env:"TASKBOARD_TOKEN_TTL"`
	BcryptCost       int           `yaml:"bcrypt_cost" env:"TASKBOARD_BCRYPT_COST"`
	RateLimitPerIP   int           `yaml:"rate_limit_per_ip" env:"TASKBOARD_RATE_LIMIT_PER_IP"`
	RateLimitPerUser int           `yaml:"rate_limit_per_user" env:"TASKBOARD_RATE_LIMIT_PER_USER"`
	LockoutThreshold int           `yaml:"lockout_threshold" env:"TASKBOARD_LOCKOUT_THRESHOLD"`
	LockoutDuration  time.Duration `yaml:"lockout_duration" env:"TASKBOARD_LOCKOUT_DURATION"`
	AllowAdminSignup bool          `yaml:"allow_admin_signup" env:"TASKBOARD_ALLOW_ADMIN_SIGNUP"`
}

// MetricsConfig contains the Prometheus listener settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"TASKBOARD_METRICS_ENABLED"`
	Address string `yaml:"address" env:"TASKBOARD_METRICS_ADDRESS"` // default :9090
}

// LoadConfig builds the configuration. path may be empty to skip the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields. API-level
// defaults such as the token TTL are applied by api.Config.SetDefaults.
func (c *Config) setDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = storage.DriverSQLite
	}
	if c.Database.DSN == "" && c.Database.Driver == storage.DriverSQLite {
		c.Database.DSN = "data/taskboard.db"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case storage.DriverSQLite, storage.DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q",
			storage.DriverSQLite, storage.DriverPostgres, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	certSet := c.Server.TLS.CertFile != ""
	keySet := c.Server.TLS.KeyFile != ""
	if certSet != keySet {
		return fmt.Errorf("server.tls.cert_file and server.tls.key_file must be provided together")
	}
	if c.Server.TLS.Enabled && !certSet {
		return fmt.Errorf("server.tls.cert_file is required when TLS is enabled")
	}

	if len(c.JWTSecret) < auth.MinSecretLength {
		return fmt.Errorf("TASKBOARD_JWT_SECRET must be set to at least %d bytes", auth.MinSecretLength)
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl must not be negative")
	}
	return nil
}
