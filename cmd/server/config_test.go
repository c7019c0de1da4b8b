package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.JWTSecret = testSecret
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.HTTPAddress != ":8080" {
		t.Errorf("HTTPAddress = %q", cfg.Server.HTTPAddress)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN == "" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Address != ":9090" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"cert without key", func(c *Config) { c.Server.TLS.CertFile = "cert.pem" }, "together"},
		{"key without cert", func(c *Config) { c.Server.TLS.KeyFile = "key.pem" }, "together"},
		{"tls without files", func(c *Config) { c.Server.TLS.Enabled = true }, "cert_file is required"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "TASKBOARD_JWT_SECRET"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "TASKBOARD_JWT_SECRET"},
		{"negative ttl", func(c *Config) { c.Auth.TokenTTL = -time.Minute }, "token_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	yamlDoc := `
server:
  http_address: ":9000"
  query_timeout: 3s
database:
  driver: postgres
  dsn: postgres://app@localhost/tasks
auth:
  token_ttl: 45m
  lockout_threshold: 7
metrics:
  enabled: false
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TASKBOARD_JWT_SECRET", testSecret)
	t.Setenv("TASKBOARD_HTTP_ADDRESS", ":9100")
	t.Setenv("TASKBOARD_LOCKOUT_DURATION", "2m")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.HTTPAddress != ":9100" {
		t.Errorf("HTTPAddress = %q, want env override :9100", cfg.Server.HTTPAddress)
	}
	if cfg.Server.QueryTimeout != 3*time.Second {
		t.Errorf("QueryTimeout = %v, want 3s", cfg.Server.QueryTimeout)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Auth.TokenTTL != 45*time.Minute {
		t.Errorf("TokenTTL = %v, want 45m", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.LockoutThreshold != 7 {
		t.Errorf("LockoutThreshold = %d, want 7", cfg.Auth.LockoutThreshold)
	}
	if cfg.Auth.LockoutDuration != 2*time.Minute {
		t.Errorf("LockoutDuration = %v, want 2m", cfg.Auth.LockoutDuration)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by file")
	}
	if cfg.JWTSecret != testSecret {
		t.Error("secret not read from environment")
	}
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("TASKBOARD_JWT_SECRET", "")

	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error without TASKBOARD_JWT_SECRET")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
