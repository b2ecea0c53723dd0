// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want 12", cfg.Security.BcryptCost)
	}
	if cfg.Security.CookieName != "session" {
		t.Errorf("Security.CookieName = %q, want session", cfg.Security.CookieName)
	}
	if cfg.Analytics.MissingScores != "zero" {
		t.Errorf("Analytics.MissingScores = %q, want zero", cfg.Analytics.MissingScores)
	}
	if cfg.Analytics.DefaultPeriod != "month" {
		t.Errorf("Analytics.DefaultPeriod = %q, want month", cfg.Analytics.DefaultPeriod)
	}
	if cfg.Security.SessionTimeout != 30*24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 720h", cfg.Security.SessionTimeout)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SESSION_TIMEOUT", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ANALYTICS_MISSING_SCORES", "excluded")
	t.Setenv("DUCKDB_PATH", ":memory:")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Security.SessionTimeout != 2*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 2h", cfg.Security.SessionTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Analytics.MissingScores != "excluded" {
		t.Errorf("Analytics.MissingScores = %q, want excluded", cfg.Analytics.MissingScores)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
security:
  jwt_secret: "` + testSecret + `"
analytics:
  default_period: week
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.Analytics.DefaultPeriod != "week" {
		t.Errorf("Analytics.DefaultPeriod = %q, want week", cfg.Analytics.DefaultPeriod)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (env beats file)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_MissingSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "")

	_, err := LoadWithKoanf()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, "JWT_SECRET"},
		{"bcrypt too low", func(c *Config) { c.Security.BcryptCost = 2 }, "BCRYPT_COST"},
		{"insecure production cookie", func(c *Config) { c.Server.Environment = "production" }, "COOKIE_SECURE"},
		{"bad missing policy", func(c *Config) { c.Analytics.MissingScores = "skip" }, "ANALYTICS_MISSING_SCORES"},
		{"bad period", func(c *Config) { c.Analytics.DefaultPeriod = "year" }, "ANALYTICS_DEFAULT_PERIOD"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			cfg.Security.JWTSecret = testSecret
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
