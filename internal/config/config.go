// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package config loads GikiZero configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence
// (environment wins).
//
// Environment Variables:
//   - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT
//   - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
//   - JWT_SECRET (required, 32+ characters), SESSION_TIMEOUT, BCRYPT_COST
//   - SESSION_COOKIE_NAME, COOKIE_SECURE, CORS_ORIGINS (comma separated)
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, AUTH_RATE_LIMIT_REQUESTS, DISABLE_RATE_LIMIT
//   - ANALYTICS_MISSING_SCORES (zero, excluded), ANALYTICS_DEFAULT_PERIOD (week, month, all)
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//   - CONFIG_PATH to point at a specific YAML file
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"` // ":memory:" for an in-process throwaway database
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// SecurityConfig holds session, password and request limiting settings
type SecurityConfig struct {
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	BcryptCost     int           `koanf:"bcrypt_cost"`
	CookieName     string        `koanf:"cookie_name"`
	CookieSecure   bool          `koanf:"cookie_secure"`
	CORSOrigins    []string      `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	AuthRateLimitReqs int           `koanf:"auth_rate_limit_reqs"` // applies to /api/auth and the auth form posts
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// AnalyticsConfig controls how dashboard aggregates are computed.
type AnalyticsConfig struct {
	// MissingScores is the policy for category scores absent from a record:
	// "zero" counts them as 0 and keeps the record in the denominator,
	// "excluded" drops the record from that category's denominator.
	MissingScores string `koanf:"missing_scores"`

	// DefaultPeriod is used when a dashboard page is opened without ?period=.
	DefaultPeriod string `koanf:"default_period"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load is the entry point used by main.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
