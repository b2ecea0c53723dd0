// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

/*
Package main is the GikiZero server.

GikiZero records scored carbon-footprint questionnaire submissions per
user and serves an analytics dashboard over them: stat cards, a trend
against the previous submission, the latest category breakdown and
per-category averages for the last week, the last month or all time.

# Application Architecture

	RootSupervisor ("gikizero")
	├── DataSupervisor ("data-layer")
	│   ├── db-health-probe (duckdb_up gauge)
	│   └── uptime (app_uptime_seconds gauge)
	└── APISupervisor ("api-layer")
	    └── http-server (Chi router)

Startup order:

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB, tables created on open
 4. Accounts and sessions: bcrypt password hashes, HS256 session tokens
 5. HTTP: JSON API under /api, HTML pages, /healthz and /metrics
 6. Supervisor tree: suture v4, stopped by SIGINT or SIGTERM

# Configuration

	HTTP_PORT=3000
	DUCKDB_PATH=/data/gikizero.duckdb
	JWT_SECRET=<32+ chars>          # required
	SESSION_TIMEOUT=720h
	COOKIE_SECURE=true              # behind HTTPS
	ANALYTICS_MISSING_SCORES=zero   # or excluded
	LOG_LEVEL=info
	LOG_FORMAT=json

See package config for the full list.

# Signal Handling

On SIGINT or SIGTERM the context is canceled, the HTTP server drains
in-flight requests for up to 10 seconds and the database is closed.
*/
package main
