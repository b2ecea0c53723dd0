// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package database is the DuckDB-backed store for accounts and submissions.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/logging"
)

// defaultQueryTimeout bounds calls made without a deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection and provides data access methods
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// now is swapped in tests.
	now func() time.Time
}

// New opens (or creates) the database at cfg.Path and ensures the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
		now:  func() time.Time { return time.Now().UTC() },
	}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()
	if err := db.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", threads).Msg("Database ready")
	return db, nil
}

func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Close checkpoints and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.cfg.Path != ":memory:" {
		ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// Ping verifies the connection is usable.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// ensureContext adds defaultQueryTimeout to contexts that carry no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}
	return ctx, func() {}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		email VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		name VARCHAR,
		onboarding_completed BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		transportation_score DOUBLE NOT NULL,
		energy_score DOUBLE NOT NULL,
		water_score DOUBLE NOT NULL,
		diet_score DOUBLE NOT NULL,
		food_waste_score DOUBLE NOT NULL,
		shopping_score DOUBLE NOT NULL,
		waste_score DOUBLE NOT NULL,
		electronics_score DOUBLE NOT NULL,
		travel_score DOUBLE NOT NULL,
		appliance_score DOUBLE NOT NULL,
		home_score DOUBLE,
		heating_score DOUBLE,
		digital_score DOUBLE,
		pets_score DOUBLE,
		garden_score DOUBLE,
		total_emission_score DOUBLE NOT NULL,
		impact_category VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_user_created ON submissions (user_id, created_at)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation matches DuckDB's constraint error text for duplicate keys.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") ||
		(strings.Contains(msg, "Constraint Error") && strings.Contains(msg, "unique"))
}

// closeQuietly closes a resource in error paths where Close errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
