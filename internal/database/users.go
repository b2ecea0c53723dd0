// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/models"
)

const userColumns = `id, email, password_hash, name, onboarding_completed, created_at, updated_at`

// CreateUser inserts u, assigning ID and timestamps when unset. The email is
// stored lower-cased. A taken email returns models.ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, u *models.User) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("INSERT", "users", time.Since(start), err) }()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := db.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = u.CreatedAt
	u.Email = strings.ToLower(u.Email)

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, nullString(u.Name), u.OnboardingCompleted, u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", u.Email, models.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail looks the address up case-insensitively.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", "users", time.Since(start), err) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email))
	return scanUser(row)
}

// GetUserByID returns models.ErrNotFound for an unknown id.
func (db *DB) GetUserByID(ctx context.Context, id string) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", "users", time.Since(start), err) }()

	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// SetOnboardingCompleted marks the user as onboarded and returns the updated row.
func (db *DB) SetOnboardingCompleted(ctx context.Context, id string) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("UPDATE", "users", time.Since(start), err) }()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET onboarding_completed = true, updated_at = ? WHERE id = ?`, db.now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}

	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u    models.User
		name sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.OnboardingCompleted, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if name.Valid {
		u.Name = &name.String
	}
	return &u, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
