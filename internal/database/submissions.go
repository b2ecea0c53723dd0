// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/models"
)

var submissionColumns = []string{
	"id", "user_id",
	"transportation_score", "energy_score", "water_score", "diet_score", "food_waste_score",
	"shopping_score", "waste_score", "electronics_score", "travel_score", "appliance_score",
	"home_score", "heating_score", "digital_score", "pets_score", "garden_score",
	"total_emission_score", "impact_category", "created_at",
}

// CreateSubmission stores s, assigning ID and CreatedAt when unset.
func (db *DB) CreateSubmission(ctx context.Context, s *models.Submission) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("INSERT", "submissions", time.Since(start), err) }()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt == nil {
		now := db.now()
		s.CreatedAt = &now
	}

	query, args, err := sq.Insert("submissions").
		Columns(submissionColumns...).
		Values(
			s.ID, s.UserID,
			s.TransportationScore, s.EnergyScore, s.WaterScore, s.DietScore, s.FoodWasteScore,
			s.ShoppingScore, s.WasteScore, s.ElectronicsScore, s.TravelScore, s.ApplianceScore,
			nullFloat(s.HomeScore), nullFloat(s.HeatingScore), nullFloat(s.DigitalScore),
			nullFloat(s.PetsScore), nullFloat(s.GardenScore),
			s.TotalEmissionScore, string(s.ImpactCategory), s.CreatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err = db.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("submission %s: %w", s.ID, models.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// ListSubmissionsQuery builds the list query for one user. week and month
// keep records created within the last 7 and 30 days of now; all is unbounded.
// Rows come back newest first, with id breaking ties.
func ListSubmissionsQuery(userID string, period analytics.Period, now time.Time) sq.SelectBuilder {
	b := sq.Select(submissionColumns...).
		From("submissions").
		Where(sq.Eq{"user_id": userID})
	if since, ok := period.Since(now); ok {
		b = b.Where(sq.GtOrEq{"created_at": since.UTC()})
	}
	return b.OrderBy("created_at DESC", "id DESC")
}

// ListSubmissions returns the user's submissions for period, newest first.
func (db *DB) ListSubmissions(ctx context.Context, userID string, period analytics.Period, now time.Time) (out []models.Submission, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", "submissions", time.Since(start), err) }()

	query, args, err := ListSubmissionsQuery(userID, period, now).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer closeQuietly(rows)

	out = []models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return out, nil
}

func scanSubmission(rows *sql.Rows) (models.Submission, error) {
	var (
		s                                 models.Submission
		home, heating, digital, pets, gdn sql.NullFloat64
		impact                            string
		created                           time.Time
	)
	err := rows.Scan(
		&s.ID, &s.UserID,
		&s.TransportationScore, &s.EnergyScore, &s.WaterScore, &s.DietScore, &s.FoodWasteScore,
		&s.ShoppingScore, &s.WasteScore, &s.ElectronicsScore, &s.TravelScore, &s.ApplianceScore,
		&home, &heating, &digital, &pets, &gdn,
		&s.TotalEmissionScore, &impact, &created,
	)
	if err != nil {
		return s, fmt.Errorf("failed to scan submission: %w", err)
	}
	s.HomeScore = floatPtr(home)
	s.HeatingScore = floatPtr(heating)
	s.DigitalScore = floatPtr(digital)
	s.PetsScore = floatPtr(pets)
	s.GardenScore = floatPtr(gdn)
	s.ImpactCategory = models.ImpactCategory(impact)
	created = created.UTC()
	s.CreatedAt = &created
	return s, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
