// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package api serves the JSON API and the server-rendered pages.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - response.go: JSON encode/decode helpers
//   - handlers_auth.go: signup, signin, signout
//   - handlers_submissions.go: submission list and ingest
//   - handlers_analytics.go: onboarding completion and the analytics view
//   - handlers_health.go: health probe
//   - pages.go: HTML pages and form handlers
package api

import (
	"context"
	"html/template"
	"time"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/models"
)

// SubmissionStore is the submission persistence the handlers need.
// *database.DB satisfies it.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, s *models.Submission) error
	ListSubmissions(ctx context.Context, userID string, period analytics.Period, now time.Time) ([]models.Submission, error)
}

// Pinger reports store liveness for the health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API and page handlers
type Handler struct {
	accounts    *auth.Accounts
	jwtManager  *auth.JWTManager
	submissions SubmissionStore
	pinger      Pinger
	cfg         *config.Config
	policy      analytics.MissingPolicy
	pages       map[string]*template.Template
	startTime   time.Time

	// now is swapped in tests.
	now func() time.Time
}

// NewHandler wires the handler dependencies. cfg must already be validated.
func NewHandler(accounts *auth.Accounts, jwtManager *auth.JWTManager, submissions SubmissionStore, pinger Pinger, cfg *config.Config) *Handler {
	policy, err := analytics.ParseMissingPolicy(cfg.Analytics.MissingScores)
	if err != nil {
		policy = analytics.MissingAsZero
	}

	return &Handler{
		accounts:    accounts,
		jwtManager:  jwtManager,
		submissions: submissions,
		pinger:      pinger,
		cfg:         cfg,
		policy:      policy,
		pages:       parsePages(),
		startTime:   time.Now(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// defaultPeriod is the period pages use when the query names none.
func (h *Handler) defaultPeriod() analytics.Period {
	p, err := analytics.ParsePeriod(h.cfg.Analytics.DefaultPeriod)
	if err != nil {
		return analytics.DefaultPeriod
	}
	return p
}
