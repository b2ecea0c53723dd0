// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package services

import (
	"context"
	"time"

	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/metrics"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthProbeService pings the database on an interval and publishes the
// result as the duckdb_up gauge. Failures are logged once per transition.
type HealthProbeService struct {
	db       Pinger
	interval time.Duration
	timeout  time.Duration
}

// NewHealthProbeService creates a probe. A non-positive interval means 30s.
func NewHealthProbeService(db Pinger, interval time.Duration) *HealthProbeService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &HealthProbeService{db: db, interval: interval, timeout: timeout}
}

// Serve implements suture.Service.
func (p *HealthProbeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	healthy := p.probe(ctx, true)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			healthy = p.probe(ctx, healthy)
		}
	}
}

// probe runs one ping and reports whether it succeeded. wasHealthy is the
// previous result, used to log only on state changes.
func (p *HealthProbeService) probe(ctx context.Context, wasHealthy bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.db.Ping(pingCtx)
	if err != nil {
		metrics.DatabaseUp.Set(0)
		if wasHealthy && ctx.Err() == nil {
			logging.Warn().Err(err).Msg("Database health probe failed")
		}
		return false
	}

	metrics.DatabaseUp.Set(1)
	if !wasHealthy {
		logging.Info().Msg("Database health probe recovered")
	}
	return true
}

// String implements fmt.Stringer.
func (p *HealthProbeService) String() string {
	return "db-health-probe"
}
