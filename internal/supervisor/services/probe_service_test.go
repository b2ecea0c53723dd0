// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rawadhossain/GikiZero/internal/metrics"
)

type flakyPinger struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("database is locked")
	}
	return nil
}

func TestHealthProbeService_Defaults(t *testing.T) {
	p := NewHealthProbeService(&flakyPinger{}, 0)
	if p.interval != 30*time.Second || p.timeout != 5*time.Second {
		t.Errorf("interval=%v timeout=%v", p.interval, p.timeout)
	}
	if short := NewHealthProbeService(&flakyPinger{}, 2*time.Second); short.timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", short.timeout)
	}
}

func TestHealthProbeService_Probe(t *testing.T) {
	pinger := &flakyPinger{}
	p := NewHealthProbeService(pinger, time.Second)
	ctx := context.Background()

	if !p.probe(ctx, true) {
		t.Fatal("probe should succeed")
	}
	if got := testutil.ToFloat64(metrics.DatabaseUp); got != 1 {
		t.Errorf("duckdb_up = %v, want 1", got)
	}

	pinger.fail.Store(true)
	if p.probe(ctx, true) {
		t.Fatal("probe should fail")
	}
	if got := testutil.ToFloat64(metrics.DatabaseUp); got != 0 {
		t.Errorf("duckdb_up = %v, want 0", got)
	}
}

func TestHealthProbeService_ServeStopsOnCancel(t *testing.T) {
	pinger := &flakyPinger{}
	p := NewHealthProbeService(pinger, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := p.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}
	if pinger.calls.Load() < 2 {
		t.Errorf("expected repeated pings, got %d", pinger.calls.Load())
	}
}

func TestUptimeService(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := NewUptimeService(start, 0)
	if u.interval != 15*time.Second {
		t.Errorf("interval = %v", u.interval)
	}
	u.now = func() time.Time { return start.Add(90 * time.Second) }

	u.update()
	if got := testutil.ToFloat64(metrics.AppUptime); got != 90 {
		t.Errorf("app_uptime_seconds = %v, want 90", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := u.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
}
