// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package services

import (
	"context"
	"time"

	"github.com/rawadhossain/GikiZero/internal/metrics"
)

// UptimeService keeps the app_uptime_seconds gauge current.
type UptimeService struct {
	start    time.Time
	interval time.Duration
	now      func() time.Time
}

// NewUptimeService measures uptime from start. A non-positive interval
// means 15s.
func NewUptimeService(start time.Time, interval time.Duration) *UptimeService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{start: start, interval: interval, now: time.Now}
}

// Serve implements suture.Service.
func (u *UptimeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.update()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			u.update()
		}
	}
}

func (u *UptimeService) update() {
	metrics.AppUptime.Set(u.now().Sub(u.start).Seconds())
}

// String implements fmt.Stringer.
func (u *UptimeService) String() string {
	return "uptime"
}
