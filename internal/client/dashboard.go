// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package client

import (
	"context"
	"sync"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/models"
)

// Fetcher is satisfied by *Client.
type Fetcher interface {
	FetchSubmissions(ctx context.Context, period analytics.Period) ([]models.Submission, error)
}

// Dashboard holds the analytics screen state: the selected period, the last
// successfully fetched records and whether a fetch is outstanding.
//
// Fetches are tagged with a sequence number. Only the response to the most
// recent SelectPeriod may update the state; earlier responses that arrive
// late are dropped.
type Dashboard struct {
	fetcher Fetcher
	policy  analytics.MissingPolicy

	mu      sync.Mutex
	period  analytics.Period
	records []models.Submission
	loading bool
	seq     uint64
	lastErr error
}

// NewDashboard returns a dashboard in the loading state on the default
// period. Nothing is fetched until SelectPeriod is called.
func NewDashboard(f Fetcher, policy analytics.MissingPolicy) *Dashboard {
	return &Dashboard{
		fetcher: f,
		policy:  policy,
		period:  analytics.DefaultPeriod,
		loading: true,
	}
}

// SelectPeriod switches to p and starts a fetch for it. The returned channel
// is closed once that fetch has settled, whether or not its result was
// applied.
func (d *Dashboard) SelectPeriod(ctx context.Context, p analytics.Period) <-chan struct{} {
	d.mu.Lock()
	d.seq++
	tag := d.seq
	d.period = p
	d.loading = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		records, err := d.fetcher.FetchSubmissions(ctx, p)
		d.settle(ctx, tag, p, records, err)
	}()
	return done
}

func (d *Dashboard) settle(ctx context.Context, tag uint64, p analytics.Period, records []models.Submission, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if tag != d.seq {
		logging.Ctx(ctx).Debug().
			Uint64("seq", tag).
			Uint64("current_seq", d.seq).
			Str("period", string(p)).
			Msg("Discarding stale submissions response")
		return
	}

	d.loading = false
	d.lastErr = err
	if err != nil {
		// Keep showing the previous records.
		logging.Ctx(ctx).Error().Err(err).Str("period", string(p)).Msg("Error fetching analytics data")
		return
	}
	d.records = records
}

// View renders the current state.
func (d *Dashboard) View() analytics.View {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := analytics.StateReady
	if d.loading {
		state = analytics.StateLoading
	}
	return analytics.BuildView(state, d.period, d.records, d.policy)
}

// Period returns the selected period.
func (d *Dashboard) Period() analytics.Period {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.period
}

// Loading reports whether the latest fetch is still outstanding.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Err returns the error of the latest settled fetch, or nil.
func (d *Dashboard) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Records returns a copy of the records currently shown.
func (d *Dashboard) Records() []models.Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Submission(nil), d.records...)
}
