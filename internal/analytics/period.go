// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package analytics

import (
	"fmt"
	"time"
)

// Period is the dashboard time window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"

	DefaultPeriod = PeriodMonth
)

// PeriodOption is one entry of the period selector.
type PeriodOption struct {
	Value Period `json:"value"`
	Label string `json:"label"`
}

// PeriodOptions lists the selector entries in display order.
var PeriodOptions = []PeriodOption{
	{Value: PeriodWeek, Label: "Last Week"},
	{Value: PeriodMonth, Label: "Last Month"},
	{Value: PeriodAll, Label: "All Time"},
}

// ParsePeriod accepts exactly "week", "month" or "all".
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period %q", s)
	}
}

// Label returns the selector label, or the raw token for unknown periods.
func (p Period) Label() string {
	for _, o := range PeriodOptions {
		if o.Value == p {
			return o.Label
		}
	}
	return string(p)
}

// Since returns the inclusive lower bound on createdAt for p relative to now.
// ok is false for PeriodAll, which is unbounded.
func (p Period) Since(now time.Time) (since time.Time, ok bool) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}
