// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rawadhossain/GikiZero/internal/models"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Account Metrics
	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gikizero_signups_total",
			Help: "Signup attempts by outcome (created, invalid, conflict, error)",
		},
		[]string{"outcome"},
	)

	SigninsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gikizero_signins_total",
			Help: "Signin attempts by outcome (ok, rejected, error)",
		},
		[]string{"outcome"},
	)

	OnboardingCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gikizero_onboarding_completed_total",
			Help: "Accounts that finished onboarding",
		},
	)

	GateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gikizero_route_gate_decisions_total",
			Help: "Route gate outcomes (allow, redirect, deny)",
		},
		[]string{"action"},
	)

	// Submission Metrics
	SubmissionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gikizero_submissions_created_total",
			Help: "Submissions stored, by impact category",
		},
		[]string{"impact_category"},
	)

	SubmissionsListed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gikizero_submissions_listed",
			Help:    "Number of submissions returned per list request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"period"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	DatabaseUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_up",
			Help: "1 when the last database health probe succeeded, 0 otherwise",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, dbErrorType(err)).Inc()
	}
}

// dbErrorType keeps error label cardinality bounded.
func dbErrorType(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSignup counts a signup outcome.
func RecordSignup(outcome string) {
	SignupsTotal.WithLabelValues(outcome).Inc()
}

// RecordSignin counts a signin outcome.
func RecordSignin(outcome string) {
	SigninsTotal.WithLabelValues(outcome).Inc()
}

// RecordGateDecision counts one route gate outcome.
func RecordGateDecision(action string) {
	GateDecisions.WithLabelValues(action).Inc()
}

// RecordSubmissionCreated counts a stored submission.
func RecordSubmissionCreated(impact string) {
	SubmissionsCreated.WithLabelValues(impact).Inc()
}

// RecordSubmissionsListed observes the size of one list result.
func RecordSubmissionsListed(period string, n int) {
	SubmissionsListed.WithLabelValues(period).Observe(float64(n))
}
