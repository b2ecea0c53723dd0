// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/metrics"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	// Rate limiting configuration
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitRequests int
	RateLimitDisabled     bool
}

// ChiMiddlewareConfigFromSecurity maps the security section onto the
// middleware configuration.
func ChiMiddlewareConfigFromSecurity(sec *config.SecurityConfig) *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: sec.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID"},
		// Credentialed CORS is incompatible with a wildcard origin.
		CORSAllowCredentials: !containsWildcard(sec.CORSOrigins),
		CORSMaxAge:           86400,

		RateLimitRequests:     sec.RateLimitReqs,
		RateLimitWindow:       sec.RateLimitWindow,
		AuthRateLimitRequests: sec.AuthRateLimitReqs,
		RateLimitDisabled:     sec.RateLimitDisabled,
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// ChiMiddleware provides Chi-compatible middleware factories.
//
// Each limiter is built once, so every route group that applies RateLimitAuth
// draws from the same per-IP budget.
type ChiMiddleware struct {
	config    *ChiMiddlewareConfig
	cors      func(http.Handler) http.Handler
	apiLimit  func(http.Handler) http.Handler
	authLimit func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new Chi middleware factory with the given configuration.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORSAllowedMethods,
		AllowedHeaders:   cfg.CORSAllowedHeaders,
		ExposedHeaders:   cfg.CORSExposedHeaders,
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           cfg.CORSMaxAge,
	})

	m := &ChiMiddleware{
		config: cfg,
		cors:   corsHandler,
	}
	m.apiLimit = m.limit("api", cfg.RateLimitRequests)
	m.authLimit = m.limit("auth", cfg.AuthRateLimitRequests)
	return m
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit is the general per-IP limit for API routes.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.apiLimit
}

// RateLimitAuth is the stricter per-IP limit for signup and signin.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	return m.authLimit
}

func (m *ChiMiddleware) limit(name string, requests int) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || requests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(name).Inc()
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
		}),
	)
}
