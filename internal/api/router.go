// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/middleware"
)

// Router assembles the handler, the session middleware and the Chi
// middleware factories into one http.Handler.
type Router struct {
	handler       *Handler
	middleware    *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		middleware:    authMiddleware,
		chiMiddleware: chiMw,
	}
}

// Setup configures all HTTP routes.
//
// Every request passes LoadSession then Gate, so handlers below can rely on
// the gate's decision: API handlers only run with a session (except
// /api/auth), page handlers only run for callers the gate let through.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestIDWithLogging)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.middleware.LoadSession)
	r.Use(router.middleware.Gate)

	// ========================
	// Infrastructure
	// ========================
	r.Get("/healthz", router.handler.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// JSON API
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APISecurityHeaders)

		r.Route("/auth", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAuth())
			r.Post("/signup", router.handler.Signup)
			r.Post("/signin", router.handler.Signin)
			r.Post("/signout", router.handler.Signout)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/submissions", router.handler.ListSubmissions)
			r.Post("/submissions", router.handler.CreateSubmission)
			r.Post("/onboarding/complete", router.handler.CompleteOnboarding)
			r.Get("/analytics", router.handler.Analytics)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusNotFound, "Not found", nil)
		})
	})

	// ========================
	// Pages
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(middleware.PageSecurityHeaders)
		r.Use(chimiddleware.Compress(5, "text/html"))

		r.Get("/", router.handler.HomePage)
		r.Get("/auth/signin", router.handler.SigninPage)
		r.Get("/auth/signup", router.handler.SignupPage)
		r.With(router.chiMiddleware.RateLimitAuth()).Post("/auth/signin", router.handler.SigninForm)
		r.With(router.chiMiddleware.RateLimitAuth()).Post("/auth/signup", router.handler.SignupForm)
		r.Get("/onboarding", router.handler.OnboardingPage)
		r.Post("/onboarding", router.handler.OnboardingForm)
		r.Get("/dashboard", router.handler.DashboardPage)
		r.Get("/analytics", router.handler.AnalyticsPage)
	})

	return r
}
