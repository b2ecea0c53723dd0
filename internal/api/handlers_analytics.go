// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"context"
	"net/http"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/models"
)

type onboardingResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// CompleteOnboarding handles POST /api/onboarding/complete. The session
// cookie is reissued so the gate sees the new flag on the next request.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	user, err := h.accounts.CompleteOnboarding(r.Context(), sess.UserID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}
	token, _, err := h.issueSession(w, user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	metrics.OnboardingCompleted.Inc()
	respondJSON(w, http.StatusOK, onboardingResponse{User: user, Token: token})
}

// Analytics handles GET /api/analytics?period=. It returns the ready View
// for the session user; a missing period falls back to the configured default.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	period, ok := h.periodParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "Invalid period", nil)
		return
	}

	view, err := h.buildView(r.Context(), sess.UserID, period)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// periodParam reads ?period=, defaulting to the configured period.
func (h *Handler) periodParam(r *http.Request) (analytics.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return h.defaultPeriod(), true
	}
	p, err := analytics.ParsePeriod(raw)
	return p, err == nil
}

// buildView lists the user's records for period, newest first, and renders
// them into a ready View.
func (h *Handler) buildView(ctx context.Context, userID string, period analytics.Period) (analytics.View, error) {
	records, err := h.submissions.ListSubmissions(ctx, userID, period, h.now())
	if err != nil {
		return analytics.View{}, err
	}
	metrics.RecordSubmissionsListed(string(period), len(records))
	return analytics.BuildView(analytics.StateReady, period, records, h.policy), nil
}
