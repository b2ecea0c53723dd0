// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"net/http"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/models"
	"github.com/rawadhossain/GikiZero/internal/validation"
)

type submissionsResponse struct {
	Submissions []models.Submission `json:"submissions"`
}

type submissionResponse struct {
	Submission *models.Submission `json:"submission"`
}

// ListSubmissions handles GET /api/submissions?period=week|month|all for the
// session user. A missing period means all.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	period := analytics.PeriodAll
	if raw := r.URL.Query().Get("period"); raw != "" {
		p, err := analytics.ParsePeriod(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid period", nil)
			return
		}
		period = p
	}

	records, err := h.submissions.ListSubmissions(r.Context(), sess.UserID, period, h.now())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	metrics.RecordSubmissionsListed(string(period), len(records))
	respondJSON(w, http.StatusOK, submissionsResponse{Submissions: records})
}

// CreateSubmission handles POST /api/submissions. The body is an already
// scored record; the session user becomes its owner.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.NewSubmission
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, msgInvalidInput, nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	sub := req.ToSubmission(sess.UserID)
	if err := h.submissions.CreateSubmission(r.Context(), sub); err != nil {
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	metrics.RecordSubmissionCreated(string(sub.ImpactCategory))
	logging.Ctx(r.Context()).Debug().
		Str("submission_id", sub.ID).
		Str("impact", string(sub.ImpactCategory)).
		Msg("Submission stored")
	respondJSON(w, http.StatusCreated, submissionResponse{Submission: sub})
}
