// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptimeSeconds"`
}

// Healthz handles GET /healthz: 200 when the store answers a ping, 503 otherwise.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			respondError(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}
