// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rawadhossain/GikiZero/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDWithLogging reuses an upstream X-Request-ID or generates one,
// echoes it on the response and stores it for logging.Ctx. chi's RequestID
// middleware runs underneath so chimiddleware.GetReqID sees the same value.
func RequestIDWithLogging(next http.Handler) http.Handler {
	chiRequestID := chimiddleware.RequestID(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		chiRequestID.ServeHTTP(w, r.WithContext(ctx))
	})
}
