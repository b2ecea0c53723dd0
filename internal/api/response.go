// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Response messages shared by several handlers.
const (
	msgInternal     = "Internal server error"
	msgInvalidInput = "Invalid input"
)

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends {"error": message}. A non-nil err is logged with the
// request ID and never reaches the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API error")
	}
	respondJSON(w, status, errorResponse{Error: message})
}

// respondValidation sends a 400 with per-field messages keyed by JSON name.
func respondValidation(w http.ResponseWriter, verr *validation.RequestValidationError) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Error:   msgInvalidInput,
		Details: verr.FieldErrors(),
	})
}

// decodeJSON reads one JSON document from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("failed to read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}
	return nil
}

// sanitizeLogValue escapes control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
