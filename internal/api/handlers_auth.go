// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/models"
	"github.com/rawadhossain/GikiZero/internal/validation"
)

const msgEmailTaken = "User with this email already exists"

type signupResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// Signup handles POST /api/auth/signup.
//
// Responses:
//   - 201 {"message", "user"} without any password field
//   - 400 {"error": "Invalid input", "details": {field: [messages]}}
//   - 409 {"error": "User with this email already exists"}
//   - 500 {"error": "Internal server error"}
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.RecordSignup("invalid")
		respondError(w, r, http.StatusBadRequest, msgInvalidInput, nil)
		return
	}

	user, err := h.accounts.Signup(r.Context(), &req)
	var verr *validation.RequestValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		metrics.RecordSignup("invalid")
		respondValidation(w, verr)
		return
	case errors.Is(err, auth.ErrEmailTaken):
		metrics.RecordSignup("conflict")
		respondError(w, r, http.StatusConflict, msgEmailTaken, nil)
		return
	default:
		metrics.RecordSignup("error")
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	metrics.RecordSignup("created")
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User signed up")
	respondJSON(w, http.StatusCreated, signupResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// Signin handles POST /api/auth/signin. On success the session cookie is set
// and the token is returned for bearer use.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.SigninRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, msgInvalidInput, nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.RecordSignin("rejected")
		respondError(w, r, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if err != nil {
		metrics.RecordSignin("error")
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	token, expires, err := h.issueSession(w, user)
	if err != nil {
		metrics.RecordSignin("error")
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	metrics.RecordSignin("ok")
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: expires, User: user})
}

// Signout handles POST /api/auth/signout. Form posts from the pages are
// redirected home; API callers get JSON.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// issueSession signs a token for user and sets it as the session cookie.
func (h *Handler) issueSession(w http.ResponseWriter, user *models.User) (string, time.Time, error) {
	token, expires, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		return "", time.Time{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Security.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, expires, nil
}

func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Security.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
