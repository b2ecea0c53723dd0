// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/metrics"
)

// Middleware decodes session tokens and enforces the route gate.
type Middleware struct {
	jwtManager *JWTManager
	cookieName string
}

// NewMiddleware creates the session middleware. cookieName is the name of the
// session cookie set at sign-in.
func NewMiddleware(jwtManager *JWTManager, cookieName string) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		cookieName: cookieName,
	}
}

// LoadSession parses the token from the session cookie or the Authorization
// header once per request and stores the resulting *Session in the context.
// Missing or invalid tokens leave the request anonymous.
func (m *Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid session token")
			next.ServeHTTP(w, r)
			return
		}

		s := SessionFromClaims(claims)
		ctx := ContextWithSession(r.Context(), s)
		ctx = logging.ContextWithUserID(ctx, s.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken prefers a Bearer header over the cookie.
func (m *Middleware) extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Gate applies Decide to every request not in the exempt set and adapts the
// decision to HTTP. It must run after LoadSession.
func (m *Middleware) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if isExempt(path) {
			next.ServeHTTP(w, r)
			return
		}

		d := Decide(path, SessionFromContext(r.Context()))
		metrics.RecordGateDecision(d.Action.String())

		switch d.Action {
		case Redirect:
			http.Redirect(w, r, d.Location, http.StatusFound)
		case Deny:
			if isAPIPath(path) {
				writeUnauthorized(w)
				return
			}
			http.Redirect(w, r, SignInURL(r.URL.RequestURI()), http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// SignInURL returns the sign-in page URL that returns to callback afterwards.
func SignInURL(callback string) string {
	return SignInPath + "?callbackUrl=" + url.QueryEscape(callback)
}

func isExempt(path string) bool {
	switch path {
	case "/healthz", "/metrics", "/favicon.ico":
		return true
	}
	return strings.HasPrefix(path, "/static/")
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode unauthorized response")
	}
}
