// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package auth

import "context"

type contextKey string

const sessionContextKey contextKey = "session"

// Session is the request-scoped identity decoded from a valid token. A nil
// *Session means the request is anonymous.
type Session struct {
	UserID              string
	Email               string
	Name                *string
	OnboardingCompleted bool
}

// SessionFromClaims converts validated claims into a Session.
func SessionFromClaims(c *Claims) *Session {
	return &Session{
		UserID:              c.Subject,
		Email:               c.Email,
		Name:                c.Name,
		OnboardingCompleted: c.OnboardingCompleted,
	}
}

// ContextWithSession stores s in ctx.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext returns the request's session, or nil when anonymous.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey).(*Session)
	return s
}
