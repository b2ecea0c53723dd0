// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package auth

import "strings"

// Action is the outcome of a gating decision.
type Action int

const (
	// Allow lets the request through.
	Allow Action = iota
	// Redirect sends the client to Decision.Location.
	Redirect
	// Deny rejects the request: pages go to sign-in, API calls get 401.
	Deny
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Route targets used by the gate.
const (
	SignInPath     = "/auth/signin"
	DashboardPath  = "/dashboard"
	OnboardingPath = "/onboarding"
)

// Decision is returned by Decide. Location is set only for Redirect.
type Decision struct {
	Action   Action
	Location string
}

var publicPaths = []string{"/", "/auth", "/api/auth"}

// Decide maps a request path and the caller's session to a gating decision.
// It is pure: the session is passed in explicitly and nothing else is read.
//
// Page rules, in order:
//   - "/" and anything under "/api/auth" pass.
//   - Anonymous callers are denied outside the public paths.
//   - Signed-in callers on "/auth..." go to the dashboard, or to onboarding
//     when it is incomplete.
//   - Callers who have not onboarded are held on "/onboarding..."; callers
//     who have are sent away from it.
//
// API paths only require a session; onboarding is not enforced there.
func Decide(path string, s *Session) Decision {
	if isAPIPath(path) {
		if hasPrefixSegment(path, "/api/auth") || s != nil {
			return Decision{Action: Allow}
		}
		return Decision{Action: Deny}
	}

	if path == "/" || strings.HasPrefix(path, "/api/auth") {
		return Decision{Action: Allow}
	}

	if s == nil {
		if isPublicPath(path) {
			return Decision{Action: Allow}
		}
		return Decision{Action: Deny}
	}

	if strings.HasPrefix(path, "/auth") {
		if s.OnboardingCompleted {
			return Decision{Action: Redirect, Location: DashboardPath}
		}
		return Decision{Action: Redirect, Location: OnboardingPath}
	}

	onOnboarding := strings.HasPrefix(path, OnboardingPath)
	if !s.OnboardingCompleted && !onOnboarding {
		return Decision{Action: Redirect, Location: OnboardingPath}
	}
	if s.OnboardingCompleted && onOnboarding {
		return Decision{Action: Redirect, Location: DashboardPath}
	}

	return Decision{Action: Allow}
}

func isAPIPath(path string) bool {
	return hasPrefixSegment(path, "/api")
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if hasPrefixSegment(path, p) {
			return true
		}
	}
	return false
}

// hasPrefixSegment reports whether path equals prefix or lies beneath it.
func hasPrefixSegment(path, prefix string) bool {
	if path == prefix {
		return true
	}
	if prefix == "/" {
		return false
	}
	return strings.HasPrefix(path, prefix+"/")
}
