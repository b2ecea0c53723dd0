// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{
			name:    "valid secret",
			cfg:     &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: 24 * time.Hour},
			wantErr: false,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{JWTSecret: "", SessionTimeout: 24 * time.Hour},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("NewJWTManager() unexpected error = %v", err)
				return
			}
			if manager == nil {
				t.Error("NewJWTManager() returned nil manager")
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestJWTManager(t)
	name := "Ada"
	user := &models.User{ID: "u-1", Email: "ada@example.com", Name: &name, OnboardingCompleted: true}

	token, expires, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}
	if d := time.Until(expires); d < 59*time.Minute || d > time.Hour+time.Second {
		t.Errorf("expiry %v not about one hour out", expires)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Subject != "u-1" || claims.Email != "ada@example.com" || !claims.OnboardingCompleted {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.Name == nil || *claims.Name != "Ada" {
		t.Errorf("Name = %v, want Ada", claims.Name)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	m := newTestJWTManager(t)
	user := &models.User{ID: "u-1", Email: "a@example.com"}

	expired := newTestJWTManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	other, err := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("x", 40), SessionTimeout: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	foreignToken, _, err := other.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "a@example.com"}).
		SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-token"},
		{"expired", expiredToken},
		{"wrong secret", foreignToken},
		{"alg none", noneToken},
		{"missing subject", noSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() expected error, got nil")
			}
		})
	}
}
