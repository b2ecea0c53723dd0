// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/models"
)

// Claims are the session token claims. Subject carries the user ID.
type Claims struct {
	Email               string  `json:"email"`
	Name                *string `json:"name,omitempty"`
	OnboardingCompleted bool    `json:"onboardingCompleted"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	secret  []byte
	timeout time.Duration

	// now is swapped in tests.
	now func() time.Time
}

// NewJWTManager creates a token manager with the configured secret and
// session timeout. Tokens are signed with HS256.
//
// Returns an error if the secret is empty; Config.Validate enforces the
// 32 character minimum.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}

	return &JWTManager{
		secret:  []byte(secret),
		timeout: cfg.SessionTimeout,
		now:     time.Now,
	}, nil
}

// GenerateToken issues a session token for u. The returned time is the
// token's expiry, used for the cookie lifetime.
func (m *JWTManager) GenerateToken(u *models.User) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.timeout)

	claims := &Claims{
		Email:               u.Email,
		Name:                u.Name,
		OnboardingCompleted: u.OnboardingCompleted,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, expires, nil
}

// ValidateToken verifies the signature, the signing method and the time
// claims, and returns the parsed claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
