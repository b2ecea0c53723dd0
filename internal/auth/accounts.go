// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rawadhossain/GikiZero/internal/models"
	"github.com/rawadhossain/GikiZero/internal/validation"
)

// Account errors.
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// maxPasswordBytes is the most input bcrypt reads. Longer passwords are
// truncated to it before hashing and comparing.
const maxPasswordBytes = 72

// UserStore is the persistence the account service needs. *database.DB
// satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SetOnboardingCompleted(ctx context.Context, id string) (*models.User, error)
}

// Accounts implements signup, credential checks and onboarding.
type Accounts struct {
	store      UserStore
	bcryptCost int
}

// NewAccounts creates the account service. A cost outside bcrypt's range
// falls back to bcrypt.DefaultCost.
func NewAccounts(store UserStore, bcryptCost int) *Accounts {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Accounts{store: store, bcryptCost: bcryptCost}
}

// Signup validates req, rejects emails already registered in any letter
// case, and stores a new user with onboarding incomplete.
//
// Returns *validation.RequestValidationError for bad input and ErrEmailTaken
// on a duplicate.
func (a *Accounts) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}

	email := strings.ToLower(req.Email)
	if _, err := a.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(req.Password), a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := a.store.CreateUser(ctx, u); err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user for a matching email and password. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := a.store.GetUserByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), passwordBytes(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CompleteOnboarding marks the user as onboarded.
func (a *Accounts) CompleteOnboarding(ctx context.Context, userID string) (*models.User, error) {
	u, err := a.store.SetOnboardingCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}
	return u, nil
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// User returns the account for userID.
func (a *Accounts) User(ctx context.Context, userID string) (*models.User, error) {
	return a.store.GetUserByID(ctx, userID)
}
