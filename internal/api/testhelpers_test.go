// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/config"
	"github.com/rawadhossain/GikiZero/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

// fakeStore implements auth.UserStore, SubmissionStore and Pinger in memory.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]*models.User // by lower-cased email
	submissions []models.Submission
	nextID      int

	lastPeriod analytics.Period
	userErr    error
	listErr    error
	pingErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*models.User)}
}

func (s *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userErr != nil {
		return s.userErr
	}
	key := strings.ToLower(u.Email)
	if _, ok := s.users[key]; ok {
		return models.ErrDuplicate
	}
	s.nextID++
	u.ID = fmt.Sprintf("user-%d", s.nextID)
	u.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[key] = &cp
	return nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userErr != nil {
		return nil, s.userErr
	}
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeStore) SetOnboardingCompleted(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u.OnboardingCompleted = true
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeStore) CreateSubmission(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sub.ID = fmt.Sprintf("sub-%d", s.nextID)
	if sub.CreatedAt == nil {
		now := time.Now().UTC()
		sub.CreatedAt = &now
	}
	s.submissions = append([]models.Submission{*sub}, s.submissions...)
	return nil
}

func (s *fakeStore) ListSubmissions(_ context.Context, userID string, period analytics.Period, _ time.Time) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPeriod = period
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []models.Submission{}
	for _, sub := range s.submissions {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type testServer struct {
	handler http.Handler
	store   *fakeStore
	jwt     *auth.JWTManager
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			JWTSecret:         testSecret,
			SessionTimeout:    time.Hour,
			BcryptCost:        bcrypt.MinCost,
			CookieName:        "session",
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		Analytics: config.AnalyticsConfig{
			MissingScores: "zero",
			DefaultPeriod: "month",
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testConfig()
	store := newFakeStore()

	jm, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	accounts := auth.NewAccounts(store, cfg.Security.BcryptCost)
	h := NewHandler(accounts, jm, store, store, cfg)
	router := NewRouter(h, auth.NewMiddleware(jm, cfg.Security.CookieName), NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	return &testServer{handler: router.Setup(), store: store, jwt: jm}
}

// do sends one request; a non-empty token is attached as the session cookie.
func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// signedUpToken creates an account and returns a session token for it.
func (ts *testServer) signedUpToken(t *testing.T, email string, onboarded bool) (string, *models.User) {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x"}
	if err := ts.store.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	if onboarded {
		var err error
		if u, err = ts.store.SetOnboardingCompleted(context.Background(), u.ID); err != nil {
			t.Fatal(err)
		}
	}
	token, _, err := ts.jwt.GenerateToken(u)
	if err != nil {
		t.Fatal(err)
	}
	return token, u
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

var errBoom = errors.New("boom")
