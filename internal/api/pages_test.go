// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rawadhossain/GikiZero/internal/analytics"
)

func postForm(t *testing.T, ts *testServer, path string, form url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestPages_Gating(t *testing.T) {
	ts := newTestServer(t)
	fresh, _ := ts.signedUpToken(t, "fresh@example.com", false)
	done, _ := ts.signedUpToken(t, "done@example.com", true)

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"home anonymous", "/", "", http.StatusOK, ""},
		{"signin anonymous", "/auth/signin", "", http.StatusOK, ""},
		{"dashboard anonymous", "/dashboard", "", http.StatusFound, "/auth/signin?callbackUrl=%2Fdashboard"},
		{"fresh on dashboard", "/dashboard", fresh, http.StatusFound, "/onboarding"},
		{"fresh on signin", "/auth/signin", fresh, http.StatusFound, "/onboarding"},
		{"fresh on onboarding", "/onboarding", fresh, http.StatusOK, ""},
		{"onboarded on onboarding", "/onboarding", done, http.StatusFound, "/dashboard"},
		{"onboarded on signup", "/auth/signup", done, http.StatusFound, "/dashboard"},
		{"onboarded on dashboard", "/dashboard", done, http.StatusOK, ""},
		{"onboarded on analytics", "/analytics?period=all", done, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, tt.path, "", tt.token)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestSignupForm_FlowsIntoOnboarding(t *testing.T) {
	ts := newTestServer(t)

	rec := postForm(t, ts, "/auth/signup", url.Values{
		"email":    {"form@example.com"},
		"password": {"password1"},
		"name":     {"Farah"},
	}, "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/onboarding" {
		t.Fatalf("signup form = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("signup should sign the user in")
	}

	page := ts.do(t, http.MethodGet, "/onboarding", "", cookie.Value)
	if page.Code != http.StatusOK || !strings.Contains(page.Body.String(), "Welcome, Farah") {
		t.Fatalf("onboarding page = %d", page.Code)
	}

	done := postForm(t, ts, "/onboarding", url.Values{}, cookie.Value)
	if done.Code != http.StatusSeeOther || done.Header().Get("Location") != "/dashboard" {
		t.Fatalf("onboarding form = %d %q", done.Code, done.Header().Get("Location"))
	}
	next := sessionCookie(done)
	if next == nil {
		t.Fatal("onboarding should reissue the session")
	}

	dash := ts.do(t, http.MethodGet, "/dashboard", "", next.Value)
	if dash.Code != http.StatusOK || !strings.Contains(dash.Body.String(), "Average Score") {
		t.Errorf("dashboard = %d", dash.Code)
	}
}

func TestSignupForm_Errors(t *testing.T) {
	ts := newTestServer(t)

	short := postForm(t, ts, "/auth/signup", url.Values{"email": {"x@example.com"}, "password": {"short"}}, "")
	if short.Code != http.StatusBadRequest || !strings.Contains(short.Body.String(), "password must be at least 8 characters") {
		t.Errorf("short password = %d\n%s", short.Code, short.Body.String())
	}

	if rec := postForm(t, ts, "/auth/signup", url.Values{"email": {"x@example.com"}, "password": {"password1"}}, ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("signup = %d", rec.Code)
	}
	dup := postForm(t, ts, "/auth/signup", url.Values{"email": {"X@example.com"}, "password": {"password1"}}, "")
	if dup.Code != http.StatusConflict || !strings.Contains(dup.Body.String(), "already exists") {
		t.Errorf("duplicate = %d", dup.Code)
	}
}

func TestSigninForm(t *testing.T) {
	ts := newTestServer(t)
	if rec := ts.do(t, http.MethodPost, "/api/auth/signup", `{"email":"in@example.com","password":"password1"}`, ""); rec.Code != http.StatusCreated {
		t.Fatalf("signup = %d", rec.Code)
	}
	if _, err := ts.store.SetOnboardingCompleted(t.Context(), "user-1"); err != nil {
		t.Fatal(err)
	}

	bad := postForm(t, ts, "/auth/signin", url.Values{"email": {"in@example.com"}, "password": {"nope-nope"}}, "")
	if bad.Code != http.StatusUnauthorized || !strings.Contains(bad.Body.String(), "Invalid email or password") {
		t.Errorf("bad signin = %d", bad.Code)
	}

	ok := postForm(t, ts, "/auth/signin", url.Values{
		"email":       {"in@example.com"},
		"password":    {"password1"},
		"callbackUrl": {"/analytics?period=week"},
	}, "")
	if ok.Code != http.StatusSeeOther || ok.Header().Get("Location") != "/analytics?period=week" {
		t.Errorf("signin = %d %q", ok.Code, ok.Header().Get("Location"))
	}
	if sessionCookie(ok) == nil {
		t.Error("signin should set the session cookie")
	}

	tab := postForm(t, ts, "/auth/signin", url.Values{
		"email":       {"in@example.com"},
		"password":    {"password1"},
		"callbackUrl": {"/\t/evil.example"},
	}, "")
	if loc := tab.Header().Get("Location"); tab.Code != http.StatusSeeOther || strings.Contains(loc, "evil") {
		t.Errorf("signin with tab callback = %d %q", tab.Code, loc)
	}
}

func TestAnalyticsPage_Renders(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signedUpToken(t, "chart@example.com", true)
	for _, body := range []string{
		`{"transportationScore": 4, "totalEmissionScore": 10, "impactCategory": "High"}`,
		`{"transportationScore": 2, "totalEmissionScore": 8, "impactCategory": "Low"}`,
	} {
		if rec := ts.do(t, http.MethodPost, "/api/submissions", body, token); rec.Code != http.StatusCreated {
			t.Fatalf("create = %d", rec.Code)
		}
	}

	rec := ts.do(t, http.MethodGet, "/analytics?period=week", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	html := rec.Body.String()
	for _, want := range []string{"Category Performance", "Last Week", "↓ 2.0 from last", "badge neutral", "<polyline"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("page missing CSP header")
	}

	invalid := ts.do(t, http.MethodGet, "/analytics?period=decade", "", token)
	if invalid.Code != http.StatusSeeOther || invalid.Header().Get("Location") != "/analytics" {
		t.Errorf("invalid period = %d %q", invalid.Code, invalid.Header().Get("Location"))
	}
}

func TestSafeCallback(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                       "",
		"/dashboard":             "/dashboard",
		"/analytics?period=week": "/analytics?period=week",
		"//evil.example":         "",
		"https://evil.example":   "",
		"/\\evil.example":        "",
		"/auth/signin":           "",
		"/\t/evil.example":       "",
		"/\n/evil.example":       "",
		"/\x7f/evil.example":     "",
		"/\r\nLocation: //x":     "",
	}
	for in, want := range tests {
		if got := safeCallback(in); got != want {
			t.Errorf("safeCallback(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSeriesPointsAndBars(t *testing.T) {
	t.Parallel()

	if got := seriesPoints(nil); got != "" {
		t.Errorf("empty series = %q", got)
	}
	got := seriesPoints([]analytics.SeriesPoint{{Total: 5}, {Total: 10}})
	if got != "0.0,100.0 600.0,0.0" {
		t.Errorf("seriesPoints = %q", got)
	}

	rows := barRows(&analytics.Chart{Bars: []analytics.CategoryValue{
		{Category: analytics.Categories[0], Value: 4},
		{Category: analytics.Categories[1], Value: 2},
		{Category: analytics.Categories[2], Value: 0},
	}})
	if len(rows) != 3 || rows[0].Width != barFullLength || rows[1].Width != barFullLength/2 || rows[2].Width != 0 {
		t.Errorf("barRows = %+v", rows)
	}
	if barRows(nil) != nil {
		t.Error("nil chart should give no rows")
	}
}
