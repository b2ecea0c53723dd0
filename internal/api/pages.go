// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/auth"
	"github.com/rawadhossain/GikiZero/internal/logging"
	"github.com/rawadhossain/GikiZero/internal/metrics"
	"github.com/rawadhossain/GikiZero/internal/models"
	"github.com/rawadhossain/GikiZero/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names; each is parsed together with the layout and the shared cards.
const (
	pageHome       = "home"
	pageSignin     = "signin"
	pageSignup     = "signup"
	pageOnboarding = "onboarding"
	pageDashboard  = "dashboard"
	pageAnalytics  = "analytics"
)

// Emissions chart geometry, in SVG user units.
const (
	chartWidth    = 600
	chartHeight   = 200
	barFullLength = 300
)

var templateFuncs = template.FuncMap{
	"seq": func(n int) []int { return make([]int, n) },
}

// parsePages parses every page template. The templates are embedded, so a
// parse failure is a build defect and panics.
func parsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageHome, pageSignin, pageSignup, pageOnboarding, pageDashboard, pageAnalytics} {
		pages[name] = template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html", "templates/cards.html", "templates/"+name+".html"))
	}
	return pages
}

// pageData is the data every page template receives. Fields a page does not
// use stay zero.
type pageData struct {
	Title       string
	Session     *auth.Session
	DisplayName string

	// Forms
	Error       string
	Email       string
	Name        string
	CallbackURL string
	FieldErrors map[string][]string

	// Analytics
	View        analytics.View
	Series      string
	ChartWidth  int
	ChartHeight int
	Bars        []barRow
}

type barRow struct {
	Label string
	Value float64
	Width int
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data *pageData) {
	data.Session = auth.SessionFromContext(r.Context())
	if data.Session != nil && data.Session.Name != nil {
		data.DisplayName = *data.Session.Name
	}

	// Render into a buffer so a template error still yields a clean 500.
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}

// HomePage handles GET /.
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageHome, &pageData{Title: "Home"})
}

// SigninPage handles GET /auth/signin.
func (h *Handler) SigninPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageSignin, &pageData{
		Title:       "Sign in",
		CallbackURL: safeCallback(r.URL.Query().Get("callbackUrl")),
	})
}

// SigninForm handles POST /auth/signin and redirects to the callback on success.
func (h *Handler) SigninForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pageSignin, &pageData{Title: "Sign in", Error: "Invalid form submission"})
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	callback := safeCallback(r.PostForm.Get("callbackUrl"))
	data := &pageData{Title: "Sign in", Email: email, CallbackURL: callback}

	user, err := h.accounts.Authenticate(r.Context(), email, r.PostForm.Get("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.RecordSignin("rejected")
		data.Error = "Invalid email or password"
		h.render(w, r, http.StatusUnauthorized, pageSignin, data)
		return
	}
	if err == nil {
		_, _, err = h.issueSession(w, user)
	}
	if err != nil {
		metrics.RecordSignin("error")
		logging.Ctx(r.Context()).Error().Err(err).Msg("Sign-in failed")
		data.Error = "Something went wrong, please try again"
		h.render(w, r, http.StatusInternalServerError, pageSignin, data)
		return
	}

	metrics.RecordSignin("ok")
	target := callback
	if target == "" {
		target = auth.DashboardPath
	}
	if !user.OnboardingCompleted {
		target = auth.OnboardingPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// SignupPage handles GET /auth/signup.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageSignup, &pageData{Title: "Sign up"})
}

// SignupForm handles POST /auth/signup. A new account is signed in and sent
// to onboarding.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pageSignup, &pageData{Title: "Sign up", Error: "Invalid form submission"})
		return
	}

	req := &models.SignupRequest{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	if name := strings.TrimSpace(r.PostForm.Get("name")); name != "" {
		req.Name = &name
	}
	data := &pageData{Title: "Sign up", Email: req.Email, Name: r.PostForm.Get("name")}

	user, err := h.accounts.Signup(r.Context(), req)
	var verr *validation.RequestValidationError
	switch {
	case err == nil:
		_, _, err = h.issueSession(w, user)
		if err != nil {
			metrics.RecordSignup("error")
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to issue session after signup")
			data.Error = "Something went wrong, please try again"
			h.render(w, r, http.StatusInternalServerError, pageSignup, data)
			return
		}
		metrics.RecordSignup("created")
		http.Redirect(w, r, auth.OnboardingPath, http.StatusSeeOther)
	case errors.As(err, &verr):
		metrics.RecordSignup("invalid")
		data.FieldErrors = verr.FieldErrors()
		h.render(w, r, http.StatusBadRequest, pageSignup, data)
	case errors.Is(err, auth.ErrEmailTaken):
		metrics.RecordSignup("conflict")
		data.Error = msgEmailTaken
		h.render(w, r, http.StatusConflict, pageSignup, data)
	default:
		metrics.RecordSignup("error")
		logging.Ctx(r.Context()).Error().Err(err).Msg("Signup failed")
		data.Error = "Something went wrong, please try again"
		h.render(w, r, http.StatusInternalServerError, pageSignup, data)
	}
}

// OnboardingPage handles GET /onboarding.
func (h *Handler) OnboardingPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageOnboarding, &pageData{Title: "Welcome"})
}

// OnboardingForm handles POST /onboarding.
func (h *Handler) OnboardingForm(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, auth.SignInURL(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}

	user, err := h.accounts.CompleteOnboarding(r.Context(), sess.UserID)
	if err == nil {
		_, _, err = h.issueSession(w, user)
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to complete onboarding")
		h.render(w, r, http.StatusInternalServerError, pageOnboarding, &pageData{
			Title: "Welcome",
			Error: "Something went wrong, please try again",
		})
		return
	}

	metrics.OnboardingCompleted.Inc()
	http.Redirect(w, r, auth.DashboardPath, http.StatusSeeOther)
}

// DashboardPage handles GET /dashboard: the stat cards for the default period.
func (h *Handler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	h.viewPage(w, r, pageDashboard, "Dashboard", h.defaultPeriod())
}

// AnalyticsPage handles GET /analytics?period=.
func (h *Handler) AnalyticsPage(w http.ResponseWriter, r *http.Request) {
	period, ok := h.periodParam(r)
	if !ok {
		http.Redirect(w, r, "/analytics", http.StatusSeeOther)
		return
	}
	h.viewPage(w, r, pageAnalytics, analytics.Title, period)
}

func (h *Handler) viewPage(w http.ResponseWriter, r *http.Request, page, title string, period analytics.Period) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, auth.SignInURL(r.URL.RequestURI()), http.StatusFound)
		return
	}

	view, err := h.buildView(r.Context(), sess.UserID, period)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to load analytics")
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, page, &pageData{
		Title:       title,
		View:        view,
		Series:      seriesPoints(view.Series),
		ChartWidth:  chartWidth,
		ChartHeight: chartHeight,
		Bars:        barRows(view.Chart),
	})
}

// seriesPoints lays the series out as an SVG polyline points attribute,
// scaled so the largest total touches the top edge.
func seriesPoints(series []analytics.SeriesPoint) string {
	if len(series) == 0 {
		return ""
	}
	maxTotal := 0.0
	for _, p := range series {
		if p.Total > maxTotal {
			maxTotal = p.Total
		}
	}

	var b strings.Builder
	for i, p := range series {
		x := 0.0
		if len(series) > 1 {
			x = float64(i) * chartWidth / float64(len(series)-1)
		}
		y := float64(chartHeight)
		if maxTotal > 0 {
			y = chartHeight - p.Total/maxTotal*chartHeight
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}

func barRows(chart *analytics.Chart) []barRow {
	if chart == nil || len(chart.Bars) == 0 {
		return nil
	}
	maxValue := 0.0
	for _, bar := range chart.Bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}

	rows := make([]barRow, len(chart.Bars))
	for i, bar := range chart.Bars {
		width := 0
		if maxValue > 0 {
			width = int(bar.Value / maxValue * barFullLength)
		}
		rows[i] = barRow{Label: bar.Label, Value: bar.Value, Width: width}
	}
	return rows
}

// safeCallback keeps only same-site absolute paths. Protocol-relative,
// backslash and control-character forms are rejected because browsers
// normalize them into external URLs.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") ||
		strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return ""
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < 0x20 || raw[i] == 0x7f {
			return ""
		}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return ""
	}
	if strings.HasPrefix(u.Path, "/auth") {
		return ""
	}
	return raw
}
