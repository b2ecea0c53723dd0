// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package client consumes the GikiZero JSON API: Client fetches a user's
// submissions for a period and Dashboard keeps the analytics view state that
// a period selector drives.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rawadhossain/GikiZero/internal/analytics"
	"github.com/rawadhossain/GikiZero/internal/models"
)

// DefaultTimeout bounds a single fetch when the caller's context has no
// deadline of its own.
const DefaultTimeout = 15 * time.Second

// ErrUnexpectedStatus wraps every non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client talks to a GikiZero server on behalf of one signed-in user.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout changes the fallback deadline applied when the caller's
// context has none. A non-positive d falls back to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for baseURL (scheme and host, no trailing path)
// that authenticates with the bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: DefaultTimeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireSubmission mirrors models.Submission with createdAt left as text, so
// an unparseable timestamp degrades to nil instead of failing the decode.
type wireSubmission struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	TransportationScore float64 `json:"transportationScore"`
	EnergyScore         float64 `json:"energyScore"`
	WaterScore          float64 `json:"waterScore"`
	DietScore           float64 `json:"dietScore"`
	FoodWasteScore      float64 `json:"foodWasteScore"`
	ShoppingScore       float64 `json:"shoppingScore"`
	WasteScore          float64 `json:"wasteScore"`
	ElectronicsScore    float64 `json:"electronicsScore"`
	TravelScore         float64 `json:"travelScore"`
	ApplianceScore      float64 `json:"applianceScore"`

	HomeScore    *float64 `json:"homeScore"`
	HeatingScore *float64 `json:"heatingScore"`
	DigitalScore *float64 `json:"digitalScore"`
	PetsScore    *float64 `json:"petsScore"`
	GardenScore  *float64 `json:"gardenScore"`

	TotalEmissionScore float64               `json:"totalEmissionScore"`
	ImpactCategory     models.ImpactCategory `json:"impactCategory"`
	CreatedAt          *string               `json:"createdAt"`
}

func (w *wireSubmission) toModel() models.Submission {
	return models.Submission{
		ID:                  w.ID,
		UserID:              w.UserID,
		TransportationScore: w.TransportationScore,
		EnergyScore:         w.EnergyScore,
		WaterScore:          w.WaterScore,
		DietScore:           w.DietScore,
		FoodWasteScore:      w.FoodWasteScore,
		ShoppingScore:       w.ShoppingScore,
		WasteScore:          w.WasteScore,
		ElectronicsScore:    w.ElectronicsScore,
		TravelScore:         w.TravelScore,
		ApplianceScore:      w.ApplianceScore,
		HomeScore:           w.HomeScore,
		HeatingScore:        w.HeatingScore,
		DigitalScore:        w.DigitalScore,
		PetsScore:           w.PetsScore,
		GardenScore:         w.GardenScore,
		TotalEmissionScore:  w.TotalEmissionScore,
		ImpactCategory:      w.ImpactCategory,
		CreatedAt:           parseTimestamp(w.CreatedAt),
	}
}

type submissionsEnvelope struct {
	Submissions []wireSubmission `json:"submissions"`
}

// FetchSubmissions returns the caller's submissions inside period, newest
// first. Records without a usable createdAt sort last, in server order.
func (c *Client) FetchSubmissions(ctx context.Context, period analytics.Period) ([]models.Submission, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + "/api/submissions?period=" + url.QueryEscape(string(period))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetch submissions: %w %s", ErrUnexpectedStatus, resp.Status)
	}

	var env submissionsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	out := make([]models.Submission, 0, len(env.Submissions))
	for i := range env.Submissions {
		out = append(out, env.Submissions[i].toModel())
	}
	SortNewestFirst(out)
	return out, nil
}

func parseTimestamp(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil
	}
	return &t
}

// SortNewestFirst orders records by CreatedAt descending. The sort is
// stable; records without a timestamp go last.
func SortNewestFirst(records []models.Submission) {
	slices.SortStableFunc(records, func(a, b models.Submission) int {
		switch {
		case a.CreatedAt == nil && b.CreatedAt == nil:
			return 0
		case a.CreatedAt == nil:
			return 1
		case b.CreatedAt == nil:
			return -1
		default:
			return b.CreatedAt.Compare(*a.CreatedAt)
		}
	})
}
