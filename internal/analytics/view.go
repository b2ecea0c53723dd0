// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package analytics

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rawadhossain/GikiZero/internal/models"
)

// ViewState is loading while a fetch is in flight and ready once it settles,
// whether it succeeded or not.
type ViewState string

const (
	StateLoading ViewState = "loading"
	StateReady   ViewState = "ready"
)

const (
	Title           = "Analytics"
	LoadingHeader   = "Loading your carbon footprint analytics..."
	ReadyHeader     = "Detailed insights into your carbon footprint"
	ChartTitle      = "Category Performance"
	ChartSubtitle   = "Average emissions by category over the selected period"
	SkeletonCards   = 4
	UnknownImpact   = "Unknown"
	TrendColorGood  = "green"
	TrendColorBad   = "red"
	IconTarget      = "target"
	IconCalendar    = "calendar"
	IconTrendDown   = "trending-down"
	IconTrendUp     = "trending-up"
	chartValueLabel = "Average CO₂ (kg)"
)

// Badge is a small labelled pill, used by the Impact Level card.
type Badge struct {
	Text    string       `json:"text"`
	Variant BadgeVariant `json:"variant"`
}

// StatCard is one of the four summary tiles.
type StatCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Badge       *Badge `json:"badge,omitempty"`
	Description string `json:"description,omitempty"`
	TrendColor  string `json:"trendColor,omitempty"`
	Icon        string `json:"icon"`
}

// SeriesPoint is one point of the emissions-over-time chart.
type SeriesPoint struct {
	Time  time.Time `json:"time"`
	Total float64   `json:"total"`
}

// CategoryValue is a labelled number in category display order.
type CategoryValue struct {
	Category
	Value float64 `json:"value"`
}

// Chart is the category bar chart.
type Chart struct {
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	ValueLabel string          `json:"valueLabel"`
	Bars       []CategoryValue `json:"bars"`
}

// View is everything a renderer needs to draw the analytics screen.
type View struct {
	State       ViewState      `json:"state"`
	Title       string         `json:"title"`
	Header      string         `json:"header"`
	Period      Period         `json:"period"`
	PeriodLabel string         `json:"periodLabel"`
	Periods     []PeriodOption `json:"periods"`

	// Skeletons is the number of placeholder cards shown while loading.
	Skeletons int `json:"skeletons,omitempty"`

	Cards     []StatCard      `json:"cards,omitempty"`
	Series    []SeriesPoint   `json:"series,omitempty"`
	Breakdown []CategoryValue `json:"breakdown,omitempty"`
	Chart     *Chart          `json:"chart,omitempty"`
	Summary   *Summary        `json:"summary,omitempty"`
}

// BuildView maps state and records to a View. records must be newest-first.
// In the loading state the records are ignored.
func BuildView(state ViewState, period Period, records []models.Submission, policy MissingPolicy) View {
	v := View{
		State:       state,
		Title:       Title,
		Period:      period,
		PeriodLabel: period.Label(),
		Periods:     PeriodOptions,
	}

	if state == StateLoading {
		v.Header = LoadingHeader
		v.Skeletons = SkeletonCards
		return v
	}

	sum := Summarize(records, policy)
	v.Header = ReadyHeader
	v.Summary = &sum
	v.Cards = StatCards(sum)
	v.Series = TimeSeries(records)
	if len(records) > 0 {
		v.Breakdown = Breakdown(&records[0])
	}
	v.Chart = &Chart{
		Title:      ChartTitle,
		Subtitle:   ChartSubtitle,
		ValueLabel: chartValueLabel,
		Bars:       Bars(sum.CategoryAverages),
	}
	return v
}

// StatCards builds the Average Score, Latest Score, Submissions and Impact
// Level tiles in that order.
func StatCards(s Summary) []StatCard {
	latest := StatCard{
		Title:      "Latest Score",
		Value:      "0 kg",
		TrendColor: TrendColorBad,
		Icon:       IconTrendUp,
	}
	if s.LatestScore != nil {
		latest.Value = fmt.Sprintf("%.1f kg", *s.LatestScore)
	}
	if s.Trend < 0 {
		latest.TrendColor = TrendColorGood
		latest.Icon = IconTrendDown
	}
	if s.Trend != 0 {
		arrow := "↑"
		if s.Trend < 0 {
			arrow = "↓"
		}
		latest.Description = fmt.Sprintf("%s %.1f from last", arrow, math.Abs(s.Trend))
	}

	impact := s.LatestImpact
	if impact == "" {
		impact = UnknownImpact
	}

	return []StatCard{
		{
			Title:       "Average Score",
			Value:       fmt.Sprintf("%.1f kg", s.AverageScore),
			Description: "CO₂ equivalent",
			Icon:        IconTarget,
		},
		latest,
		{
			Title:       "Submissions",
			Value:       fmt.Sprintf("%d", s.SubmissionCount),
			Description: "Tracking sessions",
			Icon:        IconCalendar,
		},
		{
			Title:       "Impact Level",
			Value:       impact,
			Badge:       &Badge{Text: impact, Variant: s.ImpactBadge},
			Description: "Current category",
			Icon:        IconTarget,
		},
	}
}

// TimeSeries returns (createdAt, total) oldest first. Records without a
// timestamp are skipped.
func TimeSeries(records []models.Submission) []SeriesPoint {
	pts := make([]SeriesPoint, 0, len(records))
	for i := range records {
		if records[i].CreatedAt == nil {
			continue
		}
		pts = append(pts, SeriesPoint{Time: *records[i].CreatedAt, Total: records[i].TotalEmissionScore})
	}
	slices.SortStableFunc(pts, func(a, b SeriesPoint) int {
		return a.Time.Compare(b.Time)
	})
	return pts
}

// Breakdown lists the categories present on one record in display order.
func Breakdown(s *models.Submission) []CategoryValue {
	out := make([]CategoryValue, 0, len(Categories))
	for _, c := range Categories {
		if v, ok := s.Score(c.Key); ok {
			out = append(out, CategoryValue{Category: c, Value: v})
		}
	}
	return out
}

// Bars turns category averages into chart bars carrying the rounded value.
func Bars(avgs []CategoryAverage) []CategoryValue {
	out := make([]CategoryValue, len(avgs))
	for i, a := range avgs {
		out[i] = CategoryValue{Category: a.Category, Value: a.Rounded}
	}
	return out
}
