// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package render draws an analytics.View for the terminal with lipgloss.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rawadhossain/GikiZero/internal/analytics"
)

// Palette
var (
	colorText  = lipgloss.Color("#cdd6f4")
	colorMuted = lipgloss.Color("#a6adc8")
	colorGreen = lipgloss.Color("#a6e3a1")
	colorRed   = lipgloss.Color("#f38ba8")
	colorAmber = lipgloss.Color("#f9e2af")
	colorBlue  = lipgloss.Color("#89b4fa")
	colorFrame = lipgloss.Color("#45475a")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Underline(true)
	inactiveTab   = lipgloss.NewStyle().Foreground(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(0, 1).
			Width(cardWidth)
	cardTitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginTop(1)
	barStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(labelWidth)
)

const (
	cardWidth    = 22
	labelWidth   = 16
	defaultWidth = 80
	barGlyph     = "█"
	skeleton     = "░░░░░░"
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Terminal renders v to fit width columns; width <= 0 means 80.
func Terminal(v analytics.View, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var sections []string
	sections = append(sections,
		titleStyle.Render(v.Title),
		subtitleStyle.Render(v.Header),
		periodTabs(v),
		"",
		cards(v),
	)

	if v.State == analytics.StateReady {
		if spark := Sparkline(v.Series); spark != "" {
			sections = append(sections, sectionStyle.Render("Emissions over time"), barStyle.Render(spark))
		}
		if len(v.Breakdown) > 0 {
			sections = append(sections, sectionStyle.Render("Latest breakdown"), breakdown(v.Breakdown))
		}
		if v.Chart != nil {
			sections = append(sections,
				sectionStyle.Render(v.Chart.Title),
				subtitleStyle.Render(v.Chart.Subtitle),
				bars(v.Chart.Bars, width),
			)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func periodTabs(v analytics.View) string {
	tabs := make([]string, 0, len(v.Periods))
	for _, o := range v.Periods {
		if o.Value == v.Period {
			tabs = append(tabs, activeTab.Render(o.Label))
		} else {
			tabs = append(tabs, inactiveTab.Render(o.Label))
		}
	}
	return strings.Join(tabs, "  ")
}

func cards(v analytics.View) string {
	var boxes []string
	if v.State == analytics.StateLoading {
		for range v.Skeletons {
			boxes = append(boxes, cardStyle.Render(subtitleStyle.Render(skeleton)+"\n"+subtitleStyle.Render(skeleton)))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}

	for _, c := range v.Cards {
		lines := []string{cardTitleStyle.Render(c.Title)}
		if c.Badge != nil {
			lines = append(lines, badgeStyle(c.Badge.Variant).Render(c.Badge.Text))
		} else {
			lines = append(lines, cardValueStyle.Render(c.Value))
		}
		if c.Description != "" {
			lines = append(lines, descriptionStyle(c.TrendColor).Render(c.Description))
		}
		boxes = append(boxes, cardStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func badgeStyle(variant analytics.BadgeVariant) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch variant {
	case analytics.BadgeNeutral:
		return s.Foreground(colorGreen)
	case analytics.BadgeCautionary:
		return s.Foreground(colorAmber)
	default:
		return s.Foreground(colorRed)
	}
}

func descriptionStyle(trendColor string) lipgloss.Style {
	switch trendColor {
	case analytics.TrendColorGood:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case analytics.TrendColorBad:
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return subtitleStyle
	}
}

func breakdown(values []analytics.CategoryValue) string {
	rows := make([]string, len(values))
	for i, cv := range values {
		rows[i] = labelStyle.Render(cv.Label) + fmt.Sprintf("%8.1f", cv.Value)
	}
	return strings.Join(rows, "\n")
}

// bars draws one horizontal bar per category scaled so the largest value
// fills the space left after the label and number columns.
func bars(values []analytics.CategoryValue, width int) string {
	if len(values) == 0 {
		return subtitleStyle.Render("No data for this period")
	}
	full := BarLength(width)

	maxV := 0.0
	for _, cv := range values {
		maxV = math.Max(maxV, cv.Value)
	}

	rows := make([]string, len(values))
	for i, cv := range values {
		n := 0
		if maxV > 0 {
			n = int(math.Round(cv.Value / maxV * float64(full)))
		}
		rows[i] = labelStyle.Render(cv.Label) +
			barStyle.Render(strings.Repeat(barGlyph, n)) +
			fmt.Sprintf(" %.1f", cv.Value)
	}
	return strings.Join(rows, "\n")
}

// BarLength is the number of glyphs the longest bar gets at width columns.
func BarLength(width int) int {
	n := width - labelWidth - 8
	if n < 10 {
		n = 10
	}
	return n
}

// Sparkline maps the series onto eight block heights, oldest first. A flat
// series renders at the lowest height.
func Sparkline(series []analytics.SeriesPoint) string {
	if len(series) == 0 {
		return ""
	}
	lo, hi := series[0].Total, series[0].Total
	for _, p := range series[1:] {
		lo = math.Min(lo, p.Total)
		hi = math.Max(hi, p.Total)
	}

	var b strings.Builder
	top := len(sparkGlyphs) - 1
	for _, p := range series {
		idx := 0
		if hi > lo {
			idx = int(math.Round((p.Total - lo) / (hi - lo) * float64(top)))
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}
