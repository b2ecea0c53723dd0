// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

// Package analytics turns a newest-first list of submissions into the numbers
// and view descriptors shown on the dashboard. Everything here is pure and
// recomputed from the full list on every call.
package analytics

import (
	"fmt"
	"math"

	"github.com/rawadhossain/GikiZero/internal/models"
)

// Category pairs a score key with its display label.
type Category struct {
	Key   models.CategoryKey `json:"key"`
	Label string             `json:"label"`
}

// Categories is the fixed display order of the fifteen score categories.
var Categories = []Category{
	{models.CategoryTransportation, "Transportation"},
	{models.CategoryEnergy, "Energy"},
	{models.CategoryWater, "Water"},
	{models.CategoryDiet, "Diet"},
	{models.CategoryFoodWaste, "Food Waste"},
	{models.CategoryShopping, "Shopping"},
	{models.CategoryWaste, "Waste"},
	{models.CategoryElectronics, "Electronics"},
	{models.CategoryTravel, "Travel"},
	{models.CategoryAppliance, "Appliances"},
	{models.CategoryHome, "Home"},
	{models.CategoryHeating, "Heating"},
	{models.CategoryDigital, "Digital Devices"},
	{models.CategoryPets, "Pets"},
	{models.CategoryGarden, "Garden"},
}

// MissingPolicy decides how an absent category score enters its average.
type MissingPolicy string

const (
	// MissingAsZero counts an absent score as 0 and keeps the record in the
	// denominator. Categories added later read low against older history.
	MissingAsZero MissingPolicy = "zero"

	// MissingExcluded averages only over records that carry the score.
	MissingExcluded MissingPolicy = "excluded"
)

// ParseMissingPolicy accepts "zero" or "excluded".
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(s); p {
	case MissingAsZero, MissingExcluded:
		return p, nil
	default:
		return "", fmt.Errorf("invalid missing-score policy %q", s)
	}
}

// CategoryAverage is one category's mean over the current records.
type CategoryAverage struct {
	Category
	Average float64 `json:"average"` // exact mean
	Rounded float64 `json:"rounded"` // one decimal, for display
	Samples int     `json:"samples"` // records that carried the score
}

// Summary holds every aggregate the dashboard needs.
type Summary struct {
	SubmissionCount  int               `json:"submissionCount"`
	AverageScore     float64           `json:"averageScore"`
	LatestScore      *float64          `json:"latestScore"`
	Trend            float64           `json:"trend"`
	LatestImpact     string            `json:"latestImpact"`
	ImpactBadge      BadgeVariant      `json:"impactBadge"`
	CategoryAverages []CategoryAverage `json:"categoryAverages"`
}

// Summarize computes the dashboard aggregates. records must be newest-first;
// records[0] is treated as the latest and records[1] as the one before it.
func Summarize(records []models.Submission, policy MissingPolicy) Summary {
	s := Summary{
		SubmissionCount:  len(records),
		AverageScore:     AverageScore(records),
		Trend:            Trend(records),
		ImpactBadge:      ImpactBadge(""),
		CategoryAverages: CategoryAverages(records, policy),
	}
	if len(records) > 0 {
		latest := records[0].TotalEmissionScore
		s.LatestScore = &latest
		s.LatestImpact = string(records[0].ImpactCategory)
		s.ImpactBadge = ImpactBadge(records[0].ImpactCategory)
	}
	return s
}

// AverageScore is the unweighted mean of the totals, or 0 for no records.
func AverageScore(records []models.Submission) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for i := range records {
		sum += records[i].TotalEmissionScore
	}
	return sum / float64(len(records))
}

// Trend is latest minus previous total, unrounded. Negative means lower
// emissions than last time. Fewer than two records give 0.
func Trend(records []models.Submission) float64 {
	if len(records) < 2 {
		return 0
	}
	return records[0].TotalEmissionScore - records[1].TotalEmissionScore
}

// CategoryAverages returns one entry per category in display order. No
// records yields no entries. Under MissingExcluded a category that no record
// carries is left out.
func CategoryAverages(records []models.Submission, policy MissingPolicy) []CategoryAverage {
	if len(records) == 0 {
		return []CategoryAverage{}
	}

	out := make([]CategoryAverage, 0, len(Categories))
	for _, c := range Categories {
		var sum float64
		var present int
		for i := range records {
			if v, ok := records[i].Score(c.Key); ok {
				sum += v
				present++
			}
		}

		denom := len(records)
		if policy == MissingExcluded {
			if present == 0 {
				continue
			}
			denom = present
		}

		avg := sum / float64(denom)
		out = append(out, CategoryAverage{
			Category: c,
			Average:  avg,
			Rounded:  RoundTenth(avg),
			Samples:  present,
		})
	}
	return out
}

// RoundTenth rounds half away from zero to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// BadgeVariant is the visual severity tier of an impact category.
type BadgeVariant string

const (
	BadgeNeutral    BadgeVariant = "neutral"
	BadgeCautionary BadgeVariant = "cautionary"
	BadgeSevere     BadgeVariant = "severe"
)

// ImpactBadge maps Low to neutral and Medium to cautionary. Everything else,
// including High, unknown labels and the empty string, is severe.
func ImpactBadge(c models.ImpactCategory) BadgeVariant {
	switch c {
	case models.ImpactLow:
		return BadgeNeutral
	case models.ImpactMedium:
		return BadgeCautionary
	default:
		return BadgeSevere
	}
}
