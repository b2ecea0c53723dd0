// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package models

import "time"

// ImpactCategory is the coarse severity label the upstream scorer attaches
// to a submission. Values outside the three constants do occur in stored data.
type ImpactCategory string

const (
	ImpactLow    ImpactCategory = "Low"
	ImpactMedium ImpactCategory = "Medium"
	ImpactHigh   ImpactCategory = "High"
)

// CategoryKey names one per-category score field, using its JSON name.
type CategoryKey string

const (
	CategoryTransportation CategoryKey = "transportationScore"
	CategoryEnergy         CategoryKey = "energyScore"
	CategoryWater          CategoryKey = "waterScore"
	CategoryDiet           CategoryKey = "dietScore"
	CategoryFoodWaste      CategoryKey = "foodWasteScore"
	CategoryShopping       CategoryKey = "shoppingScore"
	CategoryWaste          CategoryKey = "wasteScore"
	CategoryElectronics    CategoryKey = "electronicsScore"
	CategoryTravel         CategoryKey = "travelScore"
	CategoryAppliance      CategoryKey = "applianceScore"
	CategoryHome           CategoryKey = "homeScore"
	CategoryHeating        CategoryKey = "heatingScore"
	CategoryDigital        CategoryKey = "digitalScore"
	CategoryPets           CategoryKey = "petsScore"
	CategoryGarden         CategoryKey = "gardenScore"
)

// Submission is one scored assessment. Scores are kg CO2e. The last five
// categories were added later and are nil on older records.
type Submission struct {
	ID     string `json:"id"`
	UserID string `json:"userId,omitempty"`

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

	HomeScore    *float64 `json:"homeScore,omitempty"`
	HeatingScore *float64 `json:"heatingScore,omitempty"`
	DigitalScore *float64 `json:"digitalScore,omitempty"`
	PetsScore    *float64 `json:"petsScore,omitempty"`
	GardenScore  *float64 `json:"gardenScore,omitempty"`

	TotalEmissionScore float64        `json:"totalEmissionScore"`
	ImpactCategory     ImpactCategory `json:"impactCategory"`
	CreatedAt          *time.Time     `json:"createdAt,omitempty"`
}

// Score returns the value stored for key and whether it is present.
// Unknown keys report absent.
func (s *Submission) Score(key CategoryKey) (float64, bool) {
	switch key {
	case CategoryTransportation:
		return s.TransportationScore, true
	case CategoryEnergy:
		return s.EnergyScore, true
	case CategoryWater:
		return s.WaterScore, true
	case CategoryDiet:
		return s.DietScore, true
	case CategoryFoodWaste:
		return s.FoodWasteScore, true
	case CategoryShopping:
		return s.ShoppingScore, true
	case CategoryWaste:
		return s.WasteScore, true
	case CategoryElectronics:
		return s.ElectronicsScore, true
	case CategoryTravel:
		return s.TravelScore, true
	case CategoryAppliance:
		return s.ApplianceScore, true
	case CategoryHome:
		return deref(s.HomeScore)
	case CategoryHeating:
		return deref(s.HeatingScore)
	case CategoryDigital:
		return deref(s.DigitalScore)
	case CategoryPets:
		return deref(s.PetsScore)
	case CategoryGarden:
		return deref(s.GardenScore)
	default:
		return 0, false
	}
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// NewSubmission is the body of POST /api/submissions. The record arrives
// already scored; the server only validates and stores it.
type NewSubmission struct {
	TransportationScore float64 `json:"transportationScore" validate:"gte=0"`
	EnergyScore         float64 `json:"energyScore" validate:"gte=0"`
	WaterScore          float64 `json:"waterScore" validate:"gte=0"`
	DietScore           float64 `json:"dietScore" validate:"gte=0"`
	FoodWasteScore      float64 `json:"foodWasteScore" validate:"gte=0"`
	ShoppingScore       float64 `json:"shoppingScore" validate:"gte=0"`
	WasteScore          float64 `json:"wasteScore" validate:"gte=0"`
	ElectronicsScore    float64 `json:"electronicsScore" validate:"gte=0"`
	TravelScore         float64 `json:"travelScore" validate:"gte=0"`
	ApplianceScore      float64 `json:"applianceScore" validate:"gte=0"`

	HomeScore    *float64 `json:"homeScore" validate:"omitnil,gte=0"`
	HeatingScore *float64 `json:"heatingScore" validate:"omitnil,gte=0"`
	DigitalScore *float64 `json:"digitalScore" validate:"omitnil,gte=0"`
	PetsScore    *float64 `json:"petsScore" validate:"omitnil,gte=0"`
	GardenScore  *float64 `json:"gardenScore" validate:"omitnil,gte=0"`

	TotalEmissionScore float64 `json:"totalEmissionScore" validate:"gte=0"`
	ImpactCategory     string  `json:"impactCategory" validate:"required,oneof=Low Medium High"`
}

// ToSubmission copies the scores into a Submission owned by userID.
// ID and CreatedAt are left for the store to assign.
func (n *NewSubmission) ToSubmission(userID string) *Submission {
	return &Submission{
		UserID:              userID,
		TransportationScore: n.TransportationScore,
		EnergyScore:         n.EnergyScore,
		WaterScore:          n.WaterScore,
		DietScore:           n.DietScore,
		FoodWasteScore:      n.FoodWasteScore,
		ShoppingScore:       n.ShoppingScore,
		WasteScore:          n.WasteScore,
		ElectronicsScore:    n.ElectronicsScore,
		TravelScore:         n.TravelScore,
		ApplianceScore:      n.ApplianceScore,
		HomeScore:           n.HomeScore,
		HeatingScore:        n.HeatingScore,
		DigitalScore:        n.DigitalScore,
		PetsScore:           n.PetsScore,
		GardenScore:         n.GardenScore,
		TotalEmissionScore:  n.TotalEmissionScore,
		ImpactCategory:      ImpactCategory(n.ImpactCategory),
	}
}
