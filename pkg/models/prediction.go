package models

import (
	"math"
	"time"
)

const (
	// UnitKWh is the unit every prediction is expressed in.
	UnitKWh = "kWh"

	// FallbackModelName is recorded as model_used whenever the built-in
	// formula served the request instead of a trained model.
	FallbackModelName = "fallback_logic"

	// DefaultCity is used when the request does not name a city.
	DefaultCity = "Unknown"

	// DefaultHour is assumed when the request omits the hour.
	DefaultHour = 12
)

// PredictionRequest is the inbound payload for a single prediction.
// Optional fields are pointers so "absent" and "zero" stay distinguishable.
type PredictionRequest struct {
	City        string   `json:"city"`
	Hour        *int     `json:"hour"`
	Temperature *float64 `json:"temperature"`
	Irradiance  *float64 `json:"irradiance"`
	Model       string   `json:"model"`
}

// PredictionResult is what the service returns to the caller and mirrors
// into storage.
type PredictionResult struct {
	City            string   `json:"city"`
	Hour            int      `json:"hour"`
	Temperature     *float64 `json:"temperature,omitempty"`
	Irradiance      *float64 `json:"irradiance,omitempty"`
	ModelUsed       string   `json:"model_used"`
	PredictedEnergy float64  `json:"predicted_energy_kwh"`
	Unit            string   `json:"unit"`
}

// PredictionRecord is one durable history row. Records are append-only and
// totally ordered by ID.
type PredictionRecord struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	City        string    `json:"city"`
	Hour        int       `json:"hour"`
	Temperature *float64  `json:"temperature,omitempty"`
	Irradiance  *float64  `json:"irradiance,omitempty"`
	Model       string    `json:"model"`
	Prediction  float64   `json:"prediction"`
}

// Round2 rounds a prediction value to two decimal places for display and
// storage.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
