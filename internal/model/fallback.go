package model

import (
	"github.com/solarcast/solarcast/pkg/models"
)

// Fallback is the closed-form strategy used when no trained model is
// selected, available, or compatible with the input. It is total: any subset
// of the optional features still yields a finite value.
type Fallback struct{}

func (Fallback) Name() string {
	return models.FallbackModelName
}

// Estimate computes the fallback prediction. The base curve follows the
// typical daily generation profile; temperature and irradiance, when known,
// shift it around the curve.
func (Fallback) Estimate(hour int, temperature, irradiance *float64) float64 {
	value := hourBand(hour)

	if temperature != nil {
		value += 0.02 * (*temperature - 25.0)
	}
	if irradiance != nil {
		value += 0.001 * (*irradiance - 600.0)
	}

	if value < 0 {
		value = 0
	}
	return value
}

// hourBand is the base kWh output per time-of-day band.
func hourBand(hour int) float64 {
	switch {
	case hour < 6 || hour > 18:
		return 0.0
	case hour < 9:
		return 1.5
	case hour < 15:
		return 4.5
	default:
		return 2.5
	}
}
