package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solarcast/solarcast/pkg/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestFallback_Name(t *testing.T) {
	assert.Equal(t, models.FallbackModelName, Fallback{}.Name())
}

func TestFallback_HourBands(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected float64
	}{
		{name: "night before dawn", hour: 3, expected: 0.0},
		{name: "early morning", hour: 7, expected: 1.5},
		{name: "midday peak", hour: 12, expected: 4.5},
		{name: "afternoon", hour: 16, expected: 2.5},
		{name: "after sunset", hour: 20, expected: 0.0},
		{name: "out of range high", hour: 30, expected: 0.0},
		{name: "out of range negative", hour: -1, expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fallback{}.Estimate(tt.hour, nil, nil))
		})
	}
}

// The fallback must produce a finite value for any subset of optional
// features.
func TestFallback_Total(t *testing.T) {
	temps := []*float64{nil, floatPtr(-10), floatPtr(0), floatPtr(30), floatPtr(45)}
	irrs := []*float64{nil, floatPtr(0), floatPtr(100), floatPtr(900), floatPtr(1000)}

	for hour := -2; hour <= 25; hour++ {
		for _, temp := range temps {
			for _, irr := range irrs {
				value := Fallback{}.Estimate(hour, temp, irr)
				assert.False(t, math.IsNaN(value), "NaN for hour=%d", hour)
				assert.False(t, math.IsInf(value, 0), "Inf for hour=%d", hour)
				assert.GreaterOrEqual(t, value, 0.0)
			}
		}
	}
}

func TestFallback_Deterministic(t *testing.T) {
	temp := floatPtr(30.0)
	irr := floatPtr(900.0)

	first := Fallback{}.Estimate(12, temp, irr)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Fallback{}.Estimate(12, temp, irr))
	}
}

func TestFallback_FeatureShifts(t *testing.T) {
	base := Fallback{}.Estimate(12, nil, nil)

	warm := Fallback{}.Estimate(12, floatPtr(35.0), nil)
	assert.Greater(t, warm, base, "warmer than reference temperature should shift up")

	dim := Fallback{}.Estimate(12, nil, floatPtr(100.0))
	assert.Less(t, dim, base, "low irradiance should shift down")
}
