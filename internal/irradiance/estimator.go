// Package irradiance estimates solar irradiance from the hour of day and
// cloud cover when no measured value is supplied.
package irradiance

import "math"

const (
	// NeutralCloudCover is assumed when no weather observation is
	// available, so a weather outage still yields a usable estimate.
	NeutralCloudCover = 50.0

	nightBaseline    = 100.0
	clearSkyMax      = 1000.0
	cloudAttenuation = 600.0
	daylightStart    = 6
	daylightEnd      = 18
)

// Estimate returns an irradiance value (W/m²-equivalent) for any numeric
// input, including out-of-range hours. Outside daylight hours it is a fixed
// baseline; during daylight it degrades linearly with cloud cover.
func Estimate(hour int, cloudCoverPercent float64) float64 {
	if hour < daylightStart || hour > daylightEnd {
		return nightBaseline
	}

	value := clearSkyMax - cloudCoverPercent/100.0*cloudAttenuation
	if value < 0 {
		value = 0
	}
	return math.Round(value*100) / 100
}
