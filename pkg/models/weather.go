package models

import "time"

// WeatherObservation is the resolved ambient state for a city: the current
// temperature and a cloud-cover proxy used to estimate irradiance.
type WeatherObservation struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	CloudCover  float64   `json:"cloud_cover"`
	ObservedAt  time.Time `json:"observed_at"`
}
