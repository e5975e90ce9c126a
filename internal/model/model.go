// Package model holds the prediction strategies: trained regression models
// loaded from artifacts, and the always-available fallback formula.
package model

import "errors"

var (
	// ErrModelNotFound is returned by the registry for unknown names.
	ErrModelNotFound = errors.New("model not found")

	// ErrFeatureShapeMismatch is returned when a feature vector does not
	// match the shape a model declares.
	ErrFeatureShapeMismatch = errors.New("feature vector does not match model shape")

	// ErrLoadFailed wraps any artifact read or parse failure.
	ErrLoadFailed = errors.New("model artifact load failed")
)

// Feature names a model may declare in its artifact.
const (
	FeatureHour        = "hour"
	FeatureTemperature = "temperature"
	FeatureIrradiance  = "irradiance"
	// FeatureRadiation is an alias some older artifacts use for irradiance.
	FeatureRadiation = "radiation"
)

// Handle is a loaded, named predictor ready to serve. Implementations are
// immutable after load and safe for concurrent use.
type Handle interface {
	// Name is the registry key of this model.
	Name() string

	// Features is the ordered feature vector shape the model expects.
	Features() []string

	// Predict executes the model over a feature vector matching the
	// declared shape exactly.
	Predict(features []float64) (float64, error)
}
