package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

// linearArtifact is the on-disk JSON export of a trained linear regressor:
// ordered feature names with matching coefficients and an intercept.
type linearArtifact struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LinearModel executes a linear-regression artifact. Immutable after load.
type LinearModel struct {
	name      string
	version   string
	features  []string
	intercept float64
	coeffs    *mat.VecDense
}

// LoadLinear reads and validates a linear model artifact. Any failure wraps
// ErrLoadFailed; the caller decides whether that is fatal (it never is at
// startup, the entry is simply skipped).
func LoadLinear(name, path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	var artifact linearArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	if len(artifact.Features) == 0 {
		return nil, fmt.Errorf("%w: artifact declares no features", ErrLoadFailed)
	}
	if len(artifact.Coefficients) != len(artifact.Features) {
		return nil, fmt.Errorf("%w: %d coefficients for %d features",
			ErrLoadFailed, len(artifact.Coefficients), len(artifact.Features))
	}
	for i, c := range artifact.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", ErrLoadFailed, i)
		}
	}
	if math.IsNaN(artifact.Intercept) || math.IsInf(artifact.Intercept, 0) {
		return nil, fmt.Errorf("%w: intercept is not finite", ErrLoadFailed)
	}

	return &LinearModel{
		name:      name,
		version:   artifact.Version,
		features:  artifact.Features,
		intercept: artifact.Intercept,
		coeffs:    mat.NewVecDense(len(artifact.Coefficients), artifact.Coefficients),
	}, nil
}

func (m *LinearModel) Name() string {
	return m.name
}

func (m *LinearModel) Version() string {
	return m.version
}

func (m *LinearModel) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != m.coeffs.Len() {
		return 0, fmt.Errorf("%w: got %d features, model %q expects %d",
			ErrFeatureShapeMismatch, len(features), m.name, m.coeffs.Len())
	}

	vec := mat.NewVecDense(len(features), features)
	value := m.intercept + mat.Dot(m.coeffs, vec)

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("model %q produced a non-finite value", m.name)
	}
	return value, nil
}
