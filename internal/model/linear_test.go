package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLinear_Valid(t *testing.T) {
	path := writeArtifact(t, `{
		"name": "solar_linear",
		"version": "v1",
		"features": ["temperature", "irradiance", "hour"],
		"intercept": 0.5,
		"coefficients": [0.02, 0.004, 0.1]
	}`)

	m, err := LoadLinear("linear", path)
	require.NoError(t, err)

	assert.Equal(t, "linear", m.Name())
	assert.Equal(t, "v1", m.Version())
	assert.Equal(t, []string{"temperature", "irradiance", "hour"}, m.Features())

	// 0.5 + 0.02*30 + 0.004*900 + 0.1*12 = 5.9
	value, err := m.Predict([]float64{30, 900, 12})
	require.NoError(t, err)
	assert.InDelta(t, 5.9, value, 1e-9)
}

func TestLoadLinear_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "corrupt JSON",
			content: `{"features": ["hour"`,
		},
		{
			name:    "no features",
			content: `{"features": [], "coefficients": []}`,
		},
		{
			name:    "coefficient count mismatch",
			content: `{"features": ["hour", "temperature"], "coefficients": [0.1]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.content)

			_, err := LoadLinear("bad", path)
			assert.ErrorIs(t, err, ErrLoadFailed)
		})
	}
}

func TestLoadLinear_MissingFile(t *testing.T) {
	_, err := LoadLinear("ghost", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestLinearModel_PredictShapeMismatch(t *testing.T) {
	path := writeArtifact(t, `{
		"features": ["hour", "temperature"],
		"intercept": 1.0,
		"coefficients": [0.1, 0.02]
	}`)

	m, err := LoadLinear("linear", path)
	require.NoError(t, err)

	tests := []struct {
		name     string
		features []float64
	}{
		{name: "too short", features: []float64{12}},
		{name: "too long", features: []float64{12, 25, 900}},
		{name: "empty", features: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Predict(tt.features)
			assert.ErrorIs(t, err, ErrFeatureShapeMismatch)
		})
	}
}
