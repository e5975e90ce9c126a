package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validArtifact = `{
	"features": ["hour"],
	"intercept": 0.0,
	"coefficients": [0.25]
}`

func TestLoad_BestEffort(t *testing.T) {
	dir := t.TempDir()

	goodPath := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(goodPath, []byte(validArtifact), 0o644))

	corruptPath := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corruptPath, []byte("not json"), 0o644))

	reg := Load(map[string]string{
		"good":    goodPath,
		"corrupt": corruptPath,
		"missing": filepath.Join(dir, "nope.json"),
	})

	// Only the loadable entry survives; the bad ones are skipped, never
	// fatal
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, []string{"good"}, reg.Names())

	_, err := reg.Get("corrupt")
	assert.ErrorIs(t, err, ErrModelNotFound)

	handle, err := reg.Get("good")
	require.NoError(t, err)
	assert.Equal(t, "good", handle.Name())
}

func TestLoad_Empty(t *testing.T) {
	reg := Load(nil)

	assert.Equal(t, 0, reg.Len())

	_, ok := reg.Primary()
	assert.False(t, ok)
}

func TestRegistry_PrimaryIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	paths := make(map[string]string)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		path := filepath.Join(dir, name+".json")
		require.NoError(t, os.WriteFile(path, []byte(validArtifact), 0o644))
		paths[name] = path
	}

	reg := Load(paths)
	require.Equal(t, 3, reg.Len())

	// First name in lexicographic order wins
	primary, ok := reg.Primary()
	require.True(t, ok)
	assert.Equal(t, "alpha", primary.Name())
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

func TestRegistry_PredictDefaultAlwaysSucceeds(t *testing.T) {
	reg := Load(nil)

	temp := 30.0
	irr := 900.0

	tests := []struct {
		name string
		temp *float64
		irr  *float64
	}{
		{name: "hour only", temp: nil, irr: nil},
		{name: "hour and temperature", temp: &temp, irr: nil},
		{name: "hour and irradiance", temp: nil, irr: &irr},
		{name: "all features", temp: &temp, irr: &irr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := reg.PredictDefault(12, tt.temp, tt.irr)
			assert.GreaterOrEqual(t, value, 0.0)
		})
	}
}
