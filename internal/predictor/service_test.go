package predictor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarcast/solarcast/internal/model"
	"github.com/solarcast/solarcast/pkg/models"
)

// memoryStore is an in-memory PredictionStore with atomic monotonic IDs.
type memoryStore struct {
	mu      sync.Mutex
	nextID  int64
	records []models.PredictionResult
	failing bool
}

func (s *memoryStore) Insert(ctx context.Context, result *models.PredictionResult) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing {
		return 0, errors.New("connection refused")
	}

	s.nextID++
	s.records = append(s.records, *result)
	return s.nextID, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// stubResolver resolves a fixed observation for every city except those in
// unavailable.
type stubResolver struct {
	temperature float64
	cloudCover  float64
	unavailable map[string]bool
	calls       int
}

func (r *stubResolver) Resolve(ctx context.Context, city string) (*models.WeatherObservation, error) {
	r.calls++
	if r.unavailable[city] {
		return nil, errors.New("weather provider unavailable")
	}
	return &models.WeatherObservation{
		City:        city,
		Temperature: r.temperature,
		CloudCover:  r.cloudCover,
	}, nil
}

func (r *stubResolver) HealthCheck(ctx context.Context) error { return nil }
func (r *stubResolver) Close() error                          { return nil }

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func emptyRegistry() *model.Registry {
	return model.Load(nil)
}

func registryWith(t *testing.T, name, artifact string) *model.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".json")
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o644))
	reg := model.Load(map[string]string{name: path})
	require.Equal(t, 1, reg.Len())
	return reg
}

func TestPredict_WeatherUnavailableDegrades(t *testing.T) {
	store := &memoryStore{}
	resolver := &stubResolver{unavailable: map[string]bool{"Atlantis": true}}
	svc := New(emptyRegistry(), resolver, store, Config{})

	result, id, err := svc.Predict(context.Background(), &models.PredictionRequest{
		City: "Atlantis",
		Hour: intPtr(12),
	})

	require.NoError(t, err)
	assert.Equal(t, models.FallbackModelName, result.ModelUsed)
	assert.Nil(t, result.Temperature)
	// Neutral cloud cover still yields an irradiance estimate
	require.NotNil(t, result.Irradiance)
	assert.Equal(t, 700.0, *result.Irradiance)
	assert.Positive(t, id)
	assert.Equal(t, 1, store.count())
}

func TestPredict_UnknownModelFallsBack(t *testing.T) {
	store := &memoryStore{}
	svc := New(emptyRegistry(), nil, store, Config{})

	result, _, err := svc.Predict(context.Background(), &models.PredictionRequest{
		Hour:  intPtr(9),
		Model: "nonexistent",
	})

	require.NoError(t, err)
	assert.Equal(t, models.FallbackModelName, result.ModelUsed)
	assert.Equal(t, models.UnitKWh, result.Unit)
	assert.GreaterOrEqual(t, result.PredictedEnergy, 0.0)
}

func TestPredict_EndToEndDeterministic(t *testing.T) {
	store := &memoryStore{}
	svc := New(emptyRegistry(), nil, store, Config{})

	req := &models.PredictionRequest{
		City:        "Lagos",
		Hour:        intPtr(12),
		Temperature: floatPtr(30),
		Irradiance:  floatPtr(900),
	}

	first, firstID, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	second, secondID, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.PredictedEnergy, second.PredictedEnergy)
	assert.Greater(t, secondID, firstID)
	assert.Equal(t, 2, store.count())
}

func TestPredict_Defaults(t *testing.T) {
	store := &memoryStore{}
	svc := New(emptyRegistry(), nil, store, Config{})

	result, _, err := svc.Predict(context.Background(), &models.PredictionRequest{})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultCity, result.City)
	assert.Equal(t, models.DefaultHour, result.Hour)
	assert.Equal(t, models.FallbackModelName, result.ModelUsed)
}

func TestPredict_ModelServesWhenFeaturesResolve(t *testing.T) {
	reg := registryWith(t, "linear", `{
		"features": ["hour", "temperature", "irradiance"],
		"intercept": 0.5,
		"coefficients": [0.1, 0.02, 0.004]
	}`)
	store := &memoryStore{}
	resolver := &stubResolver{temperature: 25, cloudCover: 0}
	svc := New(reg, resolver, store, Config{})

	result, _, err := svc.Predict(context.Background(), &models.PredictionRequest{
		City: "Lagos",
		Hour: intPtr(12),
	})

	require.NoError(t, err)
	assert.Equal(t, "linear", result.ModelUsed)
	// 0.5 + 0.1*12 + 0.02*25 + 0.004*1000 = 6.2
	assert.InDelta(t, 6.2, result.PredictedEnergy, 1e-9)
	assert.Equal(t, 1, resolver.calls)
}

func TestPredict_ModelNeedsTemperatureButWeatherDown(t *testing.T) {
	reg := registryWith(t, "linear", `{
		"features": ["hour", "temperature"],
		"intercept": 0.0,
		"coefficients": [0.1, 0.02]
	}`)
	store := &memoryStore{}
	resolver := &stubResolver{unavailable: map[string]bool{"Atlantis": true}}
	svc := New(reg, resolver, store, Config{})

	result, _, err := svc.Predict(context.Background(), &models.PredictionRequest{
		City: "Atlantis",
		Hour: intPtr(12),
	})

	// The model cannot run without temperature, so the request degrades
	// instead of failing
	require.NoError(t, err)
	assert.Equal(t, models.FallbackModelName, result.ModelUsed)
	assert.Equal(t, 1, store.count())
}

func TestPredict_StoreFailureSurfaces(t *testing.T) {
	store := &memoryStore{failing: true}
	svc := New(emptyRegistry(), nil, store, Config{})

	_, _, err := svc.Predict(context.Background(), &models.PredictionRequest{
		Hour: intPtr(10),
	})

	assert.ErrorIs(t, err, ErrStoreWrite)
}

func TestPredict_SuppliedFeaturesSkipWeather(t *testing.T) {
	store := &memoryStore{}
	resolver := &stubResolver{temperature: 25, cloudCover: 0}
	svc := New(emptyRegistry(), resolver, store, Config{})

	result, _, err := svc.Predict(context.Background(), &models.PredictionRequest{
		City:        "Lagos",
		Hour:        intPtr(12),
		Temperature: floatPtr(31),
		Irradiance:  floatPtr(850),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resolver.calls, "fully supplied features should not trigger a weather call")
	assert.Equal(t, 31.0, *result.Temperature)
	assert.Equal(t, 850.0, *result.Irradiance)
}

func TestPredict_HourOutsideRangeFlowsThrough(t *testing.T) {
	store := &memoryStore{}
	svc := New(emptyRegistry(), nil, store, Config{})

	result, _, err := svc.Predict(context.Background(), &models.PredictionRequest{
		Hour: intPtr(25),
	})

	require.NoError(t, err)
	assert.Equal(t, 25, result.Hour)
	// Out-of-range hours read as night
	assert.Equal(t, 0.0, result.PredictedEnergy)
	require.NotNil(t, result.Irradiance)
	assert.Equal(t, 100.0, *result.Irradiance)
}
