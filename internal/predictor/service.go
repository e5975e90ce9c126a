// Package predictor orchestrates a prediction request: feature resolution,
// strategy selection, execution, and durable history recording.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/solarcast/solarcast/internal/irradiance"
	"github.com/solarcast/solarcast/internal/logger"
	"github.com/solarcast/solarcast/internal/metrics"
	"github.com/solarcast/solarcast/internal/model"
	"github.com/solarcast/solarcast/internal/weather"
	"github.com/solarcast/solarcast/pkg/models"
	"github.com/solarcast/solarcast/pkg/validation"
)

var (
	// ErrInvalidInput marks caller mistakes, surfaced as a 4xx.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreWrite marks a prediction that was computed but could not be
	// persisted. The history contract makes this a failed request.
	ErrStoreWrite = errors.New("failed to persist prediction")
)

// Store is the slice of the prediction repository the service needs.
type Store interface {
	Insert(ctx context.Context, result *models.PredictionResult) (int64, error)
}

type Config struct {
	WeatherTimeout time.Duration
	StoreTimeout   time.Duration
}

// Service owns no durable state: it borrows the registry (read-only after
// init) and the store (append-only).
type Service struct {
	registry *model.Registry
	resolver weather.Resolver // nil when no provider is configured
	store    Store
	cfg      Config
}

func New(registry *model.Registry, resolver weather.Resolver, store Store, cfg Config) *Service {
	if cfg.WeatherTimeout <= 0 {
		cfg.WeatherTimeout = 5 * time.Second
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	return &Service{
		registry: registry,
		resolver: resolver,
		store:    store,
		cfg:      cfg,
	}
}

// Predict resolves features, runs the chosen strategy, and records the
// outcome. Collaborator failures degrade; only invalid input and a failed
// history write surface as errors.
func (s *Service) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, int64, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionLatency.Observe(time.Since(start).Seconds())
	}()

	city := validation.SanitizeCityName(req.City)
	if city == "" {
		city = models.DefaultCity
	}

	hour := models.DefaultHour
	if req.Hour != nil {
		// Hours outside 0-23 flow through unmodified: the daylight
		// policy already treats them as night.
		hour = *req.Hour
	}

	temp := req.Temperature
	irr := req.Irradiance

	cloudCover := irradiance.NeutralCloudCover
	if (temp == nil || irr == nil) && s.resolver != nil && city != models.DefaultCity {
		obs := s.resolveWeather(ctx, city, hour)
		if obs != nil {
			if temp == nil {
				t := obs.Temperature
				temp = &t
			}
			cloudCover = obs.CloudCover
		}
	}

	if irr == nil {
		v := irradiance.Estimate(hour, cloudCover)
		irr = &v
	}

	value, used := s.executeStrategy(req.Model, city, hour, temp, irr)

	result := &models.PredictionResult{
		City:            city,
		Hour:            hour,
		Temperature:     temp,
		Irradiance:      irr,
		ModelUsed:       used,
		PredictedEnergy: models.Round2(value),
		Unit:            models.UnitKWh,
	}

	// The insert runs on a context detached from request cancellation: a
	// caller that gives up mid-write must not leave the history short a
	// record the response already committed to.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.StoreTimeout)
	defer cancel()

	id, err := s.store.Insert(storeCtx, result)
	if err != nil {
		metrics.StoreWriteFailures.Inc()
		logger.WithFields(map[string]interface{}{
			"city": city,
			"hour": hour,
		}).Errorf("History write failed: %v", err)
		return nil, 0, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	metrics.PredictionsServed.WithLabelValues(used).Inc()
	logger.WithFields(map[string]interface{}{
		"city":       city,
		"hour":       hour,
		"model_used": used,
		"record_id":  id,
	}).Infof("Prediction served: %.2f %s", result.PredictedEnergy, result.Unit)

	return result, id, nil
}

// resolveWeather fetches the ambient observation, absorbing every failure
// mode. A cancelled caller context is treated the same as a provider outage.
func (s *Service) resolveWeather(ctx context.Context, city string, hour int) *models.WeatherObservation {
	wctx, cancel := context.WithTimeout(ctx, s.cfg.WeatherTimeout)
	defer cancel()

	obs, err := s.resolver.Resolve(wctx, city)
	if err != nil {
		metrics.WeatherFailures.Inc()
		logger.WithFields(map[string]interface{}{
			"collaborator": "weather",
			"city":         city,
			"hour":         hour,
		}).Warnf("Weather unavailable, degrading: %v", err)
		return nil
	}
	return obs
}

// executeStrategy picks a strategy and runs it. Any model failure falls back
// to the built-in formula; this never errors.
func (s *Service) executeStrategy(modelName, city string, hour int, temp, irr *float64) (float64, string) {
	handle := s.selectHandle(modelName, city)

	if handle != nil {
		features, err := buildFeatures(handle.Features(), hour, temp, irr)
		if err == nil {
			value, perr := handle.Predict(features)
			if perr == nil {
				return value, handle.Name()
			}
			err = perr
		}
		logger.WithFields(map[string]interface{}{
			"collaborator": "model",
			"model":        handle.Name(),
			"city":         city,
			"hour":         hour,
		}).Warnf("Model execution failed, using fallback: %v", err)
	}

	metrics.FallbackPredictions.Inc()
	return s.registry.PredictDefault(hour, temp, irr), models.FallbackModelName
}

// selectHandle applies the strategy-selection policy: an explicit known name
// wins; an explicit unknown name degrades to fallback with a warning; no
// name selects the primary registered model, or fallback when none exist.
func (s *Service) selectHandle(modelName, city string) model.Handle {
	if modelName != "" {
		handle, err := s.registry.Get(modelName)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"model": modelName,
				"city":  city,
			}).Warn("Unknown model name, using fallback")
			return nil
		}
		return handle
	}

	if handle, ok := s.registry.Primary(); ok {
		return handle
	}
	return nil
}

// buildFeatures assembles the feature vector in the exact order the handle
// declares. A feature the request could not resolve (temperature during a
// weather outage) or an unrecognized name makes the model unusable for this
// request.
func buildFeatures(names []string, hour int, temp, irr *float64) ([]float64, error) {
	features := make([]float64, 0, len(names))
	for _, name := range names {
		switch name {
		case model.FeatureHour:
			features = append(features, float64(hour))
		case model.FeatureTemperature:
			if temp == nil {
				return nil, fmt.Errorf("feature %q unavailable", name)
			}
			features = append(features, *temp)
		case model.FeatureIrradiance, model.FeatureRadiation:
			if irr == nil {
				return nil, fmt.Errorf("feature %q unavailable", name)
			}
			features = append(features, *irr)
		default:
			return nil, fmt.Errorf("unrecognized feature %q", name)
		}
	}
	return features, nil
}
