package weather

import (
	"context"
	"time"

	"github.com/solarcast/solarcast/internal/logger"
	"github.com/solarcast/solarcast/internal/resilience"
	"github.com/solarcast/solarcast/pkg/models"
)

// ResilientResolver wraps a Resolver with a circuit breaker so a flapping
// weather provider stops being hammered. An open circuit reads as
// ErrUnavailable, which the prediction service already degrades on.
type ResilientResolver struct {
	resolver       Resolver
	circuitBreaker *resilience.CircuitBreaker
}

type ResilientResolverConfig struct {
	Resolver      Resolver
	MaxFailures   int
	Timeout       time.Duration
	OnStateChange func(name string, from, to resilience.State)
}

func NewResilientResolver(cfg ResilientResolverConfig) *ResilientResolver {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:          "weather",
		MaxFailures:   cfg.MaxFailures,
		Timeout:       cfg.Timeout,
		OnStateChange: cfg.OnStateChange,
	})

	return &ResilientResolver{
		resolver:       cfg.Resolver,
		circuitBreaker: cb,
	}
}

func (r *ResilientResolver) Resolve(ctx context.Context, city string) (*models.WeatherObservation, error) {
	var obs *models.WeatherObservation

	err := r.circuitBreaker.Execute(func() error {
		var err error
		obs, err = r.resolver.Resolve(ctx, city)
		return err
	})
	if err != nil {
		if err == resilience.ErrCircuitOpen {
			logger.WithCity(city).Warn("Weather circuit open, skipping provider call")
			return nil, ErrUnavailable
		}
		return nil, err
	}

	return obs, nil
}

func (r *ResilientResolver) HealthCheck(ctx context.Context) error {
	return r.resolver.HealthCheck(ctx)
}

func (r *ResilientResolver) Close() error {
	return r.resolver.Close()
}
