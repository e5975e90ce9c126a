package weather

import (
	"context"
	"errors"

	"github.com/solarcast/solarcast/pkg/models"
)

var (
	ErrUnavailable     = errors.New("weather provider unavailable")
	ErrTimeout         = errors.New("weather lookup timeout")
	ErrCityNotFound    = errors.New("city not found")
	ErrEmptyCity       = errors.New("city name is empty")
	ErrInvalidResponse = errors.New("invalid response from weather provider")
)

// Resolver turns a city name into an ambient observation. Every failure mode
// is recoverable: callers degrade rather than fail the request.
type Resolver interface {
	// Resolve fetches the current observation for a city.
	Resolve(ctx context.Context, city string) (*models.WeatherObservation, error)

	// HealthCheck verifies the resolver can reach its provider.
	HealthCheck(ctx context.Context) error

	// Close releases any resources held by the resolver.
	Close() error
}
