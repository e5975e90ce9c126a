package weather

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solarcast/solarcast/internal/logger"
	"github.com/solarcast/solarcast/pkg/models"
)

// CachedResolver keeps recent observations in Redis so repeated predictions
// for the same city within the TTL do not hit the provider. Cache failures
// are logged and fall through to the wrapped resolver.
type CachedResolver struct {
	resolver Resolver
	client   *redis.Client
	ttl      time.Duration
}

func NewCachedResolver(resolver Resolver, client *redis.Client, ttl time.Duration) *CachedResolver {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedResolver{
		resolver: resolver,
		client:   client,
		ttl:      ttl,
	}
}

func cacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}

func (r *CachedResolver) Resolve(ctx context.Context, city string) (*models.WeatherObservation, error) {
	if city == "" {
		return nil, ErrEmptyCity
	}

	key := cacheKey(city)

	val, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var obs models.WeatherObservation
		if jerr := json.Unmarshal([]byte(val), &obs); jerr == nil {
			logger.WithCity(city).Debug("Weather cache hit")
			return &obs, nil
		}
		// A corrupt entry is dropped and refetched
		r.client.Del(ctx, key)
	} else if err != redis.Nil {
		logger.WithCity(city).Warnf("Weather cache read failed: %v", err)
	}

	obs, err := r.resolver.Resolve(ctx, city)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(obs); jerr == nil {
		if serr := r.client.Set(ctx, key, data, r.ttl).Err(); serr != nil {
			logger.WithCity(city).Warnf("Weather cache write failed: %v", serr)
		}
	}

	return obs, nil
}

func (r *CachedResolver) HealthCheck(ctx context.Context) error {
	return r.resolver.HealthCheck(ctx)
}

func (r *CachedResolver) Close() error {
	if err := r.client.Close(); err != nil {
		logger.Warnf("Failed to close weather cache client: %v", err)
	}
	return r.resolver.Close()
}
