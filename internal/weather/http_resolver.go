package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/solarcast/solarcast/internal/logger"
	"github.com/solarcast/solarcast/pkg/models"
)

// HTTPResolver calls an OpenWeatherMap-compatible current-weather endpoint.
type HTTPResolver struct {
	client   *http.Client
	endpoint string
	apiKey   string
	timeout  time.Duration
}

type HTTPResolverConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

func NewHTTPResolver(cfg HTTPResolverConfig) *HTTPResolver {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &HTTPResolver{
		client: &http.Client{
			Timeout: timeout,
		},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		timeout:  timeout,
	}
}

// providerResponse matches the subset of the provider payload we consume:
// current temperature in °C (units=metric) and cloud cover percent.
type providerResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Message string `json:"message"`
}

func (r *HTTPResolver) Resolve(ctx context.Context, city string) (*models.WeatherObservation, error) {
	if city == "" {
		return nil, ErrEmptyCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", r.apiKey)
	params.Set("units", "metric")
	reqURL := fmt.Sprintf("%s?%s", r.endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")

	logger.WithCity(city).Debug("Fetching current weather")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCityNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUnavailable, err)
	}

	var provResp providerResponse
	if err := json.Unmarshal(body, &provResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	// The provider signals an unresolvable city with an error message even
	// under some 200 responses
	if provResp.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, provResp.Message)
	}

	return &models.WeatherObservation{
		City:        city,
		Temperature: provResp.Main.Temp,
		CloudCover:  provResp.Clouds.All,
		ObservedAt:  time.Now().UTC(),
	}, nil
}

func (r *HTTPResolver) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("weather provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	return nil
}

func (r *HTTPResolver) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
