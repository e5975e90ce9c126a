package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, fmt.Errorf("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, fmt.Errorf("app.log_level must be one of: debug, info, warn, error"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, errors.New("database.port must be between 1 and 65535"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.MaxConnections <= 0 {
		errs = append(errs, errors.New("database.max_connections must be positive"))
	}
	if c.Database.WriteTimeout <= 0 {
		errs = append(errs, errors.New("database.write_timeout must be positive"))
	}

	// Weather validation: only enforced when the provider is configured
	if c.Weather.APIKey != "" {
		if c.Weather.Endpoint == "" {
			errs = append(errs, errors.New("weather.endpoint is required when weather.api_key is set"))
		}
		if c.Weather.Timeout <= 0 {
			errs = append(errs, errors.New("weather.timeout must be positive"))
		}
	}

	// Model artifacts need a non-empty path per entry
	for name, path := range c.Models.Artifacts {
		if name == "" {
			errs = append(errs, errors.New("models.artifacts contains an entry with an empty name"))
		}
		if path == "" {
			errs = append(errs, fmt.Errorf("models.artifacts.%s has an empty path", name))
		}
	}

	// Cache validation
	if c.Cache.Enabled {
		if c.Cache.Host == "" {
			errs = append(errs, errors.New("cache.host is required when cache is enabled"))
		}
		if c.Cache.TTL <= 0 {
			errs = append(errs, errors.New("cache.ttl must be positive"))
		}
	}

	// API validation
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}
	if c.API.DefaultLimit <= 0 {
		errs = append(errs, errors.New("api.default_limit must be positive"))
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		errs = append(errs, errors.New("api.max_limit must be >= api.default_limit"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
