package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "solarcast", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Mode)
	assert.Equal(t, "info", cfg.App.LogLevel)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout)

	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.Weather.Endpoint)
	assert.Empty(t, cfg.Weather.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Weather.Timeout)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)

	assert.Equal(t, 8000, cfg.API.Port)
	assert.Equal(t, 100, cfg.API.DefaultLimit)
	assert.Equal(t, 1000, cfg.API.MaxLimit)
}

func TestLoad_DefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate_Failures(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		substr string
	}{
		{
			name:   "empty app name",
			mutate: func(c *Config) { c.App.Name = "" },
			substr: "app.name is required",
		},
		{
			name:   "bad mode",
			mutate: func(c *Config) { c.App.Mode = "staging" },
			substr: "app.mode",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.App.LogLevel = "trace" },
			substr: "app.log_level",
		},
		{
			name:   "bad database port",
			mutate: func(c *Config) { c.Database.Port = 70000 },
			substr: "database.port",
		},
		{
			name:   "zero write timeout",
			mutate: func(c *Config) { c.Database.WriteTimeout = 0 },
			substr: "database.write_timeout",
		},
		{
			name: "api key without endpoint",
			mutate: func(c *Config) {
				c.Weather.APIKey = "key"
				c.Weather.Endpoint = ""
			},
			substr: "weather.endpoint",
		},
		{
			name: "artifact with empty path",
			mutate: func(c *Config) {
				c.Models.Artifacts = map[string]string{"solar_linear": ""}
			},
			substr: "models.artifacts.solar_linear",
		},
		{
			name: "cache enabled without host",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.Host = ""
			},
			substr: "cache.host",
		},
		{
			name:   "max limit below default limit",
			mutate: func(c *Config) { c.API.MaxLimit = 10 },
			substr: "api.max_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Name = ""
	cfg.Database.Host = ""

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "app.name")
	assert.Contains(t, verr.Error(), "database.host")
}

func TestCacheConfig_Addr(t *testing.T) {
	cfg := CacheConfig{Host: "redis.internal", Port: 6380}
	assert.Equal(t, "redis.internal:6380", cfg.Addr())
}
