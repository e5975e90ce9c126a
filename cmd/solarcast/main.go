package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solarcast/solarcast/api"
	"github.com/solarcast/solarcast/internal/logger"
	"github.com/solarcast/solarcast/internal/model"
	"github.com/solarcast/solarcast/internal/predictor"
	"github.com/solarcast/solarcast/internal/resilience"
	"github.com/solarcast/solarcast/internal/weather"
	"github.com/solarcast/solarcast/pkg/config"
	"github.com/solarcast/solarcast/pkg/database"
	"github.com/solarcast/solarcast/pkg/database/queries"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	db, err := database.New(cfg.Database.ToDBConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Schema setup is create-if-absent, safe to run on every startup and
	// to race across instances.
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	migrator := database.NewMigrator(db)
	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if *migrateOnly {
		logger.Info("Migrations completed successfully")
		return nil
	}

	registry := model.Load(cfg.Models.Artifacts)
	logger.Infof("Model registry ready with %d trained model(s)", registry.Len())

	resolver := buildResolver(cfg)
	if resolver != nil {
		defer resolver.Close()
	}

	store := queries.NewPredictionRepository(db.DB)
	service := predictor.New(registry, resolver, store, predictor.Config{
		WeatherTimeout: cfg.Weather.Timeout,
		StoreTimeout:   cfg.Database.WriteTimeout,
	})

	server := api.NewServer(cfg, db, registry, resolver, service)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("API server listening on port %d", cfg.API.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	shutdownTimeout := cfg.App.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// buildResolver assembles the weather stack: HTTP provider, circuit breaker,
// and an optional Redis cache. Returns nil when no provider is configured;
// the service then degrades to neutral-cloud-cover estimates.
func buildResolver(cfg *config.Config) weather.Resolver {
	if cfg.Weather.APIKey == "" {
		logger.Warn("No weather API key configured, predictions will use neutral cloud cover")
		return nil
	}

	var resolver weather.Resolver = weather.NewHTTPResolver(weather.HTTPResolverConfig{
		Endpoint: cfg.Weather.Endpoint,
		APIKey:   cfg.Weather.APIKey,
		Timeout:  cfg.Weather.Timeout,
	})

	resolver = weather.NewResilientResolver(weather.ResilientResolverConfig{
		Resolver:    resolver,
		MaxFailures: cfg.Weather.CircuitBreaker.MaxFailures,
		Timeout:     cfg.Weather.CircuitBreaker.Timeout,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warnf("Circuit breaker %q transitioned %s -> %s", name, from, to)
		},
	})

	if cfg.Cache.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr(),
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			logger.Warnf("Weather cache unavailable, continuing without it: %v", err)
			client.Close()
		} else {
			logger.Info("Weather cache connected")
			resolver = weather.NewCachedResolver(resolver, client, cfg.Cache.TTL)
		}
	}

	return resolver
}
