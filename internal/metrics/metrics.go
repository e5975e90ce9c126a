// Package metrics exposes Prometheus counters for the prediction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solarcast_predictions_total",
		Help: "Total number of predictions served, by model.",
	}, []string{"model"})

	FallbackPredictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solarcast_fallback_predictions_total",
		Help: "Total number of predictions served by the fallback formula.",
	})

	WeatherFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solarcast_weather_failures_total",
		Help: "Total number of weather lookups that degraded to defaults.",
	})

	StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solarcast_store_write_failures_total",
		Help: "Total number of history writes that failed.",
	})

	PredictionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solarcast_prediction_duration_seconds",
		Help:    "End-to-end duration of a prediction request.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	})
)
