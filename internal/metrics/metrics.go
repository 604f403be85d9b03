package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Training quality is exported per fuel type after every training run.
// These report the last run only, so gauges rather than counters.
var (
	TrainR2 = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "plantcast_train_r2",
		Help: "Holdout R-squared of the last training run per fuel type",
	}, []string{"fuel_type"})

	TrainMAE = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "plantcast_train_mae_mw",
		Help: "Holdout mean absolute error in MW of the last training run per fuel type",
	}, []string{"fuel_type"})

	TrainSamples = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "plantcast_train_samples",
		Help: "Sample count seen by the last training run per fuel type",
	}, []string{"fuel_type"})
)

var (
	ForecastRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantcast_forecast_requests_total",
		Help: "Forecast requests by completion status",
	}, []string{"status"})

	FallbackInferences = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantcast_fallback_inferences_total",
		Help: "Inferences served by the capacity fallback instead of a trained model",
	})

	ForecastDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plantcast_forecast_duration_seconds",
		Help:    "End-to-end forecast duration in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
