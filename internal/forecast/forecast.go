package forecast

import (
	"context"
	"fmt"
	"time"

	"plantcast/internal/config"
	"plantcast/internal/fetchers"
	"plantcast/internal/inference"
	"plantcast/internal/logger"
	"plantcast/internal/metrics"
	"plantcast/internal/models"
)

// Chennai substitutes when IP geolocation fails. The weather supplier still
// needs coordinates, so the pipeline degrades to a fixed site rather than
// aborting.
var fallbackLocation = models.Location{
	Latitude:  13.0895,
	Longitude: 80.2739,
	City:      "Chennai",
	Country:   "IN",
}

// Service runs the forecast pipeline end to end: resolve the plant site,
// pull the weather horizon and fuel-market headlines, then price every day
// through the inference engine.
type Service struct {
	cfg     *config.Config
	fetcher *fetchers.DataFetcher
	engine  *inference.Engine
	log     *logger.Logger
}

// New creates a forecast service around the given fetcher and engine.
func New(cfg *config.Config, fetcher *fetchers.DataFetcher, engine *inference.Engine) *Service {
	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		engine:  engine,
		log:     logger.GetGlobalLogger().WithComponent("forecast"),
	}
}

// Forecast produces the multi-day setpoint recommendation for one plant
// operating point. Weather supplier failure fails the whole request; there
// are no partial results. Location and news failures degrade: the fixed
// fallback site is tagged on the result, headlines are simply omitted.
func (s *Service) Forecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResult, error) {
	start := time.Now()

	days := req.Days
	if days <= 0 {
		days = s.cfg.ForecastDays
	}

	location := fallbackLocation
	locationFallback := false
	if loc, err := s.fetcher.FetchLocation(ctx, s.cfg.IPInfoURL); err != nil {
		s.log.Warn("Location fetch failed, using fallback site", map[string]interface{}{
			"error": err.Error(),
			"city":  fallbackLocation.City,
		})
		locationFallback = true
	} else {
		location = loc
	}

	weather, notes, err := s.fetcher.FetchWeatherAndNews(ctx, s.cfg.OpenMeteoURL, s.cfg.FuelNewsRSSURL,
		location.Latitude, location.Longitude, days)
	if err != nil {
		metrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch weather forecast: %w", err)
	}

	result := &models.ForecastResult{
		GeneratedAt:      time.Now().UTC(),
		Request:          req,
		Location:         location,
		LocationFallback: locationFallback,
		Days:             s.engine.InferDays(ctx, req, weather),
		MarketNotes:      notes,
	}
	result.ComputeTotals()

	metrics.ForecastRequests.WithLabelValues("ok").Inc()
	metrics.ForecastDuration.Observe(time.Since(start).Seconds())

	s.log.Info("Forecast completed", map[string]interface{}{
		"fuel_type":         req.FuelType,
		"days":              len(result.Days),
		"location_fallback": locationFallback,
		"used_fallback":     result.UsedFallback(),
		"duration":          time.Since(start).String(),
	})

	return result, nil
}
