package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"plantcast/internal/config"
	"plantcast/internal/logger"
	"plantcast/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// DataFetcher handles fetching data from all external suppliers
type DataFetcher struct {
	client     *resty.Client
	parser     *gofeed.Parser
	normalizer *DataNormalizer
}

// NewDataFetcher creates a new data fetcher instance
func NewDataFetcher() *DataFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("User-Agent", config.UserAgent())

	return &DataFetcher{
		client:     client,
		parser:     gofeed.NewParser(),
		normalizer: NewDataNormalizer(),
	}
}

// FetchLocation resolves the plant's coordinates from an IP geolocation
// endpoint. The supplier reports coordinates as a single "lat,lon" string.
func (f *DataFetcher) FetchLocation(ctx context.Context, url string) (models.Location, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)

	if err != nil {
		return models.Location{}, fmt.Errorf("failed to fetch location: %w", err)
	}

	if resp.StatusCode() != 200 {
		return models.Location{}, fmt.Errorf("location API returned status %d", resp.StatusCode())
	}

	var data models.IPInfoResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return models.Location{}, fmt.Errorf("failed to parse location response: %w", err)
	}

	parts := strings.Split(data.Loc, ",")
	if len(parts) != 2 {
		return models.Location{}, fmt.Errorf("unexpected location format %q", data.Loc)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	return models.Location{
		Latitude:  lat,
		Longitude: lon,
		City:      data.City,
		Country:   data.Country,
	}, nil
}

// FetchWeather fetches the daily forecast from Open-Meteo and reduces it to
// the per-day aggregates the pipeline consumes. At most days entries are
// returned; the supplier may provide fewer.
func (f *DataFetcher) FetchWeather(ctx context.Context, url string, lat, lon float64, days int) ([]models.ForecastDay, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"latitude":  strconv.FormatFloat(lat, 'f', -1, 64),
			"longitude": strconv.FormatFloat(lon, 'f', -1, 64),
			"daily":     "temperature_2m_max,temperature_2m_min,relative_humidity_2m_max,relative_humidity_2m_min,pressure_msl_mean",
			"timezone":  "auto",
		}).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather forecast: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode())
	}

	var data models.OpenMeteoResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}

	forecast := f.normalizer.NormalizeWeather(&data, days)
	if len(forecast) == 0 {
		return nil, fmt.Errorf("weather API returned no usable daily data")
	}

	return forecast, nil
}

// FetchMarketNotes fetches fuel-market headlines from an RSS feed. The notes
// only enrich reports, so callers may treat a failure here as non-fatal.
func (f *DataFetcher) FetchMarketNotes(ctx context.Context, url string) ([]models.MarketNote, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch fuel news feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fuel news feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fuel news feed: %w", err)
	}

	return f.normalizer.NormalizeMarketNotes(feed.Items), nil
}

// FetchWeatherAndNews fetches the weather forecast and fuel-market headlines
// concurrently. The forecast cannot run without weather, so a weather failure
// fails the call; a news failure is logged and tolerated.
func (f *DataFetcher) FetchWeatherAndNews(ctx context.Context, weatherURL, newsURL string, lat, lon float64, days int) ([]models.ForecastDay, []models.MarketNote, error) {
	logger.Debugf("Starting data fetch from weather and news suppliers...")

	weatherChan := make(chan []models.ForecastDay, 1)
	newsChan := make(chan []models.MarketNote, 1)
	errChan := make(chan error, 1)

	go func() {
		data, err := f.FetchWeather(ctx, weatherURL, lat, lon, days)
		if err != nil {
			errChan <- fmt.Errorf("weather fetch failed: %w", err)
			return
		}
		weatherChan <- data
	}()

	go func() {
		data, err := f.FetchMarketNotes(ctx, newsURL)
		if err != nil {
			logger.Warnf("Market notes fetch failed: %v", err)
			newsChan <- nil
			return
		}
		newsChan <- data
	}()

	var forecast []models.ForecastDay
	var notes []models.MarketNote
	var weatherErr error

	completed := 0
	for completed < 2 {
		select {
		case data := <-weatherChan:
			forecast = data
			completed++
		case data := <-newsChan:
			notes = data
			completed++
		case err := <-errChan:
			weatherErr = err
			completed++
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	if weatherErr != nil {
		return nil, nil, weatherErr
	}

	logger.Debugf("Fetched %d forecast days and %d market notes", len(forecast), len(notes))
	return forecast, notes, nil
}
