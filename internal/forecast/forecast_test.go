package forecast

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"plantcast/internal/config"
	"plantcast/internal/fetchers"
	"plantcast/internal/inference"
	"plantcast/internal/modelstore"
	"plantcast/internal/models"
	"plantcast/internal/storage"
)

const testIPInfoBody = `{"city": "Chennai", "country": "IN", "loc": "13.0895,80.2739"}`

// Day one matches the reference coal scenario: 30C, 50% humidity, 1010 hPa.
const testMeteoBody = `{
	"daily": {
		"time": ["2025-08-25", "2025-08-26", "2025-08-27"],
		"temperature_2m_max": [34.0, 36.0, 32.0],
		"temperature_2m_min": [26.0, 28.0, 24.0],
		"relative_humidity_2m_max": [60.0, 70.0, 65.0],
		"relative_humidity_2m_min": [40.0, 50.0, 35.0],
		"pressure_msl_mean": [1010.0, 1008.0, 1012.0]
	}
}`

const testFeedBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Today in Energy</title>
<item><title>Gas prices fell</title><link>https://example.com/1</link><pubDate>Mon, 25 Aug 2025 08:00:00 GMT</pubDate></item>
</channel></rss>`

type testServers struct {
	ipinfo  *httptest.Server
	weather *httptest.Server
	news    *httptest.Server
}

func newTestServers(t *testing.T) *testServers {
	t.Helper()

	servers := &testServers{
		ipinfo: httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(testIPInfoBody))
		})),
		weather: httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(testMeteoBody))
		})),
		news: httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(testFeedBody))
		})),
	}
	t.Cleanup(func() {
		servers.ipinfo.Close()
		servers.weather.Close()
		servers.news.Close()
	})
	return servers
}

func newTestService(t *testing.T, servers *testServers) *Service {
	t.Helper()

	client, err := storage.NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{
		ForecastDays:   7,
		IPInfoURL:      servers.ipinfo.URL,
		OpenMeteoURL:   servers.weather.URL,
		FuelNewsRSSURL: servers.news.URL,
	}

	engine := inference.NewEngine(modelstore.New(client))
	return New(cfg, fetchers.NewDataFetcher(), engine)
}

func coalRequest() models.ForecastRequest {
	return models.ForecastRequest{
		FuelType:        "coal",
		MaxCapacityMW:   150,
		RunHours:        20,
		FuelUsedCurrent: 9000,
		Days:            7,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestForecast(t *testing.T) {
	servers := newTestServers(t)
	service := newTestService(t, servers)

	result, err := service.Forecast(context.Background(), coalRequest())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if len(result.Days) != 3 {
		t.Fatalf("Expected 3 forecast days, got %d", len(result.Days))
	}
	if result.LocationFallback {
		t.Error("Expected resolved location, not fallback")
	}
	if result.Location.Latitude != 13.0895 || result.Location.Longitude != 80.2739 {
		t.Errorf("Location = %+v, want 13.0895, 80.2739", result.Location)
	}
	if result.Request.FuelType != "coal" {
		t.Errorf("Request echo = %+v, want the submitted request", result.Request)
	}
	if len(result.MarketNotes) != 1 {
		t.Errorf("Expected 1 market note, got %d", len(result.MarketNotes))
	}
	if time.Since(result.GeneratedAt) > time.Minute {
		t.Errorf("GeneratedAt too old: %v", result.GeneratedAt)
	}

	// Day one runs the reference coal scenario
	day := result.Days[0]
	if day.Date != "2025-08-25" {
		t.Errorf("Day 0 date = %q, want 2025-08-25", day.Date)
	}
	if !almostEqual(day.RecommendedEfficiency, 0.37) {
		t.Errorf("Day 0 RecommendedEfficiency = %v, want 0.37", day.RecommendedEfficiency)
	}
	if !almostEqual(day.RecommendedGenerationMW, 55.77) {
		t.Errorf("Day 0 RecommendedGenerationMW = %v, want 55.77", day.RecommendedGenerationMW)
	}
	if !almostEqual(day.FuelSaved, 8609.57) {
		t.Errorf("Day 0 FuelSaved = %v, want 8609.57", day.FuelSaved)
	}
	if !almostEqual(day.CostSaved, 51657453.43) {
		t.Errorf("Day 0 CostSaved = %v, want 51657453.43", day.CostSaved)
	}

	// No model trained in this store, so every day is tagged fallback
	if !result.UsedFallback() {
		t.Error("Expected fallback tagging with no trained model")
	}

	// Totals must equal the sums of the per-day figures
	var fuel, cost, co2 float64
	for _, d := range result.Days {
		fuel += d.FuelSaved
		cost += d.CostSaved
		co2 += d.CO2SavedTonnes
	}
	if !almostEqual(result.Totals.FuelSaved, fuel) {
		t.Errorf("Totals.FuelSaved = %v, want %v", result.Totals.FuelSaved, fuel)
	}
	if !almostEqual(result.Totals.CostSaved, cost) {
		t.Errorf("Totals.CostSaved = %v, want %v", result.Totals.CostSaved, cost)
	}
	if !almostEqual(result.Totals.CO2SavedTonnes, co2) {
		t.Errorf("Totals.CO2SavedTonnes = %v, want %v", result.Totals.CO2SavedTonnes, co2)
	}
}

func TestForecastLocationFallback(t *testing.T) {
	servers := newTestServers(t)
	servers.ipinfo = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer servers.ipinfo.Close()

	var gotLatitude string
	servers.weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLatitude = r.URL.Query().Get("latitude")
		w.Write([]byte(testMeteoBody))
	}))
	defer servers.weather.Close()

	service := newTestService(t, servers)

	result, err := service.Forecast(context.Background(), coalRequest())
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if !result.LocationFallback {
		t.Error("Expected LocationFallback to be tagged")
	}
	if result.Location.City != "Chennai" {
		t.Errorf("Fallback city = %q, want Chennai", result.Location.City)
	}
	if gotLatitude != "13.0895" {
		t.Errorf("Weather queried with latitude %q, want fallback 13.0895", gotLatitude)
	}
}

func TestForecastWeatherFailureFatal(t *testing.T) {
	servers := newTestServers(t)
	servers.weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer servers.weather.Close()

	service := newTestService(t, servers)

	_, err := service.Forecast(context.Background(), coalRequest())
	if err == nil {
		t.Fatal("Expected error when weather supplier is unreachable, got nil")
	}
	if !strings.Contains(err.Error(), "weather") {
		t.Errorf("Expected weather failure in error, got: %v", err)
	}
}

func TestForecastNewsFailureTolerated(t *testing.T) {
	servers := newTestServers(t)
	servers.news = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed unavailable", http.StatusInternalServerError)
	}))
	defer servers.news.Close()

	service := newTestService(t, servers)

	result, err := service.Forecast(context.Background(), coalRequest())
	if err != nil {
		t.Fatalf("Forecast should tolerate news failure, got: %v", err)
	}

	if len(result.MarketNotes) != 0 {
		t.Errorf("Expected no market notes, got %d", len(result.MarketNotes))
	}
	if len(result.Days) != 3 {
		t.Errorf("Expected 3 forecast days, got %d", len(result.Days))
	}
}

func TestForecastDefaultHorizon(t *testing.T) {
	servers := newTestServers(t)
	service := newTestService(t, servers)
	service.cfg.ForecastDays = 2

	req := coalRequest()
	req.Days = 0

	result, err := service.Forecast(context.Background(), req)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if len(result.Days) != 2 {
		t.Errorf("Expected configured default of 2 days, got %d", len(result.Days))
	}
}
