package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const ipinfoBody = `{
	"ip": "203.0.113.10",
	"city": "Chennai",
	"region": "Tamil Nadu",
	"country": "IN",
	"loc": "13.0895,80.2739",
	"timezone": "Asia/Kolkata"
}`

const openMeteoBody = `{
	"latitude": 13.0895,
	"longitude": 80.2739,
	"timezone": "Asia/Kolkata",
	"daily": {
		"time": ["2025-08-25", "2025-08-26", "2025-08-27"],
		"temperature_2m_max": [34.0, 35.0, 33.0],
		"temperature_2m_min": [26.0, 27.0, 25.0],
		"relative_humidity_2m_max": [80.0, 82.0, 78.0],
		"relative_humidity_2m_min": [40.0, 42.0, 38.0],
		"pressure_msl_mean": [1008.5, 1007.0, 1009.5]
	}
}`

const fuelNewsBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Today in Energy</title>
	<link>https://www.eia.gov/todayinenergy/</link>
	<item>
		<title>Natural gas prices fell in most regions</title>
		<link>https://www.eia.gov/todayinenergy/detail.php?id=1001</link>
		<pubDate>Mon, 25 Aug 2025 08:00:00 GMT</pubDate>
	</item>
	<item>
		<title>Coal stockpiles at power plants increased</title>
		<link>https://www.eia.gov/todayinenergy/detail.php?id=1000</link>
		<pubDate>Fri, 22 Aug 2025 08:00:00 GMT</pubDate>
	</item>
</channel>
</rss>`

func TestNewDataFetcher(t *testing.T) {
	fetcher := NewDataFetcher()

	if fetcher == nil {
		t.Fatal("Expected fetcher instance, got nil")
	}
	if fetcher.client == nil {
		t.Error("Expected resty client to be initialized")
	}
	if fetcher.parser == nil {
		t.Error("Expected feed parser to be initialized")
	}
	if fetcher.normalizer == nil {
		t.Error("Expected normalizer to be initialized")
	}
}

func TestFetchLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ipinfoBody))
	}))
	defer server.Close()

	fetcher := NewDataFetcher()
	loc, err := fetcher.FetchLocation(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchLocation failed: %v", err)
	}

	if loc.Latitude != 13.0895 {
		t.Errorf("Latitude = %v, want 13.0895", loc.Latitude)
	}
	if loc.Longitude != 80.2739 {
		t.Errorf("Longitude = %v, want 80.2739", loc.Longitude)
	}
	if loc.City != "Chennai" {
		t.Errorf("City = %q, want Chennai", loc.City)
	}
	if loc.Country != "IN" {
		t.Errorf("Country = %q, want IN", loc.Country)
	}
}

func TestFetchWeather(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"latitude":  q.Get("latitude"),
			"longitude": q.Get("longitude"),
			"daily":     q.Get("daily"),
			"timezone":  q.Get("timezone"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	fetcher := NewDataFetcher()
	forecast, err := fetcher.FetchWeather(context.Background(), server.URL, 13.0895, 80.2739, 7)
	if err != nil {
		t.Fatalf("FetchWeather failed: %v", err)
	}

	if gotQuery["latitude"] != "13.0895" {
		t.Errorf("latitude query = %q, want 13.0895", gotQuery["latitude"])
	}
	if gotQuery["longitude"] != "80.2739" {
		t.Errorf("longitude query = %q, want 80.2739", gotQuery["longitude"])
	}
	if gotQuery["timezone"] != "auto" {
		t.Errorf("timezone query = %q, want auto", gotQuery["timezone"])
	}
	wantDaily := "temperature_2m_max,temperature_2m_min,relative_humidity_2m_max,relative_humidity_2m_min,pressure_msl_mean"
	if gotQuery["daily"] != wantDaily {
		t.Errorf("daily query = %q, want %q", gotQuery["daily"], wantDaily)
	}

	if len(forecast) != 3 {
		t.Fatalf("Expected 3 forecast days, got %d", len(forecast))
	}

	first := forecast[0]
	if first.Date != "2025-08-25" {
		t.Errorf("Date = %q, want 2025-08-25", first.Date)
	}
	if first.TempC != 30 {
		t.Errorf("TempC = %v, want 30 (mean of 34 and 26)", first.TempC)
	}
	if first.HumidityPct != 60 {
		t.Errorf("HumidityPct = %v, want 60 (mean of 80 and 40)", first.HumidityPct)
	}
	if first.PressureHPa != 1008.5 {
		t.Errorf("PressureHPa = %v, want 1008.5", first.PressureHPa)
	}
}

func TestFetchWeatherHorizonCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	fetcher := NewDataFetcher()
	forecast, err := fetcher.FetchWeather(context.Background(), server.URL, 13.0895, 80.2739, 2)
	if err != nil {
		t.Fatalf("FetchWeather failed: %v", err)
	}

	if len(forecast) != 2 {
		t.Errorf("Expected forecast capped at 2 days, got %d", len(forecast))
	}
}

func TestFetchMarketNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(fuelNewsBody))
	}))
	defer server.Close()

	fetcher := NewDataFetcher()
	notes, err := fetcher.FetchMarketNotes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchMarketNotes failed: %v", err)
	}

	if len(notes) != 2 {
		t.Fatalf("Expected 2 market notes, got %d", len(notes))
	}

	if notes[0].Title != "Natural gas prices fell in most regions" {
		t.Errorf("First note title = %q, expected newest item first", notes[0].Title)
	}
	if notes[0].Link == "" {
		t.Error("Expected note link to be populated")
	}
	if notes[0].Published.IsZero() {
		t.Error("Expected note published time to be parsed")
	}
	if !notes[0].Published.After(notes[1].Published) {
		t.Error("Expected notes sorted newest first")
	}
}

func TestFetchWeatherAndNews(t *testing.T) {
	weatherServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openMeteoBody))
	}))
	defer weatherServer.Close()

	newsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(fuelNewsBody))
	}))
	defer newsServer.Close()

	fetcher := NewDataFetcher()
	forecast, notes, err := fetcher.FetchWeatherAndNews(context.Background(), weatherServer.URL, newsServer.URL, 13.0895, 80.2739, 7)
	if err != nil {
		t.Fatalf("FetchWeatherAndNews failed: %v", err)
	}

	if len(forecast) != 3 {
		t.Errorf("Expected 3 forecast days, got %d", len(forecast))
	}
	if len(notes) != 2 {
		t.Errorf("Expected 2 market notes, got %d", len(notes))
	}
}

func TestFetchWeatherAndNewsToleratesNewsFailure(t *testing.T) {
	weatherServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openMeteoBody))
	}))
	defer weatherServer.Close()

	newsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed unavailable", http.StatusInternalServerError)
	}))
	defer newsServer.Close()

	fetcher := NewDataFetcher()
	forecast, notes, err := fetcher.FetchWeatherAndNews(context.Background(), weatherServer.URL, newsServer.URL, 13.0895, 80.2739, 7)
	if err != nil {
		t.Fatalf("News failure should not fail the fetch, got: %v", err)
	}

	if len(forecast) != 3 {
		t.Errorf("Expected 3 forecast days despite news failure, got %d", len(forecast))
	}
	if len(notes) != 0 {
		t.Errorf("Expected no notes after news failure, got %d", len(notes))
	}
}

func TestFetchWeatherAndNewsFailsOnWeatherFailure(t *testing.T) {
	weatherServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer weatherServer.Close()

	newsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(fuelNewsBody))
	}))
	defer newsServer.Close()

	fetcher := NewDataFetcher()
	_, _, err := fetcher.FetchWeatherAndNews(context.Background(), weatherServer.URL, newsServer.URL, 13.0895, 80.2739, 7)
	if err == nil {
		t.Fatal("Expected error when weather fetch fails, got nil")
	}
}
