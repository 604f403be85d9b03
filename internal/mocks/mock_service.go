package mocks

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"time"

	"plantcast/internal/models"
)

// MockService hosts canned upstream responses on local HTTP servers so the
// whole fetch pipeline (location, weather, market notes) can run without
// network access. Used in MOCKUP_MODE and by tests; the real fetcher talks to
// these servers exactly as it would to the live APIs.
type MockService struct {
	ipinfo  *httptest.Server
	weather *httptest.Server
	news    *httptest.Server
}

const mockIPInfoBody = `{
	"ip": "203.0.113.10",
	"city": "Chennai",
	"region": "Tamil Nadu",
	"country": "IN",
	"loc": "13.0895,80.2739",
	"timezone": "Asia/Kolkata"
}`

const mockAdvisory = `The forecast shows stable efficiency across the horizon with the ` +
	`largest savings on the cooler early days; afternoon temperatures above 30 C shave ` +
	`roughly a point off recoverable efficiency on the warmer days. Hold the recommended ` +
	`setpoint through the morning blocks and schedule any condenser maintenance for the ` +
	`hottest forecast day, when the output penalty of a partial outage is smallest.`

// NewMockService starts the mock upstream servers. Call Close when done.
func NewMockService() *MockService {
	m := &MockService{}

	m.ipinfo = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, mockIPInfoBody)
	}))

	m.weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockWeatherResponse())
	}))

	m.news = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, mockFuelNewsBody())
	}))

	return m
}

// IPInfoURL returns the mock location endpoint.
func (m *MockService) IPInfoURL() string { return m.ipinfo.URL }

// OpenMeteoURL returns the mock weather endpoint.
func (m *MockService) OpenMeteoURL() string { return m.weather.URL }

// FuelNewsURL returns the mock fuel market RSS endpoint.
func (m *MockService) FuelNewsURL() string { return m.news.URL }

// Advisory returns the canned operator advisory used instead of an LLM call.
func (m *MockService) Advisory() string { return mockAdvisory }

// Close shuts down all mock servers.
func (m *MockService) Close() {
	m.ipinfo.Close()
	m.weather.Close()
	m.news.Close()
}

// mockWeatherResponse builds a 16-day Chennai-like forecast starting today so
// mock reports always look current. Values follow a mild sinusoid around
// seasonal norms rather than random noise, keeping mock runs reproducible
// within a day.
func mockWeatherResponse() models.OpenMeteoResponse {
	resp := models.OpenMeteoResponse{
		Latitude:  13.0895,
		Longitude: 80.2739,
		Timezone:  "Asia/Kolkata",
	}

	start := time.Now()
	for i := 0; i < 16; i++ {
		day := start.AddDate(0, 0, i)
		swing := 2 * math.Sin(2*math.Pi*float64(i)/7)

		resp.Daily.Time = append(resp.Daily.Time, day.Format("2006-01-02"))
		resp.Daily.Temperature2mMax = append(resp.Daily.Temperature2mMax, round1(34+swing))
		resp.Daily.Temperature2mMin = append(resp.Daily.Temperature2mMin, round1(26+swing))
		resp.Daily.RelativeHumidity2mMax = append(resp.Daily.RelativeHumidity2mMax, round1(82-2*swing))
		resp.Daily.RelativeHumidity2mMin = append(resp.Daily.RelativeHumidity2mMin, round1(44-2*swing))
		resp.Daily.PressureMslMean = append(resp.Daily.PressureMslMean, round1(1008+swing/2))
	}
	return resp
}

// mockFuelNewsBody builds an RSS feed with publish dates relative to now.
func mockFuelNewsBody() string {
	now := time.Now().UTC()
	item := func(title, id string, age time.Duration) string {
		return fmt.Sprintf(`	<item>
		<title>%s</title>
		<link>https://www.eia.gov/todayinenergy/detail.php?id=%s</link>
		<pubDate>%s</pubDate>
	</item>
`, title, id, now.Add(-age).Format(time.RFC1123Z))
	}

	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Today in Energy</title>
	<link>https://www.eia.gov/todayinenergy/</link>
` +
		item("Natural gas prices fell in most regions last week", "64001", 6*time.Hour) +
		item("Coal stockpiles at power plants continued to increase", "64000", 30*time.Hour) +
		item("Summer electricity demand drove higher generator fuel consumption", "63999", 54*time.Hour) +
		`</channel>
</rss>`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
