package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchLocationErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"loc": `))
			},
		},
		{
			name: "missing loc field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"city": "Chennai"}`))
			},
		},
		{
			name: "unparseable coordinates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"loc": "north,east"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			fetcher := NewDataFetcher()
			_, err := fetcher.FetchLocation(context.Background(), server.URL)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestFetchWeatherErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad request", http.StatusBadRequest)
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"daily": [`))
			},
		},
		{
			name: "empty daily data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"daily": {"time": []}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			fetcher := NewDataFetcher()
			_, err := fetcher.FetchWeather(context.Background(), server.URL, 13.0895, 80.2739, 7)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestFetchMarketNotesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer server.Close()

	fetcher := NewDataFetcher()
	_, err := fetcher.FetchMarketNotes(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for unparseable feed, got nil")
	}
}

func TestFetchLocationContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ipinfoBody))
	}))
	defer server.Close()

	fetcher := NewDataFetcher()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.FetchLocation(ctx, server.URL)
	if err == nil {
		t.Fatal("Expected error due to cancelled context, got nil")
	}
	if !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("Expected context cancellation error, got: %v", err)
	}
}
