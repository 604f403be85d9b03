package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"plantcast/internal/models"
)

func sampleResult() *models.ForecastResult {
	result := &models.ForecastResult{
		GeneratedAt: time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC),
		Request: models.ForecastRequest{
			FuelType:        "coal",
			MaxCapacityMW:   150,
			RunHours:        20,
			FuelUsedCurrent: 9000,
			Days:            2,
		},
		Location:         models.Location{Latitude: 13.0895, Longitude: 80.2739, City: "Chennai", Country: "IN"},
		LocationFallback: true,
		Days: []models.DailyOutcome{
			{Date: "2025-08-14", TempC: 30, HumidityPct: 50, PressureHPa: 1010, RecommendedEfficiency: 0.37, RecommendedGenerationMW: 55.77, FuelSaved: 8609.57, CostSaved: 51657453.43, CO2SavedTonnes: 20835.17, ModelSource: models.ModelSourceFallback},
			{Date: "2025-08-15", TempC: 28, HumidityPct: 60, PressureHPa: 1008, RecommendedEfficiency: 0.37, RecommendedGenerationMW: 56.1, FuelSaved: 8607.8, CostSaved: 51646800, CO2SavedTonnes: 20830.87, ModelSource: models.ModelSourceFallback},
		},
		MarketNotes: []models.MarketNote{
			{Title: "Coal stockpiles rise", Link: "https://example.com", Published: time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
		},
	}
	result.ComputeTotals()
	return result
}

func TestBuildPromptContainsForecast(t *testing.T) {
	prompt := buildPrompt(sampleResult())

	for _, want := range []string{
		"coal fired, rated 150 MW",
		"Chennai, IN",
		"[default location, auto-detection failed]",
		"2025-08-14",
		"2025-08-15",
		"capacity-factor fallback",
		"Coal stockpiles rise",
		"Horizon totals",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptOmitsOptionalSections(t *testing.T) {
	result := sampleResult()
	result.MarketNotes = nil
	result.Days[0].ModelSource = models.ModelSourceTrained
	result.Days[1].ModelSource = models.ModelSourceTrained

	prompt := buildPrompt(result)
	if strings.Contains(prompt, "market headlines") {
		t.Error("Prompt should not mention market headlines when there are none")
	}
	if strings.Contains(prompt, "capacity-factor fallback") {
		t.Error("Prompt should not mention the fallback when all days used a trained model")
	}
}

func TestDisabledClient(t *testing.T) {
	client := NewOpenAIClient("", "gpt-4.1")
	if client.Enabled() {
		t.Error("Client without API key should be disabled")
	}
	if _, err := client.GenerateAdvisory(context.Background(), sampleResult()); err == nil {
		t.Error("Expected error from disabled client")
	}

	var nilClient *OpenAIClient
	if nilClient.Enabled() {
		t.Error("Nil client should report disabled")
	}
}

func TestEnabledClientRejectsEmptyForecast(t *testing.T) {
	client := NewOpenAIClient("test-key", "gpt-4.1")
	if !client.Enabled() {
		t.Fatal("Client with API key should be enabled")
	}
	if _, err := client.GenerateAdvisory(context.Background(), &models.ForecastResult{}); err == nil {
		t.Error("Expected error for forecast with no days")
	}
}
