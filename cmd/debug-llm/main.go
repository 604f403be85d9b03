// Manual check of the live OpenAI advisory path: runs a mock-supplied
// forecast, requests a real advisory for it and prints the result.
// Requires OPENAI_API_KEY; everything else is served by embedded mocks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"plantcast/internal/config"
	"plantcast/internal/fetchers"
	"plantcast/internal/forecast"
	"plantcast/internal/inference"
	"plantcast/internal/llm"
	"plantcast/internal/mocks"
	"plantcast/internal/models"
	"plantcast/internal/modelstore"
	"plantcast/internal/storage"
)

func main() {
	_ = godotenv.Load()

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4.1"
	}

	ctx := context.Background()

	// Forecast inputs come from the embedded mocks so only the advisory
	// call leaves the machine.
	mockService := mocks.NewMockService()
	defer mockService.Close()

	cfg := &config.Config{
		ForecastDays:   3,
		IPInfoURL:      mockService.IPInfoURL(),
		OpenMeteoURL:   mockService.OpenMeteoURL(),
		FuelNewsRSSURL: mockService.FuelNewsURL(),
	}

	tmpDir, err := os.MkdirTemp("", "plantcast_debug_llm_")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)
	storageClient, err := storage.NewLocalClient(tmpDir)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	engine := inference.NewEngine(modelstore.New(storageClient))
	forecasts := forecast.New(cfg, fetchers.NewDataFetcher(), engine)

	result, err := forecasts.Forecast(ctx, models.ForecastRequest{
		FuelType:        "coal",
		MaxCapacityMW:   150,
		RunHours:        20,
		FuelUsedCurrent: 9000,
		Days:            3,
	})
	if err != nil {
		log.Fatalf("Forecast failed: %v", err)
	}
	log.Printf("Forecast produced %d days, fallback=%v", len(result.Days), result.UsedFallback())

	llmClient := llm.NewOpenAIClient(openaiKey, model)
	advisory, err := llmClient.GenerateAdvisory(ctx, result)
	if err != nil {
		log.Fatalf("Advisory generation failed: %v", err)
	}

	log.Printf("Advisory generated (%d characters)", len(advisory))
	fmt.Println("\n--- advisory ---")
	fmt.Println(advisory)

	if err := os.WriteFile("debug_advisory.md", []byte(advisory), 0644); err != nil {
		log.Printf("Warning: could not save advisory: %v", err)
	} else {
		log.Println("Saved to debug_advisory.md")
	}
}
