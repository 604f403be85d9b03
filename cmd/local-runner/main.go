// Command local-runner exercises the full forecast pipeline offline: it
// seeds synthetic samples, trains the per-fuel models, runs a forecast for
// one operating point, and publishes the report under the local data
// directory. With MOCKUP_MODE=true no network access is needed at all.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"plantcast/internal/config"
	"plantcast/internal/dataset"
	"plantcast/internal/fetchers"
	"plantcast/internal/forecast"
	"plantcast/internal/generator"
	"plantcast/internal/inference"
	"plantcast/internal/llm"
	"plantcast/internal/logger"
	"plantcast/internal/mocks"
	"plantcast/internal/models"
	"plantcast/internal/modelstore"
	"plantcast/internal/reports"
	"plantcast/internal/storage"
	"plantcast/internal/trainer"
)

func main() {
	fuelType := flag.String("fuel", "coal", "fuel type: coal, oil or natural_gas")
	capacity := flag.Float64("cap", 150, "rated plant capacity in MW")
	runHours := flag.Float64("hours", 20, "daily runtime in hours")
	fuelUsed := flag.Float64("used", 9000, "current daily fuel use in fuel units")
	days := flag.Int("days", 0, "forecast horizon in days (0 = FORECAST_DAYS)")
	samples := flag.Int("samples", 0, "synthetic samples to generate (0 = TRAIN_SAMPLE_COUNT)")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	log := logger.GetGlobalLogger().WithComponent("local-runner")
	start := time.Now()

	storageClient, err := storage.NewStorageClient(ctx, storage.DeploymentLocal, cfg)
	if err != nil {
		log.Fatal("Failed to initialize local storage", err)
	}
	defer storageClient.Close()

	var mockService *mocks.MockService
	if cfg.MockupMode {
		mockService = mocks.NewMockService()
		defer mockService.Close()
		cfg.IPInfoURL = mockService.IPInfoURL()
		cfg.OpenMeteoURL = mockService.OpenMeteoURL()
		cfg.FuelNewsRSSURL = mockService.FuelNewsURL()
		log.Info("Mockup mode enabled, using embedded mock suppliers")
	}

	dataDir := cfg.LocalDataDir
	if dataDir == "" {
		dataDir = "data"
	}
	store, err := dataset.NewCSVStore(filepath.Join(dataDir, dataset.StoreFileName))
	if err != nil {
		log.Fatal("Failed to open sample store", err)
	}

	// Stage 1: synthetic samples.
	sampleCount := *samples
	if sampleCount <= 0 {
		sampleCount = cfg.TrainSampleCount
	}
	gen := generator.New(cfg.GeneratorSeed)
	generated := gen.Generate(sampleCount)
	if err := store.Append(generated); err != nil {
		log.Fatal("Failed to append samples", err)
	}
	log.Info("Samples generated", map[string]interface{}{"count": len(generated)})

	// Stage 2: per-fuel training.
	modelStore := modelstore.New(storageClient)
	trainReports, err := trainer.New(store, modelStore).Train(ctx)
	if err != nil {
		log.Fatal("Training failed", err)
	}
	for _, rep := range trainReports {
		if rep.Skipped {
			log.Warn("Model skipped", map[string]interface{}{"fuel_type": rep.FuelType, "reason": rep.Reason})
			continue
		}
		log.Info("Model trained", map[string]interface{}{
			"fuel_type": rep.FuelType,
			"samples":   rep.Samples,
			"r2":        rep.R2,
			"mae_mw":    rep.MAEMW,
		})
	}

	// Stage 3: forecast and report for the requested operating point.
	engine := inference.NewEngine(modelStore)
	forecasts := forecast.New(cfg, fetchers.NewDataFetcher(), engine)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	reportService := reports.NewReportService(forecasts, llmClient, mockService, storageClient, cfg.MockupMode)

	req := models.ForecastRequest{
		FuelType:        *fuelType,
		MaxCapacityMW:   *capacity,
		RunHours:        *runHours,
		FuelUsedCurrent: *fuelUsed,
		Days:            *days,
	}
	summary, err := reportService.GenerateReport(ctx, req)
	if err != nil {
		log.Fatal("Report generation failed", err)
	}

	files, err := storageClient.ListDir(ctx, summary.FolderPath, true)
	if err != nil {
		log.Warn("Could not list report files", map[string]interface{}{"error": err.Error()})
	}

	summaryJSON, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Printf("\nReport generated in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s\n\nFiles:\n", summaryJSON)
	for _, f := range files {
		fmt.Printf("  %s\n", filepath.Join(dataDir, f))
	}
	if abs, err := filepath.Abs(filepath.Join(dataDir, summary.FolderPath, "index.html")); err == nil {
		fmt.Printf("\nOpen in browser: file://%s\n", abs)
	}
}
