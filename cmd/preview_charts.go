// Chart and report rendering preview: builds a report from fabricated
// forecast data and writes every artifact into ./preview_output for visual
// inspection. No network, storage backend or trained models involved.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"plantcast/internal/models"
	"plantcast/internal/reports"
)

func main() {
	now := time.Now().UTC()
	result := &models.ForecastResult{
		GeneratedAt: now,
		Request: models.ForecastRequest{
			FuelType:        "coal",
			MaxCapacityMW:   150,
			RunHours:        20,
			FuelUsedCurrent: 9000,
			Days:            3,
		},
		Location: models.Location{
			Latitude:  13.0895,
			Longitude: 80.2739,
			City:      "Chennai",
			Country:   "IN",
		},
		Days: []models.DailyOutcome{
			{
				Date: now.Format("2006-01-02"), TempC: 30, HumidityPct: 50, PressureHPa: 1010,
				RecommendedEfficiency: 0.37, RecommendedGenerationMW: 55.77,
				FuelUsedRecommended: 390.42, FuelSaved: 8609.57, CostSaved: 51657453.43,
				CO2SavedTonnes: 20835.17, PredictedGenerationMW: 105,
				ModelSource: models.ModelSourceTrained,
			},
			{
				Date: now.Add(24 * time.Hour).Format("2006-01-02"), TempC: 31.5, HumidityPct: 55, PressureHPa: 1008,
				RecommendedEfficiency: 0.364, RecommendedGenerationMW: 54.6,
				FuelUsedRecommended: 398.8, FuelSaved: 8601.2, CostSaved: 51607200.12,
				CO2SavedTonnes: 20814.9, PredictedGenerationMW: 103.4,
				ModelSource: models.ModelSourceTrained,
			},
			{
				Date: now.Add(48 * time.Hour).Format("2006-01-02"), TempC: 29.2, HumidityPct: 62, PressureHPa: 1011,
				RecommendedEfficiency: 0.368, RecommendedGenerationMW: 55.2,
				FuelUsedRecommended: 394.4, FuelSaved: 8605.6, CostSaved: 51633600.55,
				CO2SavedTonnes: 20825.5, PredictedGenerationMW: 104.8,
				ModelSource: models.ModelSourceTrained,
			},
		},
		MarketNotes: []models.MarketNote{
			{Title: "Coal futures ease as monsoon demand softens", Link: "https://example.com/coal", Published: now.Add(-20 * time.Hour)},
			{Title: "Freight rates hold steady on thermal routes", Link: "https://example.com/freight", Published: now.Add(-40 * time.Hour)},
		},
		Advisory: "Hold the unit near 56 MW through the period; falling humidity on day three supports a slightly higher setpoint if demand requires it.",
	}
	result.ComputeTotals()

	files, err := reports.NewFileGenerator().GenerateAllFiles(result)
	if err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}

	outDir := "preview_output"
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("Failed to create preview directory: %v", err)
	}

	write := func(name string, data []byte) {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	write("index.html", []byte(files.HTMLContent))
	write("report.md", []byte(files.MarkdownContent))
	for name, data := range files.JSONFiles {
		write(name, data)
	}
	for name, data := range files.AssetFiles {
		write(name, data)
	}

	entries, _ := os.ReadDir(outDir)
	fmt.Println("Preview files:")
	for _, entry := range entries {
		if info, err := entry.Info(); err == nil {
			fmt.Printf("  %s (%d bytes)\n", entry.Name(), info.Size())
		}
	}
	if abs, err := filepath.Abs(filepath.Join(outDir, "index.html")); err == nil {
		fmt.Printf("\nOpen in browser: file://%s\n", abs)
	}
}
