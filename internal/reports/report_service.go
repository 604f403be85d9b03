package reports

import (
	"context"
	"fmt"
	"time"

	"plantcast/internal/forecast"
	"plantcast/internal/llm"
	"plantcast/internal/logger"
	"plantcast/internal/mocks"
	"plantcast/internal/models"
	"plantcast/internal/storage"
)

// ReportSummary is the service-level answer to a report request.
type ReportSummary struct {
	Status      string    `json:"status"`
	ReportURL   string    `json:"report_url"`
	FolderPath  string    `json:"folder_path"`
	GeneratedAt time.Time `json:"generated_at"`
	Duration    string    `json:"duration"`
	Fallback    bool      `json:"fallback,omitempty"`
}

// ReportService runs the full report pipeline: forecast, advisory, file
// generation, storage.
type ReportService struct {
	forecasts    *forecast.Service
	llmClient    *llm.OpenAIClient
	mockService  *mocks.MockService
	fileGen      *FileGenerator
	orchestrator *StorageOrchestrator
	mockupMode   bool
	log          *logger.Logger
}

// NewReportService wires the report pipeline. mockService may be nil when
// mockupMode is false; llmClient may be disabled, in which case reports are
// published without the advisory section.
func NewReportService(forecasts *forecast.Service, llmClient *llm.OpenAIClient, mockService *mocks.MockService, storageClient storage.StorageClient, mockupMode bool) *ReportService {
	return &ReportService{
		forecasts:    forecasts,
		llmClient:    llmClient,
		mockService:  mockService,
		fileGen:      NewFileGenerator(),
		orchestrator: NewStorageOrchestrator(storageClient),
		mockupMode:   mockupMode,
		log:          logger.GetGlobalLogger().WithComponent("report_service"),
	}
}

// GenerateReport runs a forecast for req and publishes the full report.
func (rs *ReportService) GenerateReport(ctx context.Context, req models.ForecastRequest) (*ReportSummary, error) {
	start := time.Now()
	rs.log.Info("Report generation started", map[string]interface{}{
		"fuel_type": req.FuelType,
		"days":      req.Days,
	})

	result, err := rs.forecasts.Forecast(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to run forecast: %w", err)
	}

	rs.attachAdvisory(ctx, result)

	files, err := rs.fileGen.GenerateAllFiles(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report files: %w", err)
	}

	if err := rs.orchestrator.StoreAllFiles(ctx, files); err != nil {
		return nil, fmt.Errorf("failed to store report files: %w", err)
	}

	summary := &ReportSummary{
		Status:      "success",
		ReportURL:   rs.orchestrator.ReportURL(files),
		FolderPath:  files.FolderPath,
		GeneratedAt: result.GeneratedAt,
		Duration:    time.Since(start).Round(time.Millisecond).String(),
		Fallback:    result.UsedFallback(),
	}
	rs.log.Info("Report generation finished", map[string]interface{}{
		"report_url": summary.ReportURL,
		"duration":   summary.Duration,
	})
	return summary, nil
}

// attachAdvisory fills result.Advisory. Mockup mode uses the canned text; a
// configured LLM client is consulted otherwise. Advisory failures leave the
// report without the section rather than failing the run.
func (rs *ReportService) attachAdvisory(ctx context.Context, result *models.ForecastResult) {
	if rs.mockupMode && rs.mockService != nil {
		result.Advisory = rs.mockService.Advisory()
		return
	}
	if !rs.llmClient.Enabled() {
		rs.log.Debug("Advisory skipped, no OpenAI key configured")
		return
	}
	advisory, err := rs.llmClient.GenerateAdvisory(ctx, result)
	if err != nil {
		rs.log.Warn("Advisory generation failed, publishing report without it", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	result.Advisory = advisory
}
