package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"plantcast/internal/config"
	"plantcast/internal/dataset"
	"plantcast/internal/fetchers"
	"plantcast/internal/forecast"
	"plantcast/internal/generator"
	"plantcast/internal/inference"
	"plantcast/internal/llm"
	"plantcast/internal/logger"
	"plantcast/internal/mocks"
	"plantcast/internal/modelstore"
	"plantcast/internal/reports"
	"plantcast/internal/storage"
	"plantcast/internal/trainer"
)

// Server wires the full pipeline behind the HTTP surface: synthetic sample
// generation, training, forecasting, and report publishing.
type Server struct {
	Config         *config.Config
	DeploymentMode storage.DeploymentMode

	Storage     storage.StorageClient
	Samples     dataset.Store
	Generator   *generator.Generator
	Trainer     *trainer.Trainer
	Engine      *inference.Engine
	Fetcher     *fetchers.DataFetcher
	Forecasts   *forecast.Service
	Reports     *reports.ReportService
	LLMClient   *llm.OpenAIClient
	MockService *mocks.MockService

	// runMu serializes the mutating pipeline runs (generate, train,
	// report); concurrent callers get 409 instead of queueing.
	runMu sync.Mutex

	log *logger.Logger
}

// NewServer builds the full service around the configured storage backend.
// In mockup mode the upstream URLs are rewired to embedded mock suppliers
// before any fetcher sees them.
func NewServer(ctx context.Context, cfg *config.Config, deploymentMode storage.DeploymentMode) (*Server, error) {
	log := logger.GetGlobalLogger().WithComponent("server")

	storageClient, err := storage.NewStorageClient(ctx, deploymentMode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	dataDir := cfg.LocalDataDir
	if dataDir == "" {
		dataDir = "data"
	}
	samples, err := dataset.NewCSVStore(filepath.Join(dataDir, dataset.StoreFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open sample store: %w", err)
	}

	var mockService *mocks.MockService
	if cfg.MockupMode {
		mockService = mocks.NewMockService()
		cfg.IPInfoURL = mockService.IPInfoURL()
		cfg.OpenMeteoURL = mockService.OpenMeteoURL()
		cfg.FuelNewsRSSURL = mockService.FuelNewsURL()
		log.Info("Mockup mode enabled, using embedded mock suppliers", map[string]interface{}{
			"ipinfo":  cfg.IPInfoURL,
			"weather": cfg.OpenMeteoURL,
			"news":    cfg.FuelNewsRSSURL,
		})
	}

	modelStore := modelstore.New(storageClient)
	engine := inference.NewEngine(modelStore)
	fetcher := fetchers.NewDataFetcher()
	forecasts := forecast.New(cfg, fetcher, engine)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	log.Info("Server initialized", map[string]interface{}{
		"mode":         string(deploymentMode),
		"sample_store": filepath.Join(dataDir, dataset.StoreFileName),
		"llm_enabled":  llmClient.Enabled(),
	})

	return &Server{
		Config:         cfg,
		DeploymentMode: deploymentMode,
		Storage:        storageClient,
		Samples:        samples,
		Generator:      generator.New(cfg.GeneratorSeed),
		Trainer:        trainer.New(samples, modelStore),
		Engine:         engine,
		Fetcher:        fetcher,
		Forecasts:      forecasts,
		Reports:        reports.NewReportService(forecasts, llmClient, mockService, storageClient, cfg.MockupMode),
		LLMClient:      llmClient,
		MockService:    mockService,
		log:            log,
	}, nil
}

// SetupRoutes configures the HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/train", s.HandleTrain)
	mux.HandleFunc("/forecast", s.HandleForecast)
	mux.HandleFunc("/performance", s.HandlePerformance)
	mux.HandleFunc("/report", s.HandleReport)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close releases the server's resources.
func (s *Server) Close() error {
	if s.MockService != nil {
		s.MockService.Close()
	}
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
