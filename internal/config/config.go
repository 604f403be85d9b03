package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the generation forecast service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Forecast pipeline configuration
	ForecastDays     int    `env:"FORECAST_DAYS,default=7"`
	TrainSampleCount int    `env:"TRAIN_SAMPLE_COUNT,default=500"`
	GeneratorSeed    uint64 `env:"GENERATOR_SEED,default=0"`

	// OpenAI configuration (optional; advisory text is skipped without a key)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// GCP configuration (optional for local runs)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local run configuration
	LocalDataDir string `env:"LOCAL_DATA_DIR,default=./data"`
	MockupMode   bool   `env:"MOCKUP_MODE,default=false"`

	// Data source URLs
	IPInfoURL      string `env:"IPINFO_URL,default=https://ipinfo.io/json"`
	OpenMeteoURL   string `env:"OPEN_METEO_URL,default=https://api.open-meteo.com/v1/forecast"`
	FuelNewsRSSURL string `env:"FUEL_NEWS_RSS_URL,default=https://www.eia.gov/rss/todayinenergy.xml"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
