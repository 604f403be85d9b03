package storage

import (
	"testing"
	"time"
)

func TestGenerateReportFolderPath(t *testing.T) {
	tests := []struct {
		name      string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "standard date and time",
			timestamp: time.Date(2025, 8, 25, 14, 30, 45, 0, time.UTC),
			expected:  "reports/2025/08/25/GenerationForecast-2025-08-25-14-30-45",
		},
		{
			name:      "new year date",
			timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected:  "reports/2025/01/01/GenerationForecast-2025-01-01-00-00-00",
		},
		{
			name:      "end of year date",
			timestamp: time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			expected:  "reports/2024/12/31/GenerationForecast-2024-12-31-23-59-59",
		},
		{
			name:      "leap year date",
			timestamp: time.Date(2024, 2, 29, 12, 15, 30, 0, time.UTC),
			expected:  "reports/2024/02/29/GenerationForecast-2024-02-29-12-15-30",
		},
		{
			name:      "single digit month and day",
			timestamp: time.Date(2025, 3, 5, 8, 7, 6, 0, time.UTC),
			expected:  "reports/2025/03/05/GenerationForecast-2025-03-05-08-07-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateReportFolderPath(tt.timestamp)
			if result != tt.expected {
				t.Errorf("GenerateReportFolderPath() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGenerateReportFolderPathUniqueness(t *testing.T) {
	// Different timestamps must generate different paths
	timestamp1 := time.Date(2025, 8, 25, 14, 30, 45, 0, time.UTC)
	timestamp2 := time.Date(2025, 8, 25, 14, 30, 46, 0, time.UTC)

	path1 := GenerateReportFolderPath(timestamp1)
	path2 := GenerateReportFolderPath(timestamp2)

	if path1 == path2 {
		t.Errorf("Different timestamps should generate different paths: %s == %s", path1, path2)
	}
}

func TestModelFilePath(t *testing.T) {
	tests := []struct {
		fuelType string
		expected string
	}{
		{"coal", "models/model_coal.json"},
		{"oil", "models/model_oil.json"},
		{"natural_gas", "models/model_natural_gas.json"},
	}

	for _, tt := range tests {
		t.Run(tt.fuelType, func(t *testing.T) {
			if got := ModelFilePath(tt.fuelType); got != tt.expected {
				t.Errorf("ModelFilePath(%q) = %v, want %v", tt.fuelType, got, tt.expected)
			}
		})
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{
			name:     "JSON file",
			filename: "model_coal.json",
			expected: "application/json",
		},
		{
			name:     "HTML file",
			filename: "index.html",
			expected: "text/html",
		},
		{
			name:     "CSS file",
			filename: "styles.css",
			expected: "text/css",
		},
		{
			name:     "Text file",
			filename: "readme.txt",
			expected: "text/plain",
		},
		{
			name:     "Markdown file",
			filename: "report.md",
			expected: "text/markdown",
		},
		{
			name:     "CSV file",
			filename: "plant_dataset.csv",
			expected: "text/csv",
		},
		{
			name:     "PNG image",
			filename: "savings_chart.png",
			expected: "image/png",
		},
		{
			name:     "JPEG image",
			filename: "photo.jpg",
			expected: "image/jpeg",
		},
		{
			name:     "JPEG image alternate extension",
			filename: "photo.jpeg",
			expected: "image/jpeg",
		},
		{
			name:     "GIF image",
			filename: "animation.gif",
			expected: "image/gif",
		},
		{
			name:     "unknown extension",
			filename: "archive.zip",
			expected: "application/octet-stream",
		},
		{
			name:     "no extension",
			filename: "LICENSE",
			expected: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetContentType(tt.filename); got != tt.expected {
				t.Errorf("GetContentType(%q) = %v, want %v", tt.filename, got, tt.expected)
			}
		})
	}
}
