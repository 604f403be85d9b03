package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"plantcast/internal/charts"
	"plantcast/internal/logger"
	"plantcast/internal/models"
	"plantcast/internal/storage"
)

// GeneratedFiles holds every artifact of one report run, keyed the way the
// files are laid out under the report folder in storage.
type GeneratedFiles struct {
	FolderPath      string
	HTMLContent     string
	MarkdownContent string
	JSONFiles       map[string][]byte
	AssetFiles      map[string][]byte
}

// FileGenerator renders a forecast result into report artifacts: the JSON
// payload, markdown body, chart images, stylesheet, and the final HTML page.
type FileGenerator struct {
	markdownGen *Generator
	htmlBuilder *HTMLBuilder
	chartHTML   *ChartHTMLBuilder
	log         *logger.Logger
}

// NewFileGenerator creates a file generator
func NewFileGenerator() *FileGenerator {
	return &FileGenerator{
		markdownGen: NewGenerator(),
		htmlBuilder: NewHTMLBuilder(),
		chartHTML:   NewChartHTMLBuilder(),
		log:         logger.GetGlobalLogger().WithComponent("file_generator"),
	}
}

// GenerateAllFiles renders every artifact for a forecast result. Chart
// rendering failures degrade the report to fewer images; only JSON encoding
// and HTML assembly are fatal.
func (fg *FileGenerator) GenerateAllFiles(result *models.ForecastResult) (*GeneratedFiles, error) {
	if result == nil {
		return nil, fmt.Errorf("forecast result is nil")
	}

	files := &GeneratedFiles{
		FolderPath: storage.GenerateReportFolderPath(result.GeneratedAt),
		JSONFiles:  make(map[string][]byte),
		AssetFiles: make(map[string][]byte),
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal forecast result: %w", err)
	}
	files.JSONFiles["forecast_result.json"] = resultJSON

	files.MarkdownContent = fg.markdownGen.BuildMarkdown(result)
	files.AssetFiles["styles.css"] = []byte(reportCSS)

	chartGen, chartNames := fg.renderChartImages(result, files)

	chartData := fg.htmlBuilder.GenerateChartData(result, chartGen)
	staticChartsHTML := fg.chartHTML.BuildChartsHTML(chartNames, files.FolderPath)

	html, err := fg.htmlBuilder.BuildCompleteHTML(result, files.MarkdownContent, chartData, staticChartsHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to build report HTML: %w", err)
	}
	files.HTMLContent = html

	fg.log.Info("Report files generated", map[string]interface{}{
		"folder": files.FolderPath,
		"charts": len(chartNames),
	})
	return files, nil
}

// renderChartImages renders the static charts into a scratch directory and
// carries them on as in-memory assets. Failures are logged and skipped.
func (fg *FileGenerator) renderChartImages(result *models.ForecastResult, files *GeneratedFiles) (*charts.ChartGenerator, []string) {
	tempDir, err := os.MkdirTemp("", "plantcast_charts_")
	if err != nil {
		fg.log.Warn("Failed to create chart scratch dir, skipping chart images", map[string]interface{}{
			"error": err.Error(),
		})
		return charts.NewChartGenerator(""), nil
	}
	defer os.RemoveAll(tempDir)

	chartGen := charts.NewChartGenerator(tempDir)
	chartPaths, err := chartGen.GenerateCharts(result)
	if err != nil {
		fg.log.Warn("Chart image generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return chartGen, nil
	}

	var chartNames []string
	for _, path := range chartPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			fg.log.Warn("Failed to read rendered chart", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		name := filepath.Base(path)
		files.AssetFiles[name] = data
		chartNames = append(chartNames, name)
	}
	return chartGen, chartNames
}
