package charts

import (
	"plantcast/internal/logger"
	"plantcast/internal/models"
)

// ChartGenerator handles creation of static chart images and embeddable
// chart snippets for forecast reports.
type ChartGenerator struct {
	outputDir string
}

// NewChartGenerator creates a new chart generator that writes PNG files
// into outputDir.
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
	}
}

// GenerateCharts creates all static chart images for a forecast report and
// returns the paths of the files it managed to render. A chart that fails to
// render is logged and skipped so one bad chart never sinks the report.
func (cg *ChartGenerator) GenerateCharts(result *models.ForecastResult) ([]string, error) {
	if result == nil || len(result.Days) == 0 {
		return nil, nil
	}

	var chartFiles []string

	if savingsChart, err := cg.generateSavingsBarChart(result); err == nil {
		chartFiles = append(chartFiles, savingsChart)
	} else {
		logger.Warn("Failed to generate savings bar chart", map[string]interface{}{"error": err.Error()})
	}

	if trendChart, err := cg.generateGenerationTrendChart(result); err == nil {
		chartFiles = append(chartFiles, trendChart)
	} else {
		logger.Warn("Failed to generate generation trend chart", map[string]interface{}{"error": err.Error()})
	}

	return chartFiles, nil
}

// GenerateEChartsSnippets builds the interactive chart fragments embedded in
// the HTML report: the efficiency gauge and the savings timeline. A nil or
// empty result yields no snippets rather than an error.
func (cg *ChartGenerator) GenerateEChartsSnippets(result *models.ForecastResult) ([]ChartSnippet, error) {
	if result == nil {
		return []ChartSnippet{}, nil
	}

	var snippets []ChartSnippet

	gauge, err := cg.generateEfficiencyGaugeSnippet(result)
	if err != nil {
		logger.Warn("Failed to generate efficiency gauge snippet", map[string]interface{}{"error": err.Error()})
	} else {
		snippets = append(snippets, gauge)
	}

	timeline, err := cg.generateSavingsTimelineSnippet(result)
	if err != nil {
		logger.Warn("Failed to generate savings timeline snippet", map[string]interface{}{"error": err.Error()})
	} else {
		snippets = append(snippets, timeline)
	}

	return snippets, nil
}
