package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"plantcast/internal/charts"
	"plantcast/internal/logger"
	"plantcast/internal/models"
)

// TemplateData carries everything the report page template renders.
type TemplateData struct {
	Title       string
	Date        string
	GeneratedAt string
	FuelType    string

	RecommendedMW string
	Efficiency    string
	CostSaved     string
	CO2Saved      string
	HorizonDays   int

	Content template.HTML

	EfficiencyGauge template.HTML
	SavingsTimeline template.HTML
	StaticCharts    template.HTML
}

// ChartTemplateData holds the interactive chart fragments keyed by their
// template slot.
type ChartTemplateData struct {
	EfficiencyGauge template.HTML
	SavingsTimeline template.HTML
}

// HTMLBuilder converts report markdown into HTML and assembles the final
// report page from the embedded template.
type HTMLBuilder struct {
	markdown goldmark.Markdown
	log      *logger.Logger
}

// NewHTMLBuilder creates an HTML builder with GFM table support, since the
// report body leans on markdown tables.
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &HTMLBuilder{
		markdown: md,
		log:      logger.GetGlobalLogger().WithComponent("html_builder"),
	}
}

// ConvertMarkdownToHTML converts report markdown into an HTML fragment.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// GenerateChartData renders the interactive chart snippets and keys them by
// template slot. A failed snippet leaves its slot empty rather than failing
// the report.
func (h *HTMLBuilder) GenerateChartData(result *models.ForecastResult, chartGen *charts.ChartGenerator) *ChartTemplateData {
	data := &ChartTemplateData{}

	snippets, err := chartGen.GenerateEChartsSnippets(result)
	if err != nil {
		h.log.Warn("Interactive chart generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return data
	}

	for _, snippet := range snippets {
		// The page template carries one echarts CDN script tag, so only
		// the div and init script are embedded per chart.
		fragment := template.HTML(snippet.Div + "\n" + snippet.Script)
		switch snippet.ID {
		case "chart-efficiency-gauge":
			data.EfficiencyGauge = fragment
		case "chart-savings-timeline":
			data.SavingsTimeline = fragment
		default:
			h.log.Warn("Unknown chart snippet", map[string]interface{}{
				"id": snippet.ID,
			})
		}
	}
	return data
}

// BuildCompleteHTML converts the markdown body and renders the full report
// page: header, summary cards, body content, interactive charts, and the
// static chart grid.
func (h *HTMLBuilder) BuildCompleteHTML(result *models.ForecastResult, markdownContent string, chartData *ChartTemplateData, staticChartsHTML string) (string, error) {
	content, err := h.ConvertMarkdownToHTML(markdownContent)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("report").Parse(reportTemplateHTML)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	data := buildTemplateData(result, content, chartData, staticChartsHTML)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

func buildTemplateData(result *models.ForecastResult, contentHTML string, chartData *ChartTemplateData, staticChartsHTML string) *TemplateData {
	data := &TemplateData{
		Title:        fmt.Sprintf("%s Plant Generation Forecast", fuelDisplayName(result.Request.FuelType)),
		Date:         result.GeneratedAt.UTC().Format("2006-01-02"),
		GeneratedAt:  result.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		FuelType:     fuelDisplayName(result.Request.FuelType),
		HorizonDays:  len(result.Days),
		Content:      template.HTML(contentHTML),
		StaticCharts: template.HTML(staticChartsHTML),
	}

	if len(result.Days) > 0 {
		first := result.Days[0]
		data.RecommendedMW = fmt.Sprintf("%.1f MW", first.RecommendedGenerationMW)
		data.Efficiency = fmt.Sprintf("%.1f%%", first.RecommendedEfficiency*100)
	} else {
		data.RecommendedMW = "n/a"
		data.Efficiency = "n/a"
	}
	data.CostSaved = charts.FormatCompact(result.Totals.CostSaved)
	data.CO2Saved = charts.FormatCompact(result.Totals.CO2SavedTonnes)

	if chartData != nil {
		data.EfficiencyGauge = chartData.EfficiencyGauge
		data.SavingsTimeline = chartData.SavingsTimeline
	}
	return data
}
