package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"plantcast/internal/models"
)

// generateSavingsBarChart renders projected cost savings per forecast day as
// a bar chart with one bar per day.
func (cg *ChartGenerator) generateSavingsBarChart(result *models.ForecastResult) (string, error) {
	filename := filepath.Join(cg.outputDir, "savings_bar.png")

	days := result.Days
	if len(days) == 0 {
		return "", fmt.Errorf("no forecast days to chart")
	}

	maxSaved := 0.0
	for _, d := range days {
		if d.CostSaved > maxSaved {
			maxSaved = d.CostSaved
		}
	}

	// Bars shrink as the horizon grows so a 16-day forecast still fits.
	barWidth := 520 / len(days)
	if barWidth > 120 {
		barWidth = 120
	}
	if barWidth < 30 {
		barWidth = 30
	}

	bars := make([]chart.Value, 0, len(days))
	for _, d := range days {
		bars = append(bars, chart.Value{
			Value: d.CostSaved,
			Label: fmt.Sprintf("%s\n%s", shortDate(d.Date), FormatCompact(d.CostSaved)),
			Style: chart.Style{
				FillColor:   cg.getSavingsColor(d.CostSaved, maxSaved),
				StrokeColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
				StrokeWidth: 2,
			},
		})
	}

	graph := chart.BarChart{
		Title: "Projected Cost Savings per Day",
		TitleStyle: chart.Style{
			FontSize:  18,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   80,
				Right:  50,
				Bottom: 80,
			},
			FillColor: drawing.Color{R: 248, G: 249, B: 250, A: 255},
		},
		Height:   400,
		Width:    700,
		BarWidth: barWidth,
		XAxis: chart.Style{
			FontSize:  11,
			FontColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
		},
		YAxis: chart.YAxis{
			Name: "Cost Saved",
			NameStyle: chart.Style{
				FontSize:  14,
				FontColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
			},
			Style: chart.Style{
				FontSize:  11,
				FontColor: drawing.Color{R: 108, G: 117, B: 125, A: 255},
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatCompact(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create savings chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render savings chart: %w", err)
	}

	return filename, nil
}

// getSavingsColor buckets a day's savings by its share of the best day.
func (cg *ChartGenerator) getSavingsColor(saved, maxSaved float64) drawing.Color {
	if saved <= 0 {
		return drawing.Color{R: 220, G: 53, B: 69, A: 255} // Red for no savings
	}
	share := 1.0
	if maxSaved > 0 {
		share = saved / maxSaved
	}
	switch {
	case share >= 0.75:
		return drawing.Color{R: 40, G: 167, B: 69, A: 255} // Green for top days
	case share >= 0.5:
		return drawing.Color{R: 255, G: 193, B: 7, A: 255} // Yellow for mid days
	default:
		return drawing.Color{R: 253, G: 126, B: 20, A: 255} // Orange for weak days
	}
}

// FormatCompact renders large currency-scale values as 1.2K / 3.4M / 5.6B.
// Reports reuse it for summary figures so page and chart labels agree.
func FormatCompact(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// shortDate turns 2025-08-14 into "Aug 14"; unparseable dates pass through.
func shortDate(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("Jan 02")
	}
	return date
}
