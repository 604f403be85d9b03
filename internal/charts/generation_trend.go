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

// generateGenerationTrendChart renders the recommended generation setpoint
// across the forecast horizon as a time series, with the plant's rated
// capacity drawn as a dashed ceiling line.
func (cg *ChartGenerator) generateGenerationTrendChart(result *models.ForecastResult) (string, error) {
	filename := filepath.Join(cg.outputDir, "generation_trend.png")

	var xValues []time.Time
	var yValues []float64
	for _, d := range result.Days {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, t)
		yValues = append(yValues, d.RecommendedGenerationMW)
	}
	if len(xValues) == 0 {
		return "", fmt.Errorf("no parseable forecast dates to chart")
	}

	capacity := result.Request.MaxCapacityMW

	// Color-coded dots per day based on how hard the plant is driven.
	var coloredSeries []chart.Series
	for i, mw := range yValues {
		color := cg.getLoadColor(mw, capacity)
		coloredSeries = append(coloredSeries, chart.TimeSeries{
			Name: fmt.Sprintf("%.1f MW", mw),
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 3,
				DotColor:    color,
				DotWidth:    6,
			},
			XValues: []time.Time{xValues[i]},
			YValues: []float64{mw},
		})
	}

	mainSeries := chart.TimeSeries{
		Name: "Recommended Generation",
		Style: chart.Style{
			StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: yValues,
	}

	yMax := capacity * 1.1
	if yMax <= 0 {
		yMax = maxFloat(yValues) * 1.2
	}
	if yMax <= 0 {
		yMax = 1
	}

	graph := chart.Chart{
		Title: "Recommended Generation Setpoint",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Forecast Day",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("Jan 02")
				}
				return ""
			},
			Ticks: cg.generateDateTicks(xValues),
		},
		YAxis: chart.YAxis{
			Name: "Generation (MW)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: yMax,
			},
		},
		Series: append([]chart.Series{mainSeries}, coloredSeries...),
	}

	// Rated capacity ceiling so the setpoint's headroom is visible.
	if capacity > 0 && len(xValues) > 1 {
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: fmt.Sprintf("Rated Capacity (%.0f MW)", capacity),
			Style: chart.Style{
				StrokeColor:     drawing.Color{R: 220, G: 53, B: 69, A: 200},
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []time.Time{xValues[0], xValues[len(xValues)-1]},
			YValues: []float64{capacity, capacity},
		})
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create generation trend chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render generation trend chart: %w", err)
	}

	return filename, nil
}

// generateDateTicks creates one X-axis tick per forecast day.
func (cg *ChartGenerator) generateDateTicks(xValues []time.Time) []chart.Tick {
	var ticks []chart.Tick
	for _, t := range xValues {
		ticks = append(ticks, chart.Tick{
			Value: chart.TimeToFloat64(t),
			Label: t.Format("Jan 02"),
		})
	}
	return ticks
}

// getLoadColor maps a setpoint's share of rated capacity to a dot color.
func (cg *ChartGenerator) getLoadColor(mw, capacity float64) drawing.Color {
	if capacity <= 0 {
		return drawing.Color{R: 108, G: 117, B: 125, A: 255} // Gray when capacity unknown
	}
	load := mw / capacity
	switch {
	case load >= 0.9:
		return drawing.Color{R: 220, G: 53, B: 69, A: 255} // Red near the ceiling
	case load >= 0.6:
		return drawing.Color{R: 40, G: 167, B: 69, A: 255} // Green in the efficient band
	case load >= 0.3:
		return drawing.Color{R: 255, G: 193, B: 7, A: 255} // Yellow for light load
	default:
		return drawing.Color{R: 253, G: 126, B: 20, A: 255} // Orange for deep turndown
	}
}

func maxFloat(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
