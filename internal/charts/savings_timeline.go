package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"plantcast/internal/models"
)

// The DOM id stays alphanumeric because go-echarts derives JS identifiers
// from it.
const savingsTimelineDOMID = "savingstimeline"

// generateSavingsTimelineSnippet builds an interactive line chart of daily
// and cumulative cost savings across the forecast horizon.
func (cg *ChartGenerator) generateSavingsTimelineSnippet(result *models.ForecastResult) (ChartSnippet, error) {
	if result == nil {
		return ChartSnippet{}, fmt.Errorf("result cannot be nil")
	}

	id := "chart-savings-timeline"

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:   types.ThemeWesteros,
			Width:   "100%",
			Height:  "360px",
			ChartID: savingsTimelineDOMID,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Savings Timeline",
			Subtitle: "Daily and cumulative cost savings",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Day",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Cost Saved",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	xAxis := make([]string, 0, len(result.Days))
	daily := make([]opts.LineData, 0, len(result.Days))
	cumulative := make([]opts.LineData, 0, len(result.Days))
	runningTotal := 0.0
	for _, d := range result.Days {
		xAxis = append(xAxis, shortDate(d.Date))
		runningTotal += d.CostSaved
		daily = append(daily, opts.LineData{Value: d.CostSaved})
		cumulative = append(cumulative, opts.LineData{Value: runningTotal})
	}

	line.SetXAxis(xAxis).
		AddSeries("Daily Cost Saved", daily).
		AddSeries("Cumulative Cost Saved", cumulative).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render savings timeline: %w", err)
	}

	// Render emits a standalone page; lift the chart container and its init
	// script out of the body so they embed in the report like the other
	// snippets.
	fragment := extractBodyFragment(buf.String())
	div, script := splitDivAndScript(fragment)

	completeHTML := fmt.Sprintf(`<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
<div class="chart-container">
	<h3>Savings Timeline</h3>
	%s
</div>`, fragment)

	return ChartSnippet{ID: id, Title: "Savings Timeline", Div: div, Script: script, HTML: completeHTML}, nil
}

// extractBodyFragment returns the content between <body> and </body>, or the
// whole input when no body tags are present.
func extractBodyFragment(page string) string {
	start := strings.Index(page, "<body>")
	end := strings.LastIndex(page, "</body>")
	if start == -1 || end == -1 || end <= start {
		return strings.TrimSpace(page)
	}
	return strings.TrimSpace(page[start+len("<body>") : end])
}

// splitDivAndScript separates an embeddable fragment into its root div and
// the first script block.
func splitDivAndScript(fragment string) (string, string) {
	scriptStart := strings.Index(fragment, "<script")
	if scriptStart == -1 {
		return strings.TrimSpace(fragment), ""
	}
	scriptEnd := strings.Index(fragment[scriptStart:], "</script>")
	if scriptEnd == -1 {
		return strings.TrimSpace(fragment[:scriptStart]), strings.TrimSpace(fragment[scriptStart:])
	}
	script := fragment[scriptStart : scriptStart+scriptEnd+len("</script>")]
	return strings.TrimSpace(fragment[:scriptStart]), strings.TrimSpace(script)
}
