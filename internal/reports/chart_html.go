package reports

import (
	"fmt"
	"strings"
)

// chartTitles maps generated chart filenames to display titles. Unknown
// files fall back to a title derived from the filename.
var chartTitles = map[string]string{
	"savings_bar.png":      "Projected Cost Savings by Day",
	"generation_trend.png": "Recommended Generation vs Capacity",
}

// ChartHTMLBuilder renders the static chart images into an HTML grid served
// through the report file proxy.
type ChartHTMLBuilder struct{}

// NewChartHTMLBuilder creates a chart HTML builder
func NewChartHTMLBuilder() *ChartHTMLBuilder {
	return &ChartHTMLBuilder{}
}

// BuildChartsHTML builds an image grid for the chart files stored under
// folderPath. Image URLs go through the /files/ proxy so the grid works for
// both local and GCS backed reports. Returns an empty string when there are
// no charts so the template omits the section cleanly.
func (c *ChartHTMLBuilder) BuildChartsHTML(chartFiles []string, folderPath string) string {
	if len(chartFiles) == 0 {
		return ""
	}

	var html strings.Builder
	html.WriteString("<div class=\"charts-grid\">\n")
	for _, name := range chartFiles {
		url := "/files/" + name
		if folderPath != "" {
			url = "/files/" + folderPath + "/" + name
		}
		title := chartTitles[name]
		if title == "" {
			title = toTitleCase(strings.TrimSuffix(name, ".png"))
		}
		html.WriteString(fmt.Sprintf("<div class=\"chart-item\">\n<h3>%s</h3>\n<img src=\"%s\" alt=\"%s\" loading=\"lazy\">\n</div>\n", title, url, title))
	}
	html.WriteString("</div>\n")
	return html.String()
}

// toTitleCase converts a snake_case identifier into a display title,
// e.g. "natural_gas" into "Natural Gas".
func toTitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
