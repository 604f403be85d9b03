package charts

import (
	"encoding/json"
	"fmt"

	"plantcast/internal/models"
)

// generateEfficiencyGaugeSnippet builds an ECharts gauge showing the
// recommended thermal efficiency for the first forecast day.
func (cg *ChartGenerator) generateEfficiencyGaugeSnippet(result *models.ForecastResult) (ChartSnippet, error) {
	if result == nil {
		return ChartSnippet{}, fmt.Errorf("result cannot be nil")
	}

	id := "chart-efficiency-gauge"

	efficiencyPct := 0.0
	if len(result.Days) > 0 {
		efficiencyPct = result.Days[0].RecommendedEfficiency * 100
	}

	// Status text relative to the efficiency band thermal plants operate in
	var statusText string
	switch {
	case efficiencyPct <= 0:
		statusText = "No Data"
	case efficiencyPct < 25:
		statusText = "Very Low"
	case efficiencyPct < 35:
		statusText = "Low"
	case efficiencyPct < 45:
		statusText = "Moderate"
	case efficiencyPct < 52:
		statusText = "High"
	default:
		statusText = "Very High"
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{
			"formatter": "{a} <br/>{b} : {c}%",
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":        "Thermal Efficiency",
				"type":        "gauge",
				"min":         0,
				"max":         60,
				"splitNumber": 6,
				"radius":      "80%",
				"axisLine": map[string]interface{}{
					"lineStyle": map[string]interface{}{
						"width": 20,
						"color": [][]interface{}{
							{0.35, "#dc3545"}, // 0-21%: Red (Very Low/Low)
							{0.5, "#fd7e14"},  // 21-30%: Orange (Low)
							{0.7, "#ffc107"},  // 30-42%: Yellow (Moderate)
							{1.0, "#28a745"},  // 42-60%: Green (High)
						},
					},
				},
				"pointer": map[string]interface{}{
					"itemStyle": map[string]interface{}{
						"color": "auto",
					},
				},
				"axisTick": map[string]interface{}{
					"distance": -20,
					"length":   8,
					"lineStyle": map[string]interface{}{
						"color": "#fff",
						"width": 2,
					},
				},
				"splitLine": map[string]interface{}{
					"distance": -20,
					"length":   20,
					"lineStyle": map[string]interface{}{
						"color": "#fff",
						"width": 3,
					},
				},
				"axisLabel": map[string]interface{}{
					"color":    "inherit",
					"fontSize": 14,
					"distance": 35,
				},
				"detail": map[string]interface{}{
					"valueAnimation": true,
					"formatter":      fmt.Sprintf("%.1f%%\n%s", efficiencyPct, statusText),
					"color":          "inherit",
					"fontSize":       14,
					"fontWeight":     "bold",
					"offsetCenter":   []interface{}{0, "60%"},
				},
				"data": []interface{}{
					map[string]interface{}{
						"value": efficiencyPct,
						"name":  "Efficiency",
					},
				},
			},
		},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:250px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
<div class="gauge-item">
	<h4>Recommended Thermal Efficiency</h4>
	%s
</div>
%s`, div, script)

	return ChartSnippet{ID: id, Title: "Efficiency Gauge", Div: div, Script: script, HTML: completeHTML}, nil
}
