package reports

// Report page assets are embedded so the service binary stays self-contained
// in Cloud Run deployments; the stylesheet is also written next to each
// report as styles.css so stored pages render standalone.

const reportCSS = `body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    line-height: 1.6;
    color: #333;
    max-width: 1200px;
    margin: 0 auto;
    padding: 20px;
    background-color: #f8f9fa;
}
.header {
    background: linear-gradient(135deg, #134e5e 0%, #2e8b57 100%);
    color: white;
    padding: 30px;
    border-radius: 10px;
    margin-bottom: 30px;
    text-align: center;
}
.header h1 {
    margin: 0;
    font-size: 2.5em;
}
.header .timestamp {
    opacity: 0.9;
    margin-top: 10px;
}
.summary-cards {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
    gap: 20px;
    margin-bottom: 30px;
}
.card {
    background: white;
    padding: 20px;
    border-radius: 8px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
    border-left: 4px solid #2e8b57;
}
.card h3 {
    margin-top: 0;
    color: #2e8b57;
}
.metric {
    font-size: 1.5em;
    font-weight: bold;
    color: #333;
}
.content {
    background: white;
    padding: 30px;
    border-radius: 8px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
    margin-bottom: 30px;
}
.charts-section {
    background: white;
    padding: 30px;
    border-radius: 8px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
    margin-bottom: 30px;
}
.chart-container {
    margin-bottom: 40px;
}
.charts-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(480px, 1fr));
    gap: 30px;
}
.chart-item {
    text-align: center;
}
.chart-item img {
    max-width: 100%;
    height: auto;
    border: 1px solid #ddd;
    border-radius: 5px;
}
.footer {
    text-align: center;
    color: #666;
    font-size: 0.9em;
    margin-top: 30px;
}
h1, h2, h3 { color: #333; }
h2 { border-bottom: 2px solid #2e8b57; padding-bottom: 5px; }
code { background: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
pre { background: #f4f4f4; padding: 15px; border-radius: 5px; overflow-x: auto; }
blockquote { border-left: 4px solid #ffc107; margin: 0; padding-left: 20px; color: #666; }
table { border-collapse: collapse; width: 100%; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
th { background-color: #f8f9fa; font-weight: bold; }
`

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Date}}</title>
    <link rel="stylesheet" href="styles.css">
    <script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <div class="timestamp">Generated: {{.GeneratedAt}}</div>
    </div>

    <div class="summary-cards">
        <div class="card">
            <h3>Recommended Setpoint</h3>
            <div class="metric">{{.RecommendedMW}}</div>
            <div>{{.Efficiency}} target efficiency</div>
        </div>
        <div class="card">
            <h3>Projected Cost Savings</h3>
            <div class="metric">{{.CostSaved}}</div>
            <div>over {{.HorizonDays}} days</div>
        </div>
        <div class="card">
            <h3>CO2 Avoided</h3>
            <div class="metric">{{.CO2Saved}}</div>
            <div>tonnes over {{.HorizonDays}} days</div>
        </div>
        <div class="card">
            <h3>Fuel</h3>
            <div class="metric">{{.FuelType}}</div>
            <div>fired plant</div>
        </div>
    </div>

    <div class="content">
        {{.Content}}
    </div>

    <div class="charts-section">
        <h2>Forecast Visualization</h2>

        <div class="chart-container">
            {{.EfficiencyGauge}}
        </div>

        <div class="chart-container">
            {{.SavingsTimeline}}
        </div>

        {{.StaticCharts}}
    </div>

    <div class="footer">
        <p>Report generated by the Plantcast generation forecast service</p>
        <p>Savings estimates assume the recommended setpoint is held across each run window</p>
    </div>
</body>
</html>
`
