package reports

import (
	"fmt"
	"strings"

	"plantcast/internal/models"
	"plantcast/internal/physics"
)

// Generator builds the markdown body of a forecast report. The output is
// plain GitHub-flavored markdown; HTMLBuilder converts it into the final
// page. The same ForecastResult always yields the same markdown, so a report
// can be regenerated byte-for-byte from its stored forecast_result.json.
type Generator struct{}

// NewGenerator creates a markdown report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// BuildMarkdown renders the full markdown report for one forecast run.
func (g *Generator) BuildMarkdown(result *models.ForecastResult) string {
	var md strings.Builder

	g.writeHeader(&md, result)
	g.writeCurrentOperation(&md, result)
	g.writeDailyTable(&md, result)
	g.writeTotals(&md, result)
	g.writeMarketNotes(&md, result)
	g.writeAdvisory(&md, result)

	return md.String()
}

func (g *Generator) writeHeader(md *strings.Builder, result *models.ForecastResult) {
	md.WriteString(fmt.Sprintf("# %s Plant Generation Forecast\n\n", fuelDisplayName(result.Request.FuelType)))
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", result.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")))

	location := formatLocation(result.Location)
	if result.LocationFallback {
		location += " *(default location; plant geolocation was unavailable)*"
	}
	md.WriteString(fmt.Sprintf("**Plant location:** %s\n\n", location))
}

func (g *Generator) writeCurrentOperation(md *strings.Builder, result *models.ForecastResult) {
	req := result.Request

	md.WriteString("## Current Operation\n\n")
	md.WriteString("| Parameter | Value |\n")
	md.WriteString("|-----------|-------|\n")
	md.WriteString(fmt.Sprintf("| Fuel type | %s |\n", fuelDisplayName(req.FuelType)))
	md.WriteString(fmt.Sprintf("| Rated capacity | %.0f MW |\n", req.MaxCapacityMW))
	md.WriteString(fmt.Sprintf("| Daily runtime | %.0f h |\n", req.RunHours))
	md.WriteString(fmt.Sprintf("| Reported fuel use | %.1f %s/day |\n", req.FuelUsedCurrent, fuelUnit(req.FuelType)))
	md.WriteString(fmt.Sprintf("| Forecast horizon | %d days |\n\n", len(result.Days)))
}

func (g *Generator) writeDailyTable(md *strings.Builder, result *models.ForecastResult) {
	if len(result.Days) == 0 {
		return
	}
	unit := fuelUnit(result.Request.FuelType)

	md.WriteString("## Daily Recommendations\n\n")
	md.WriteString(fmt.Sprintf("| Date | Temp (°C) | Humidity (%%) | Pressure (hPa) | Efficiency | Setpoint (MW) | Fuel Saved (%s) | Cost Saved | CO2 Saved (t) |\n", unit))
	md.WriteString("|------|-----------|--------------|----------------|------------|---------------|-----------------|------------|---------------|\n")
	for _, d := range result.Days {
		md.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %.1f | %.1f%% | %.1f | %.2f | %.2f | %.2f |\n",
			d.Date,
			d.TempC,
			d.HumidityPct,
			d.PressureHPa,
			d.RecommendedEfficiency*100,
			d.RecommendedGenerationMW,
			d.FuelSaved,
			d.CostSaved,
			d.CO2SavedTonnes,
		))
	}
	md.WriteString("\n")
}

func (g *Generator) writeTotals(md *strings.Builder, result *models.ForecastResult) {
	md.WriteString("## Projected Savings\n\n")
	if len(result.Days) == 0 {
		md.WriteString("No forecast days were produced for this request.\n\n")
		return
	}

	md.WriteString(fmt.Sprintf("Totals over the %d-day horizon, relative to current operation:\n\n", len(result.Days)))
	md.WriteString(fmt.Sprintf("- **Fuel saved:** %.2f %s\n", result.Totals.FuelSaved, fuelUnit(result.Request.FuelType)))
	md.WriteString(fmt.Sprintf("- **Cost saved:** %.2f\n", result.Totals.CostSaved))
	md.WriteString(fmt.Sprintf("- **CO2 avoided:** %.2f tonnes\n\n", result.Totals.CO2SavedTonnes))

	if result.UsedFallback() {
		md.WriteString("> Generation estimates for this run came from the capacity-factor fallback. Train a model for this fuel type to improve accuracy.\n\n")
	}
}

func (g *Generator) writeMarketNotes(md *strings.Builder, result *models.ForecastResult) {
	if len(result.MarketNotes) == 0 {
		return
	}
	md.WriteString("## Fuel Market Notes\n\n")
	for _, note := range result.MarketNotes {
		md.WriteString(fmt.Sprintf("- [%s](%s) (%s)\n", note.Title, note.Link, note.Published.UTC().Format("Jan 02")))
	}
	md.WriteString("\n")
}

func (g *Generator) writeAdvisory(md *strings.Builder, result *models.ForecastResult) {
	if result.Advisory == "" {
		return
	}
	md.WriteString("## Operator Advisory\n\n")
	md.WriteString(result.Advisory)
	md.WriteString("\n")
}

// fuelDisplayName turns a fuel type identifier into a display name, e.g.
// "natural_gas" into "Natural Gas".
func fuelDisplayName(fuelType string) string {
	if fuelType == "" {
		return "Unknown"
	}
	return toTitleCase(fuelType)
}

// fuelUnit returns the reporting unit for a fuel type, or a generic label
// for fuels the physics profiles do not know.
func fuelUnit(fuelType string) string {
	profile, err := physics.ProfileFor(fuelType)
	if err != nil {
		return "units"
	}
	return profile.FuelUnit
}

func formatLocation(loc models.Location) string {
	name := ""
	switch {
	case loc.City != "" && loc.Country != "":
		name = fmt.Sprintf("%s, %s", loc.City, loc.Country)
	case loc.City != "":
		name = loc.City
	case loc.Country != "":
		name = loc.Country
	}
	coords := fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
	if name == "" {
		return coords
	}
	return fmt.Sprintf("%s (%s)", name, coords)
}
