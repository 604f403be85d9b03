package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plantcast/internal/logger"
	"plantcast/internal/models"

	"github.com/sashabaranov/go-openai"
)

// systemPrompt frames the model as a plant operations advisor. Kept short on
// purpose: all the numbers the model needs are in the user prompt.
const systemPrompt = `You are a senior thermal power plant operations advisor. ` +
	`Given a multi-day generation setpoint forecast with projected fuel, cost and ` +
	`CO2 savings, write a short operator advisory (one or two paragraphs, plain ` +
	`prose, no markdown headers). Point out the days with the largest savings ` +
	`potential, any weather conditions that depress efficiency, and one concrete ` +
	`action the operator should take. Do not repeat the full table back.`

// OpenAIClient generates operator advisories from forecast results. A client
// constructed without an API key is disabled: GenerateAdvisory returns an
// error and callers omit the advisory section.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewOpenAIClient creates an advisory client. An empty apiKey yields a
// disabled client rather than an error so the report pipeline can treat the
// advisory as strictly optional.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	c := &OpenAIClient{
		model: model,
		log:   logger.GetGlobalLogger().WithComponent("llm"),
	}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// Enabled reports whether the client has credentials to call the API.
func (c *OpenAIClient) Enabled() bool {
	return c != nil && c.client != nil
}

// GenerateAdvisory asks the model for a short operator advisory based on the
// forecast numbers. Errors here are advisory-only: the caller logs and moves
// on without the section.
func (c *OpenAIClient) GenerateAdvisory(ctx context.Context, result *models.ForecastResult) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("OpenAI client not configured")
	}
	if result == nil || len(result.Days) == 0 {
		return "", fmt.Errorf("forecast result has no days to advise on")
	}

	c.log.Info("Generating operator advisory", map[string]interface{}{
		"fuel_type": result.Request.FuelType,
		"days":      len(result.Days),
		"model":     c.model,
	})

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildPrompt(result),
				},
			},
			MaxTokens:   1024,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	advisory := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Info("Generated operator advisory", map[string]interface{}{
		"characters": len(advisory),
	})
	return advisory, nil
}

// buildPrompt lays the forecast out as a compact table plus context lines.
func buildPrompt(result *models.ForecastResult) string {
	var b strings.Builder

	req := result.Request
	fmt.Fprintf(&b, "Plant: %s fired, rated %.0f MW, running %.0f h continuously, current fuel use %.2f units/day.\n",
		req.FuelType, req.MaxCapacityMW, req.RunHours, req.FuelUsedCurrent)
	fmt.Fprintf(&b, "Location: %s (%.4f, %.4f)", locationName(result.Location), result.Location.Latitude, result.Location.Longitude)
	if result.LocationFallback {
		b.WriteString(" [default location, auto-detection failed]")
	}
	b.WriteString("\n\n")

	b.WriteString("Forecast (per day):\n")
	b.WriteString("date | temp C | humidity % | pressure hPa | rec. efficiency | rec. generation MW | fuel saved | cost saved | CO2 saved t\n")
	for _, d := range result.Days {
		fmt.Fprintf(&b, "%s | %.1f | %.1f | %.1f | %.2f | %.2f | %.2f | %.2f | %.2f\n",
			d.Date, d.TempC, d.HumidityPct, d.PressureHPa,
			d.RecommendedEfficiency, d.RecommendedGenerationMW,
			d.FuelSaved, d.CostSaved, d.CO2SavedTonnes)
	}

	fmt.Fprintf(&b, "\nHorizon totals: fuel saved %.2f units, cost saved %.2f, CO2 saved %.2f tonnes.\n",
		result.Totals.FuelSaved, result.Totals.CostSaved, result.Totals.CO2SavedTonnes)
	if result.UsedFallback() {
		b.WriteString("Note: no trained regression model was available; predictions use the capacity-factor fallback.\n")
	}

	if len(result.MarketNotes) > 0 {
		b.WriteString("\nRecent fuel market headlines:\n")
		for _, n := range result.MarketNotes {
			fmt.Fprintf(&b, "- %s (%s)\n", n.Title, n.Published.Format("2006-01-02"))
		}
	}

	return b.String()
}

func locationName(loc models.Location) string {
	switch {
	case loc.City != "" && loc.Country != "":
		return loc.City + ", " + loc.Country
	case loc.City != "":
		return loc.City
	default:
		return "unknown"
	}
}
