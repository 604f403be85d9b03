package fetchers

import (
	"sort"

	"plantcast/internal/models"

	"github.com/mmcdole/gofeed"
)

// defaultPressureHPa substitutes for days where the weather supplier omits
// mean sea-level pressure.
const defaultPressureHPa = 1013

// maxMarketNotes caps how many feed headlines a report carries.
const maxMarketNotes = 5

// DataNormalizer reduces raw supplier payloads to the pipeline's input models
type DataNormalizer struct{}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// NormalizeWeather collapses Open-Meteo daily extremes into one reading per
// day: temperature and humidity as the mean of the daily max and min,
// pressure as the daily mean when reported. Days missing any temperature or
// humidity extreme are dropped; the result never exceeds the requested
// horizon.
func (n *DataNormalizer) NormalizeWeather(resp *models.OpenMeteoResponse, days int) []models.ForecastDay {
	if resp == nil || days <= 0 {
		return nil
	}

	daily := resp.Daily
	count := len(daily.Time)
	if count > days {
		count = days
	}

	forecast := make([]models.ForecastDay, 0, count)
	for i := 0; i < count; i++ {
		if i >= len(daily.Temperature2mMax) || i >= len(daily.Temperature2mMin) ||
			i >= len(daily.RelativeHumidity2mMax) || i >= len(daily.RelativeHumidity2mMin) {
			break
		}

		pressure := float64(defaultPressureHPa)
		if i < len(daily.PressureMslMean) {
			pressure = daily.PressureMslMean[i]
		}

		forecast = append(forecast, models.ForecastDay{
			Date:        daily.Time[i],
			TempC:       (daily.Temperature2mMax[i] + daily.Temperature2mMin[i]) / 2,
			HumidityPct: (daily.RelativeHumidity2mMax[i] + daily.RelativeHumidity2mMin[i]) / 2,
			PressureHPa: pressure,
		})
	}

	return forecast
}

// NormalizeMarketNotes maps feed items to market notes, newest first, capped
// at maxMarketNotes. Items without a title are skipped.
func (n *DataNormalizer) NormalizeMarketNotes(items []*gofeed.Item) []models.MarketNote {
	notes := make([]models.MarketNote, 0, maxMarketNotes)
	for _, item := range items {
		if item == nil || item.Title == "" {
			continue
		}

		note := models.MarketNote{
			Title: item.Title,
			Link:  item.Link,
		}
		if item.PublishedParsed != nil {
			note.Published = *item.PublishedParsed
		}
		notes = append(notes, note)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Published.After(notes[j].Published)
	})

	if len(notes) > maxMarketNotes {
		notes = notes[:maxMarketNotes]
	}

	return notes
}
