package models

import "time"

// SampleTimeLayout is the timestamp format used in the sample store.
const SampleTimeLayout = "2006-01-02 15:04:05"

// OperatingSample is one labeled plant observation, either synthesized by the
// data generator or recorded from real operation. Samples are immutable once
// produced; the trainer consumes a subset of fields as features and label.
type OperatingSample struct {
	Timestamp               time.Time `json:"timestamp"`
	FuelType                string    `json:"fuel_type"`                 // coal/oil/natural_gas
	MaxCapacityMW           float64   `json:"max_capacity_mw"`           // rated plant capacity
	CurrentGenerationMW     float64   `json:"current_generation_mw"`     // training label
	RunHours                int       `json:"run_hours"`                 // continuous operating hours
	TempC                   float64   `json:"temp_C"`
	HumidityPct             float64   `json:"humidity_pct"`
	PressureHPa             float64   `json:"pressure_hPa"`              // mean sea-level pressure
	PredictedEfficiency     float64   `json:"predicted_efficiency"`
	RecommendedGenerationMW float64   `json:"recommended_generation_mw"`
	AdjustmentPct           float64   `json:"adjustment_pct"`            // (recommended-current)/capacity*100
	FuelPerKWh              float64   `json:"fuel_per_kwh"`
	FuelUnit                string    `json:"fuel_unit"`                 // ton/barrel/1000Nm3
	HeatRateKcalPerKWh      float64   `json:"heat_rate_kcal_per_kwh"`
	FuelUsedCurrent         float64   `json:"fuel_used_current"`
	FuelUsedRecommended     float64   `json:"fuel_used_recommended"`
	FuelSaved               float64   `json:"fuel_saved"`
	FuelCostPerUnit         float64   `json:"fuel_cost_per_unit"`
	CostSaved               float64   `json:"cost_saved"`
	CO2SavedTonnes          float64   `json:"co2_saved_tonnes"`
}

// ForecastDay is one day of external weather forecast input, read-only.
type ForecastDay struct {
	Date        string  `json:"date"`         // YYYY-MM-DD
	TempC       float64 `json:"temp_C"`       // mean of daily max/min
	HumidityPct float64 `json:"humidity_pct"` // mean of daily max/min
	PressureHPa float64 `json:"pressure_hPa"` // mean sea-level pressure
}

// Model provenance values carried on DailyOutcome.
const (
	ModelSourceTrained  = "trained"
	ModelSourceFallback = "fallback"
)

// DailyOutcome is the unit of forecast output: the recommended setpoint and
// the savings versus current operation for a single forecast day. Immutable
// once produced; ordering follows the input weather sequence.
type DailyOutcome struct {
	Date                    string  `json:"date"`
	TempC                   float64 `json:"temp_C"`
	HumidityPct             float64 `json:"humidity_pct"`
	PressureHPa             float64 `json:"pressure_hPa"`
	RecommendedEfficiency   float64 `json:"recommended_efficiency"`
	RecommendedGenerationMW float64 `json:"recommended_generation_mw"`
	FuelUsedRecommended     float64 `json:"fuel_used_recommended"`
	FuelSaved               float64 `json:"fuel_saved"`
	CostSaved               float64 `json:"cost_saved"`
	CO2SavedTonnes          float64 `json:"co2_saved_tonnes"`

	// PredictedGenerationMW is the regression model's estimate of current
	// generation under the day's weather. Diagnostic only: the savings
	// figures above are computed from the caller-supplied fuel usage, not
	// from this value.
	PredictedGenerationMW float64 `json:"predicted_generation_mw"`
	// ModelSource records whether a trained model or the capacity-factor
	// fallback produced PredictedGenerationMW.
	ModelSource string `json:"model_source"`
}

// ForecastRequest describes the plant operating point a forecast is run for.
type ForecastRequest struct {
	FuelType        string  `json:"fuel_type"`
	MaxCapacityMW   float64 `json:"max_capacity_mw"`
	RunHours        float64 `json:"run_hours"`
	FuelUsedCurrent float64 `json:"fuel_used_current"` // caller-measured usage in the fuel's reporting unit
	Days            int     `json:"days"`
}

// Location is a geographic point used to query the weather supplier.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
}

// MarketNote is a fuel-market headline pulled from an energy news feed,
// attached to reports for operator context.
type MarketNote struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// SavingsTotals aggregates per-day savings across a forecast horizon.
type SavingsTotals struct {
	FuelSaved      float64 `json:"fuel_saved"`
	CostSaved      float64 `json:"cost_saved"`
	CO2SavedTonnes float64 `json:"co2_saved_tonnes"`
}

// ForecastResult is the full output of one forecast run.
type ForecastResult struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	Request          ForecastRequest `json:"request"`
	Location         Location        `json:"location"`
	LocationFallback bool            `json:"location_fallback"` // true when the fixed default location was substituted
	Days             []DailyOutcome  `json:"days"`
	Totals           SavingsTotals   `json:"totals"`
	MarketNotes      []MarketNote    `json:"market_notes,omitempty"`
	Advisory         string          `json:"advisory,omitempty"`
}

// ComputeTotals sums the per-day savings into r.Totals.
func (r *ForecastResult) ComputeTotals() {
	totals := SavingsTotals{}
	for _, d := range r.Days {
		totals.FuelSaved += d.FuelSaved
		totals.CostSaved += d.CostSaved
		totals.CO2SavedTonnes += d.CO2SavedTonnes
	}
	r.Totals = totals
}

// UsedFallback reports whether any day's prediction came from the fallback
// predictor rather than a trained model.
func (r *ForecastResult) UsedFallback() bool {
	for _, d := range r.Days {
		if d.ModelSource == ModelSourceFallback {
			return true
		}
	}
	return false
}
