package inference

import (
	"context"
	"errors"
	"math"

	"plantcast/internal/logger"
	"plantcast/internal/metrics"
	"plantcast/internal/modelstore"
	"plantcast/internal/models"
	"plantcast/internal/trainer"
)

// Per-fuel constants for the recommendation path. These are deliberately
// simpler than the generator's physical tables; the recommendation engine
// runs a lighter-weight estimate and the two sets must not be unified.
// Unknown fuel types use the default value instead of failing.
var (
	baseEfficiencyByFuel = map[string]float64{"coal": 0.38, "oil": 0.42, "natural_gas": 0.50}
	fuelPerKWhByFuel     = map[string]float64{"coal": 0.35, "oil": 0.25, "natural_gas": 0.20}
	costPerUnitByFuel    = map[string]float64{"coal": 6000, "oil": 700, "natural_gas": 300}
	co2PerUnitByFuel     = map[string]float64{"coal": 2.42, "oil": 2.96, "natural_gas": 2.0}
)

const (
	defaultBaseEfficiency = 0.40
	defaultFuelPerKWh     = 0.3
	defaultCostPerUnit    = 500
	defaultCO2PerUnit     = 2.5

	// A plant without a trained model is assumed to run at 70% of capacity
	fallbackCapacityFactor = 0.7
)

func constFor(table map[string]float64, fuelType string, fallback float64) float64 {
	if v, ok := table[fuelType]; ok {
		return v
	}
	return fallback
}

// RecommendedEfficiency estimates the achievable efficiency for a fuel type
// under the given weather: a per-fuel base adjusted linearly for temperature,
// humidity and pressure deviations from reference conditions.
func RecommendedEfficiency(fuelType string, tempC, humidityPct, pressureHPa float64) float64 {
	base := constFor(baseEfficiencyByFuel, fuelType, defaultBaseEfficiency)
	tempFactor := 1 - 0.002*(tempC-25)
	humidityFactor := 1 - 0.001*(humidityPct-40)
	pressureFactor := 1 + 0.0005*(pressureHPa-1013.25)
	return base * tempFactor * humidityFactor * pressureFactor
}

// Truncate2 cuts a value to two decimal places toward zero, never rounding.
func Truncate2(x float64) float64 {
	return math.Trunc(x*100) / 100
}

type predictor interface {
	Predict(x []float64) float64
}

type fallbackPredictor struct {
	maxCapacityMW float64
}

func (p fallbackPredictor) Predict(_ []float64) float64 {
	return p.maxCapacityMW * fallbackCapacityFactor
}

// Engine turns a forecast day into a recommended setpoint and the savings
// against current operation.
type Engine struct {
	models *modelstore.Store
	log    *logger.Logger
}

// NewEngine creates an inference engine over a model store
func NewEngine(modelStore *modelstore.Store) *Engine {
	return &Engine{
		models: modelStore,
		log:    logger.GetGlobalLogger().WithComponent("inference"),
	}
}

// loadPredictor resolves the trained model for the request's fuel type, or
// the capacity fallback when no model is available. The fallback keeps the
// engine usable before the first training run; every outcome is tagged with
// the source that produced its prediction.
func (e *Engine) loadPredictor(ctx context.Context, req models.ForecastRequest) (predictor, string) {
	model, err := e.models.Load(ctx, req.FuelType)
	if err != nil {
		if errors.Is(err, modelstore.ErrNotFound) {
			e.log.Warn("No trained model, using capacity fallback", map[string]interface{}{
				"fuel_type": req.FuelType,
			})
		} else {
			e.log.Error("Failed to load model, using capacity fallback", err, map[string]interface{}{
				"fuel_type": req.FuelType,
			})
		}
		return fallbackPredictor{maxCapacityMW: req.MaxCapacityMW}, models.ModelSourceFallback
	}
	return model, models.ModelSourceTrained
}

// Infer computes the outcome for a single forecast day.
func (e *Engine) Infer(ctx context.Context, req models.ForecastRequest, day models.ForecastDay) models.DailyOutcome {
	model, source := e.loadPredictor(ctx, req)
	return e.infer(model, source, req, day)
}

// InferDays computes one outcome per forecast day with the model loaded
// once. Outcome order matches the input day order.
func (e *Engine) InferDays(ctx context.Context, req models.ForecastRequest, days []models.ForecastDay) []models.DailyOutcome {
	model, source := e.loadPredictor(ctx, req)

	outcomes := make([]models.DailyOutcome, 0, len(days))
	for _, day := range days {
		outcomes = append(outcomes, e.infer(model, source, req, day))
	}
	return outcomes
}

func (e *Engine) infer(model predictor, source string, req models.ForecastRequest, day models.ForecastDay) models.DailyOutcome {
	if source == models.ModelSourceFallback {
		metrics.FallbackInferences.Inc()
	}

	features := trainer.FeatureVector(req.MaxCapacityMW, req.RunHours, day.TempC, day.HumidityPct, day.PressureHPa)

	// Estimated current generation under the day's weather. Carried as a
	// diagnostic only: the savings below are computed from the
	// caller-supplied fuel usage, not from this estimate.
	predictedGen := model.Predict(features)

	recommendedEff := RecommendedEfficiency(req.FuelType, day.TempC, day.HumidityPct, day.PressureHPa)
	recommendedGen := req.MaxCapacityMW * recommendedEff
	energyKWh := recommendedGen * 1000 * req.RunHours
	fuelUsedRecommended := energyKWh * constFor(fuelPerKWhByFuel, req.FuelType, defaultFuelPerKWh) / 1000
	fuelSaved := req.FuelUsedCurrent - fuelUsedRecommended
	costSaved := fuelSaved * constFor(costPerUnitByFuel, req.FuelType, defaultCostPerUnit)
	co2Saved := fuelSaved * constFor(co2PerUnitByFuel, req.FuelType, defaultCO2PerUnit)

	return models.DailyOutcome{
		Date:                    day.Date,
		TempC:                   day.TempC,
		HumidityPct:             day.HumidityPct,
		PressureHPa:             day.PressureHPa,
		RecommendedEfficiency:   Truncate2(recommendedEff),
		RecommendedGenerationMW: Truncate2(recommendedGen),
		FuelUsedRecommended:     Truncate2(fuelUsedRecommended),
		FuelSaved:               Truncate2(fuelSaved),
		CostSaved:               Truncate2(costSaved),
		CO2SavedTonnes:          Truncate2(co2Saved),
		PredictedGenerationMW:   predictedGen,
		ModelSource:             source,
	}
}
