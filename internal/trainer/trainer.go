package trainer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"plantcast/internal/dataset"
	"plantcast/internal/forest"
	"plantcast/internal/logger"
	"plantcast/internal/metrics"
	"plantcast/internal/modelstore"
	"plantcast/internal/models"
)

// FeatureNames lists the regression inputs in column order. The label is
// current_generation_mw.
var FeatureNames = []string{"max_capacity_mw", "run_hours", "temp_C", "humidity_%", "pressure_hPa"}

const (
	// Fuel types with fewer samples than this are skipped, not failed.
	minSamplesPerFuel = 5

	// Fixed split seed keeps the holdout reproducible across runs.
	splitSeed = 42

	holdoutFraction = 0.2
)

// Report summarizes one fuel type's training outcome. R2 and MAE come from
// the holdout partition and are reported, never used to gate persistence.
type Report struct {
	FuelType string  `json:"fuel_type"`
	Samples  int     `json:"samples"`
	R2       float64 `json:"r2"`
	MAEMW    float64 `json:"mae_mw"`
	Skipped  bool    `json:"skipped"`
	Reason   string  `json:"reason,omitempty"`
}

// Trainer fits one regression forest per fuel type from the sample store and
// persists the fitted models.
type Trainer struct {
	samples dataset.Store
	models  *modelstore.Store
	log     *logger.Logger
}

// New creates a trainer over the given sample store and model store
func New(samples dataset.Store, modelStore *modelstore.Store) *Trainer {
	return &Trainer{
		samples: samples,
		models:  modelStore,
		log:     logger.GetGlobalLogger().WithComponent("trainer"),
	}
}

// Train reads all accumulated samples, fits a model per fuel type, persists
// the models, and truncates the sample store back to its header so the next
// cycle starts fresh. An empty store is an error; a fuel type with too few
// samples is skipped with a warning.
func (t *Trainer) Train(ctx context.Context) ([]Report, error) {
	samples, err := t.samples.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read training samples: %w", err)
	}

	groups := make(map[string][]models.OperatingSample)
	for _, s := range samples {
		groups[s.FuelType] = append(groups[s.FuelType], s)
	}

	fuelTypes := make([]string, 0, len(groups))
	for fuel := range groups {
		fuelTypes = append(fuelTypes, fuel)
	}
	sort.Strings(fuelTypes)

	reports := make([]Report, 0, len(fuelTypes))
	for _, fuel := range fuelTypes {
		group := groups[fuel]

		if len(group) < minSamplesPerFuel {
			t.log.Warn("Skipping fuel type with too few samples", map[string]interface{}{
				"fuel_type": fuel,
				"samples":   len(group),
				"required":  minSamplesPerFuel,
			})
			reports = append(reports, Report{
				FuelType: fuel,
				Samples:  len(group),
				Skipped:  true,
				Reason:   fmt.Sprintf("need at least %d samples, have %d", minSamplesPerFuel, len(group)),
			})
			continue
		}

		report, err := t.trainFuel(ctx, fuel, group)
		if err != nil {
			return nil, fmt.Errorf("failed to train %s model: %w", fuel, err)
		}
		reports = append(reports, report)
	}

	// Clear accumulated samples so the next cycle never retrains on stale data
	if err := t.samples.Truncate(); err != nil {
		return nil, fmt.Errorf("failed to reset sample store: %w", err)
	}

	return reports, nil
}

func (t *Trainer) trainFuel(ctx context.Context, fuel string, group []models.OperatingSample) (Report, error) {
	n := len(group)
	X := make([][]float64, n)
	y := make([]float64, n)
	for i, s := range group {
		X[i] = FeatureVector(s.MaxCapacityMW, float64(s.RunHours), s.TempC, s.HumidityPct, s.PressureHPa)
		y[i] = s.CurrentGenerationMW
	}

	trainX, trainY, testX, testY := holdoutSplit(X, y)

	f := forest.New(fuel, FeatureNames, forest.DefaultParams(splitSeed))
	if err := f.Fit(trainX, trainY); err != nil {
		return Report{}, err
	}

	predictions := f.PredictBatch(testX)
	r2 := stat.RSquaredFrom(predictions, testY, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// Degenerate holdout (e.g. constant labels) has no meaningful R2
		r2 = 0
	}
	mae := meanAbsoluteError(predictions, testY)

	if err := t.models.Save(ctx, f); err != nil {
		return Report{}, err
	}

	t.log.Info("Trained model", map[string]interface{}{
		"fuel_type": fuel,
		"samples":   n,
		"r2":        r2,
		"mae_mw":    mae,
	})

	metrics.TrainR2.WithLabelValues(fuel).Set(r2)
	metrics.TrainMAE.WithLabelValues(fuel).Set(mae)
	metrics.TrainSamples.WithLabelValues(fuel).Set(float64(n))

	return Report{
		FuelType: fuel,
		Samples:  n,
		R2:       r2,
		MAEMW:    mae,
	}, nil
}

// FeatureVector assembles model inputs in FeatureNames order.
func FeatureVector(maxCapacityMW, runHours, tempC, humidityPct, pressureHPa float64) []float64 {
	return []float64{maxCapacityMW, runHours, tempC, humidityPct, pressureHPa}
}

// holdoutSplit shuffles indices with the fixed split seed and carves off the
// holdout fraction for evaluation. At least one sample lands in each side.
func holdoutSplit(X [][]float64, y []float64) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	n := len(X)
	rng := rand.New(rand.NewSource(splitSeed))
	perm := rng.Perm(n)

	testSize := int(float64(n) * holdoutFraction)
	if testSize < 1 {
		testSize = 1
	}
	if testSize >= n {
		testSize = n - 1
	}

	for i, idx := range perm {
		if i < testSize {
			testX = append(testX, X[idx])
			testY = append(testY, y[idx])
		} else {
			trainX = append(trainX, X[idx])
			trainY = append(trainY, y[idx])
		}
	}
	return trainX, trainY, testX, testY
}

func meanAbsoluteError(predictions, truth []float64) float64 {
	if len(predictions) == 0 {
		return 0
	}
	var sum float64
	for i := range predictions {
		sum += math.Abs(predictions[i] - truth[i])
	}
	return sum / float64(len(predictions))
}
