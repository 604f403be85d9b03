package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"plantcast/internal/models"
)

// Header is the fixed 20-column sample store schema. Column order is part of
// the store's contract; Truncate preserves exactly this header row.
var Header = []string{
	"timestamp", "fuel_type", "max_capacity_mw", "current_generation_mw", "run_hours",
	"temp_C", "humidity_%", "pressure_hPa", "predicted_efficiency",
	"recommended_generation_mw", "adjustment_pct", "fuel_per_kwh", "fuel_unit",
	"heat_rate_kcal_per_kwh", "fuel_used_current", "fuel_used_recommended",
	"fuel_saved", "fuel_cost_per_unit", "cost_saved", "co2_saved_tonnes",
}

// StoreFileName is the conventional sample store location relative to the
// data directory. The server and the local runner both open it so samples
// generated by one are visible to the other.
const StoreFileName = "samples.csv"

// ErrEmptyStore reports a store with no data rows. Training against an empty
// store is a caller error, not a recoverable condition.
var ErrEmptyStore = errors.New("sample store is empty")

// Store is the accumulated-sample store: appended to by the generator,
// bulk-read by the trainer, truncated back to headers after training.
type Store interface {
	Append(samples []models.OperatingSample) error
	ReadAll() ([]models.OperatingSample, error)
	Truncate() error
	Count() (int, error)
}

// CSVStore implements Store over a single CSV file with single-writer
// discipline: every operation holds the store mutex for its duration.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore opens or creates the store file at path, writing the header
// row if the file does not exist yet. Existing data rows are preserved.
func NewCSVStore(path string) (*CSVStore, error) {
	s := &CSVStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.writeHeader(); err != nil {
			return nil, fmt.Errorf("failed to initialize sample store: %w", err)
		}
	}
	return s, nil
}

// Path returns the store's file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Append adds samples to the end of the store.
func (s *CSVStore) Append(samples []models.OperatingSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open sample store: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat sample store: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, sample := range samples {
		if err := w.Write(encodeRow(sample)); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush sample store: %w", err)
	}
	return nil
}

// ReadAll returns every sample in the store. A missing file or a file with
// only the header row yields ErrEmptyStore.
func (s *CSVStore) ReadAll() ([]models.OperatingSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyStore, s.path)
		}
		return nil, fmt.Errorf("failed to open sample store: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sample store: %w", err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyStore, s.path)
	}

	samples := make([]models.OperatingSample, 0, len(records)-1)
	for i, rec := range records[1:] {
		sample, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to decode sample store row %d: %w", i+2, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// Count returns the number of data rows currently in the store.
func (s *CSVStore) Count() (int, error) {
	samples, err := s.ReadAll()
	if errors.Is(err, ErrEmptyStore) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

// Truncate rewrites the store as a bare header row, discarding all data.
// Called after training so the next cycle does not refit on stale samples.
func (s *CSVStore) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeHeader()
}

func (s *CSVStore) writeHeader() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create sample store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

func encodeRow(s models.OperatingSample) []string {
	return []string{
		s.Timestamp.Format(models.SampleTimeLayout),
		s.FuelType,
		formatFloat(s.MaxCapacityMW),
		formatFloat(s.CurrentGenerationMW),
		strconv.Itoa(s.RunHours),
		formatFloat(s.TempC),
		formatFloat(s.HumidityPct),
		formatFloat(s.PressureHPa),
		formatFloat(s.PredictedEfficiency),
		formatFloat(s.RecommendedGenerationMW),
		formatFloat(s.AdjustmentPct),
		formatFloat(s.FuelPerKWh),
		s.FuelUnit,
		formatFloat(s.HeatRateKcalPerKWh),
		formatFloat(s.FuelUsedCurrent),
		formatFloat(s.FuelUsedRecommended),
		formatFloat(s.FuelSaved),
		formatFloat(s.FuelCostPerUnit),
		formatFloat(s.CostSaved),
		formatFloat(s.CO2SavedTonnes),
	}
}

func decodeRow(rec []string) (models.OperatingSample, error) {
	var s models.OperatingSample
	if len(rec) != len(Header) {
		return s, fmt.Errorf("expected %d columns, got %d", len(Header), len(rec))
	}

	ts, err := time.Parse(models.SampleTimeLayout, rec[0])
	if err != nil {
		return s, fmt.Errorf("bad timestamp %q: %w", rec[0], err)
	}
	s.Timestamp = ts
	s.FuelType = rec[1]
	s.FuelUnit = rec[12]

	runHours, err := strconv.Atoi(rec[4])
	if err != nil {
		return s, fmt.Errorf("bad run_hours %q: %w", rec[4], err)
	}
	s.RunHours = runHours

	floats := map[int]*float64{
		2:  &s.MaxCapacityMW,
		3:  &s.CurrentGenerationMW,
		5:  &s.TempC,
		6:  &s.HumidityPct,
		7:  &s.PressureHPa,
		8:  &s.PredictedEfficiency,
		9:  &s.RecommendedGenerationMW,
		10: &s.AdjustmentPct,
		11: &s.FuelPerKWh,
		13: &s.HeatRateKcalPerKWh,
		14: &s.FuelUsedCurrent,
		15: &s.FuelUsedRecommended,
		16: &s.FuelSaved,
		17: &s.FuelCostPerUnit,
		18: &s.CostSaved,
		19: &s.CO2SavedTonnes,
	}
	for idx, dst := range floats {
		v, err := strconv.ParseFloat(rec[idx], 64)
		if err != nil {
			return s, fmt.Errorf("bad %s %q: %w", Header[idx], rec[idx], err)
		}
		*dst = v
	}
	return s, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
