package physics

import (
	"fmt"
	"math"
	"time"
)

// Fuel type identifiers used across the pipeline.
const (
	FuelCoal       = "coal"
	FuelOil        = "oil"
	FuelNaturalGas = "natural_gas"
)

// DegradationEpoch is the commissioning reference date; plant aging is
// measured in whole days elapsed since it.
var DegradationEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// FuelProfile holds the physical constants for one fuel type. Profiles are
// immutable and defined once at process start.
type FuelProfile struct {
	FuelType            string
	EfficiencyMin       float64
	EfficiencyMax       float64
	HeatRateMinKcal     float64 // kcal/kWh
	HeatRateMaxKcal     float64
	CapacityMinMW       float64
	CapacityMaxMW       float64
	TempSensitivity     float64 // efficiency loss per °C above 25
	HumiditySensitivity float64 // efficiency loss per % above 40
	PressureSensitivity float64 // efficiency gain per hPa above 1013.25
	FuelLHV             float64 // kcal/kg for coal and oil, kcal/Nm³ for gas
	FuelUnit            string  // reporting unit label: ton, barrel, 1000Nm3
	FuelCostMin         float64 // per reporting unit
	FuelCostMax         float64
	CO2Factor           float64 // tonnes CO2 per tonne fuel; per 1000 Nm³ for gas
	Density             float64 // kg/liter; 1.0 where not applicable
}

var profiles = map[string]FuelProfile{
	FuelCoal: {
		FuelType:            FuelCoal,
		EfficiencyMin:       0.32,
		EfficiencyMax:       0.46,
		HeatRateMinKcal:     2000,
		HeatRateMaxKcal:     2600,
		CapacityMinMW:       200,
		CapacityMaxMW:       800,
		TempSensitivity:     0.0018,
		HumiditySensitivity: 0.0008,
		PressureSensitivity: 0.0006,
		FuelLHV:             7000,
		FuelUnit:            "ton",
		FuelCostMin:         5000,
		FuelCostMax:         7000,
		CO2Factor:           2.42,
		Density:             1.0,
	},
	FuelOil: {
		FuelType:            FuelOil,
		EfficiencyMin:       0.36,
		EfficiencyMax:       0.42,
		HeatRateMinKcal:     2100,
		HeatRateMaxKcal:     2400,
		CapacityMinMW:       100,
		CapacityMaxMW:       400,
		TempSensitivity:     0.0015,
		HumiditySensitivity: 0.0007,
		PressureSensitivity: 0.0005,
		FuelLHV:             10000,
		FuelUnit:            "barrel",
		FuelCostMin:         600,
		FuelCostMax:         900,
		CO2Factor:           2.96,
		Density:             0.85,
	},
	FuelNaturalGas: {
		FuelType:            FuelNaturalGas,
		EfficiencyMin:       0.40,
		EfficiencyMax:       0.60,
		HeatRateMinKcal:     1430,
		HeatRateMaxKcal:     2150,
		CapacityMinMW:       50,
		CapacityMaxMW:       600,
		TempSensitivity:     0.0012,
		HumiditySensitivity: 0.0005,
		PressureSensitivity: 0.0008,
		FuelLHV:             8500,
		FuelUnit:            "1000Nm3",
		FuelCostMin:         200,
		FuelCostMax:         400,
		CO2Factor:           2.0,
		Density:             0.72,
	},
}

// FuelTypes returns the known fuel types in stable order.
func FuelTypes() []string {
	return []string{FuelCoal, FuelOil, FuelNaturalGas}
}

// Profiles returns all fuel profiles in the same stable order as FuelTypes.
func Profiles() []FuelProfile {
	out := make([]FuelProfile, 0, len(profiles))
	for _, fuel := range FuelTypes() {
		out = append(out, profiles[fuel])
	}
	return out
}

// ProfileFor returns the profile for a fuel type. Unknown fuel types are an
// error: fuel quantities are never computed against guessed constants.
func ProfileFor(fuelType string) (FuelProfile, error) {
	p, ok := profiles[fuelType]
	if !ok {
		return FuelProfile{}, fmt.Errorf("unknown fuel type %q", fuelType)
	}
	return p, nil
}

// Conditions describes one operating point for the efficiency model.
type Conditions struct {
	TempC       float64
	HumidityPct float64
	PressureHPa float64
	RunHours    int
	Timestamp   time.Time
	LoadFactor  float64 // actual generation / rated capacity
}

// Efficiency computes the generator-side efficiency for a fuel profile under
// the given conditions. This is the full physical model used to label
// synthetic training data. It is distinct from the simplified estimate the
// inference engine applies at recommendation time (see internal/inference);
// the two formulas intentionally diverge and must not be unified.
//
// noise is a multiplicative factor applied to the range-clamped value,
// drawn by the caller (the generator draws it uniformly from
// [0.995, 1.005]); pass 1.0 for a deterministic result. The result always
// lies inside the profile's efficiency range, rounded to four decimals.
func Efficiency(p FuelProfile, cond Conditions, noise float64) float64 {
	eff := (p.EfficiencyMin + p.EfficiencyMax) / 2

	// Plants run most efficiently near 90% load.
	eff *= 1 - math.Abs(cond.LoadFactor-0.9)*0.08

	eff *= 1 - p.TempSensitivity*(cond.TempC-25)
	eff *= 1 - p.HumiditySensitivity*(cond.HumidityPct-40)
	eff *= 1 + p.PressureSensitivity*(cond.PressureHPa-1013.25)

	switch {
	case cond.RunHours < 4:
		eff *= 0.95
	case cond.RunHours < 8:
		eff *= 0.98
	default:
		eff *= 1 + 0.00005*float64(cond.RunHours-8)
	}

	days := DaysSinceEpoch(cond.Timestamp)
	eff *= 1 - float64(days)*0.00005

	eff = math.Max(p.EfficiencyMin, math.Min(p.EfficiencyMax, eff))

	// Noise lands on the clamped value and the result is clipped back,
	// keeping every emitted efficiency inside the profile's range.
	eff = math.Max(p.EfficiencyMin, math.Min(p.EfficiencyMax, eff*noise))
	return math.Round(eff*1e4) / 1e4
}

// DaysSinceEpoch returns whole days elapsed between DegradationEpoch and t.
func DaysSinceEpoch(t time.Time) int {
	return int(t.Sub(DegradationEpoch).Hours() / 24)
}

// HeatRate converts efficiency to heat rate in kcal/kWh.
func HeatRate(efficiency float64) float64 {
	return 860 / efficiency
}

// FuelPerKWh converts a heat rate to fuel consumption per kWh in the
// profile's metering unit: kg for coal, liters for oil, Nm³ for gas.
func FuelPerKWh(p FuelProfile, heatRate float64) float64 {
	if p.FuelType == FuelOil {
		return heatRate / (p.FuelLHV * p.Density)
	}
	return heatRate / p.FuelLHV
}

// FuelUsed returns fuel consumed over a run in the profile's reporting unit:
// tonnes for coal, m³ for oil, thousand Nm³ for gas. The numeric form is the
// same for every fuel; only the unit interpretation differs.
func FuelUsed(generationMW float64, runHours int, fuelPerKWh float64) float64 {
	return generationMW * 1000 * fuelPerKWh * float64(runHours) / 1000
}

// CO2Saved converts a fuel saving in the profile's reporting unit into
// tonnes of CO2. Oil savings are converted from m³ to tonnes via density
// first; the gas factor is on a per-1000-Nm³ basis, hence the scale
// correction. These conversions reflect differing reporting conventions and
// are not interchangeable.
func CO2Saved(fuelSaved float64, p FuelProfile) float64 {
	switch p.FuelType {
	case FuelOil:
		return fuelSaved * p.Density / 1000 * p.CO2Factor
	case FuelNaturalGas:
		return fuelSaved * p.CO2Factor / 1000
	default:
		return fuelSaved * p.CO2Factor
	}
}
