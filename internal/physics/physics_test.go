package physics

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// neutralConditions returns an operating point where every adjustment factor
// is exactly 1.0 except the run-hours factor.
func neutralConditions(runHours int) Conditions {
	return Conditions{
		TempC:       25,
		HumidityPct: 40,
		PressureHPa: 1013.25,
		RunHours:    runHours,
		Timestamp:   DegradationEpoch,
		LoadFactor:  0.9,
	}
}

func TestProfileFor(t *testing.T) {
	for _, fuel := range FuelTypes() {
		p, err := ProfileFor(fuel)
		if err != nil {
			t.Errorf("ProfileFor(%q) returned error: %v", fuel, err)
		}
		if p.FuelType != fuel {
			t.Errorf("ProfileFor(%q) returned profile for %q", fuel, p.FuelType)
		}
		if p.EfficiencyMin >= p.EfficiencyMax {
			t.Errorf("%s: efficiency range inverted: [%v, %v]", fuel, p.EfficiencyMin, p.EfficiencyMax)
		}
	}

	if _, err := ProfileFor("biomass"); err == nil {
		t.Error("ProfileFor should fail for unknown fuel type")
	}
	if _, err := ProfileFor(""); err == nil {
		t.Error("ProfileFor should fail for empty fuel type")
	}
}

func TestEfficiencyRunHoursBoundaries(t *testing.T) {
	coal, err := ProfileFor(FuelCoal)
	if err != nil {
		t.Fatalf("ProfileFor failed: %v", err)
	}

	// Midpoint of coal's range is 0.39; under neutral conditions only the
	// run-hours factor moves it.
	tests := []struct {
		name     string
		runHours int
		want     float64
	}{
		{"zero hours cold start", 0, 0.39 * 0.95},
		{"below warmup boundary", 3, 0.39 * 0.95},
		{"exactly four hours", 4, 0.39 * 0.98},
		{"below steady state", 7, 0.39 * 0.98},
		{"exactly eight hours", 8, 0.39},
		{"long run bonus", 20, 0.39 * (1 + 0.00005*12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Efficiency(coal, neutralConditions(tt.runHours), 1.0)
			want := math.Round(tt.want*1e4) / 1e4
			if !almostEqual(got, want, 1e-9) {
				t.Errorf("Efficiency(runHours=%d) = %v, want %v", tt.runHours, got, want)
			}
		})
	}
}

func TestEfficiencyEnvironmentalFactors(t *testing.T) {
	coal, _ := ProfileFor(FuelCoal)

	cond := neutralConditions(8)
	cond.TempC = 35
	cond.HumidityPct = 60
	cond.PressureHPa = 1003.25

	// 0.39 * (1-0.0018*10) * (1-0.0008*20) * (1+0.0006*(-10))
	want := 0.39 * (1 - 0.018) * (1 - 0.016) * (1 - 0.006)
	want = math.Round(want*1e4) / 1e4

	got := Efficiency(coal, cond, 1.0)
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("Efficiency = %v, want %v", got, want)
	}
}

func TestEfficiencyDegradation(t *testing.T) {
	coal, _ := ProfileFor(FuelCoal)

	cond := neutralConditions(8)
	cond.Timestamp = DegradationEpoch.Add(1000 * 24 * time.Hour)

	want := math.Round(0.39*(1-1000*0.00005)*1e4) / 1e4
	got := Efficiency(coal, cond, 1.0)
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("Efficiency after 1000 days = %v, want %v", got, want)
	}
}

func TestEfficiencyClampedToRange(t *testing.T) {
	extremes := []Conditions{
		{TempC: 55, HumidityPct: 100, PressureHPa: 980, RunHours: 1, Timestamp: DegradationEpoch.AddDate(12, 0, 0), LoadFactor: 0.2},
		{TempC: -20, HumidityPct: 0, PressureHPa: 1050, RunHours: 24, Timestamp: DegradationEpoch, LoadFactor: 0.9},
		{TempC: 25, HumidityPct: 40, PressureHPa: 1013.25, RunHours: 8, Timestamp: DegradationEpoch, LoadFactor: 0.9},
	}
	noises := []float64{0.995, 1.0, 1.005}

	for _, fuel := range FuelTypes() {
		p, _ := ProfileFor(fuel)
		for _, cond := range extremes {
			for _, noise := range noises {
				eff := Efficiency(p, cond, noise)
				if eff < p.EfficiencyMin || eff > p.EfficiencyMax {
					t.Errorf("%s: efficiency %v outside [%v, %v] for %+v noise=%v",
						fuel, eff, p.EfficiencyMin, p.EfficiencyMax, cond, noise)
				}
			}
		}
	}
}

func TestHeatRate(t *testing.T) {
	if got := HeatRate(0.43); !almostEqual(got, 2000, 1e-9) {
		t.Errorf("HeatRate(0.43) = %v, want 2000", got)
	}
	// Low efficiency means more heat input per kWh.
	if HeatRate(0.32) <= HeatRate(0.46) {
		t.Error("heat rate should decrease as efficiency increases")
	}
}

func TestFuelPerKWhUnits(t *testing.T) {
	heatRate := 2150.0

	coal, _ := ProfileFor(FuelCoal)
	oil, _ := ProfileFor(FuelOil)
	gas, _ := ProfileFor(FuelNaturalGas)

	tests := []struct {
		name    string
		profile FuelProfile
		want    float64
	}{
		{"coal kg per kWh", coal, heatRate / 7000},
		{"oil liters per kWh", oil, heatRate / (10000 * 0.85)},
		{"gas Nm3 per kWh", gas, heatRate / 8500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuelPerKWh(tt.profile, heatRate)
			if !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("FuelPerKWh = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuelUsed(t *testing.T) {
	// 300 MW for 10 h at 0.3 units/kWh: 300*1000*0.3*10/1000 = 900.
	if got := FuelUsed(300, 10, 0.3); !almostEqual(got, 900, 1e-9) {
		t.Errorf("FuelUsed = %v, want 900", got)
	}

	// Zero run hours is a valid cold-plant query, not a division hazard.
	if got := FuelUsed(300, 0, 0.3); got != 0 {
		t.Errorf("FuelUsed with zero run hours = %v, want 0", got)
	}

	for _, gen := range []float64{0, 50, 800} {
		for _, hours := range []int{0, 1, 24} {
			if got := FuelUsed(gen, hours, 0.3); got < 0 {
				t.Errorf("FuelUsed(%v, %d) = %v, want non-negative", gen, hours, got)
			}
		}
	}
}

func TestCO2SavedConventions(t *testing.T) {
	coal, _ := ProfileFor(FuelCoal)
	oil, _ := ProfileFor(FuelOil)
	gas, _ := ProfileFor(FuelNaturalGas)

	tests := []struct {
		name      string
		profile   FuelProfile
		fuelSaved float64
		want      float64
	}{
		{"coal tonnes direct", coal, 10, 10 * 2.42},
		{"oil m3 via density to tonnes", oil, 10, 10 * 0.85 / 1000 * 2.96},
		{"gas per-1000Nm3 basis", gas, 10, 10 * 2.0 / 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CO2Saved(tt.fuelSaved, tt.profile)
			if !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("CO2Saved = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysSinceEpoch(t *testing.T) {
	if got := DaysSinceEpoch(DegradationEpoch); got != 0 {
		t.Errorf("DaysSinceEpoch(epoch) = %d, want 0", got)
	}
	if got := DaysSinceEpoch(DegradationEpoch.Add(36 * time.Hour)); got != 1 {
		t.Errorf("DaysSinceEpoch(epoch+36h) = %d, want 1", got)
	}
}
