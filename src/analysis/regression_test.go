package analysis

import (
	"math"
	"testing"

	"github.com/nutristats/nutriatlas/src/types"
)

func TestFitLinearPerfect(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 1
	}
	reg, err := FitLinear(xs, ys)
	if err != nil {
		t.Fatalf("FitLinear: %v", err)
	}
	if !almostEqual(reg.Slope, 2, 1e-9) || !almostEqual(reg.Intercept, 1, 1e-9) {
		t.Errorf("fit = %.4f*x + %.4f, want 2*x + 1", reg.Slope, reg.Intercept)
	}
	if !almostEqual(reg.R, 1, 1e-9) || !almostEqual(reg.R2, 1, 1e-9) {
		t.Errorf("r = %f r2 = %f, want 1 for a perfect line", reg.R, reg.R2)
	}
	if !almostEqual(reg.SlopeCI95, 0, 1e-9) {
		t.Errorf("SlopeCI95 = %f, want 0 with zero residuals", reg.SlopeCI95)
	}
	if got := reg.Predict(10); !almostEqual(got, 21, 1e-9) {
		t.Errorf("Predict(10) = %f, want 21", got)
	}
}

func TestFitLinearNegativeCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{9, 7.2, 4.8, 3}
	reg, err := FitLinear(xs, ys)
	if err != nil {
		t.Fatalf("FitLinear: %v", err)
	}
	if reg.Slope >= 0 {
		t.Errorf("Slope = %f, want negative", reg.Slope)
	}
	if reg.R >= 0 {
		t.Errorf("R = %f, want negative", reg.R)
	}
	if reg.R2 < 0.9 {
		t.Errorf("R2 = %f, want near 1 for a near-linear series", reg.R2)
	}
}

func TestFitLinearErrors(t *testing.T) {
	if _, err := FitLinear([]float64{1, 2}, []float64{1, 2}); err == nil {
		t.Error("expected error for fewer than 3 pairs")
	}
	if _, err := FitLinear([]float64{1, 2, 3}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := FitLinear([]float64{2, 2, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for constant x")
	}
}

func TestEconomicCorrelation(t *testing.T) {
	mk := func(country string, gdp, val float64) types.Observation {
		return types.Observation{Country: country, Sex: types.SexTotal, Year: 2019, GDPPerCapita: gdp, ObsValue: val}
	}
	rows := []types.Observation{
		mk("A", 100, 20),
		mk("B", 1000, 30),
		mk("C", 10000, 40),
		mk("NoGDP", 0, 50),
		{Country: "A", Sex: types.SexMale, Year: 2019, GDPPerCapita: 100, ObsValue: 99},
	}
	points, reg := EconomicCorrelation(rows)
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3 (no-GDP and non-Total rows excluded)", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].GDP < points[i-1].GDP {
			t.Errorf("points not sorted by GDP: %v", points)
		}
	}
	if reg == nil {
		t.Fatal("expected a fit for 3 GDP pairs")
	}
	// Values rise 10 points per decade of GDP, so the log10 slope is 10.
	if !almostEqual(reg.Slope, 10, 1e-9) {
		t.Errorf("Slope = %f, want 10", reg.Slope)
	}
	if !almostEqual(reg.R, 1, 1e-9) {
		t.Errorf("R = %f, want 1", reg.R)
	}
}

func TestEconomicCorrelationTooFew(t *testing.T) {
	rows := []types.Observation{
		{Country: "A", Sex: types.SexTotal, Year: 2019, GDPPerCapita: 100, ObsValue: 20},
		{Country: "B", Sex: types.SexTotal, Year: 2019, GDPPerCapita: 200, ObsValue: 30},
	}
	points, reg := EconomicCorrelation(rows)
	if len(points) != 2 {
		t.Errorf("points = %d, want 2", len(points))
	}
	if reg != nil {
		t.Error("expected nil fit for fewer than 3 pairs")
	}
	if math.IsNaN(points[0].GDP) {
		t.Error("points should carry raw GDP values")
	}
}
