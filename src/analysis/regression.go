package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nutristats/nutriatlas/src/dataset"
	"github.com/nutristats/nutriatlas/src/types"
)

// Regression holds a least-squares fit of y on x plus the Pearson
// correlation of the underlying pairs.
type Regression struct {
	N         int
	Slope     float64
	Intercept float64
	R         float64 // Pearson correlation coefficient
	R2        float64
	// SlopeCI95 is the 95% confidence half-width for the slope (t ≈ 2
	// approximation, adequate for the n in these datasets).
	SlopeCI95 float64
}

// FitLinear fits y = intercept + slope*x by ordinary least squares.
// Requires at least 3 pairs and non-constant x.
func FitLinear(xs, ys []float64) (*Regression, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("regression: mismatched lengths %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 3 {
		return nil, fmt.Errorf("regression: need at least 3 pairs, got %d", len(xs))
	}
	meanX := stat.Mean(xs, nil)
	sxx := 0.0
	for _, x := range xs {
		sxx += (x - meanX) * (x - meanX)
	}
	if sxx < 1e-12 {
		return nil, fmt.Errorf("regression: x values are constant")
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r := stat.Correlation(xs, ys, nil)
	reg := &Regression{
		N:         len(xs),
		Slope:     beta,
		Intercept: alpha,
		R:         r,
		R2:        stat.RSquared(xs, ys, nil, alpha, beta),
	}
	// Slope standard error from the residual sum of squares.
	ssr := 0.0
	for i := range xs {
		resid := ys[i] - reg.Predict(xs[i])
		ssr += resid * resid
	}
	se := math.Sqrt(ssr / float64(len(xs)-2) / sxx)
	reg.SlopeCI95 = 2 * se
	return reg, nil
}

// Predict evaluates the fitted line at x.
func (r *Regression) Predict(x float64) float64 { return r.Intercept + r.Slope*x }

// EconPoint is one country in the GDP-vs-indicator scatter.
type EconPoint struct {
	Country string
	GDP     float64 // per capita, current USD
	Value   float64 // obs_value (%)
}

// EconomicCorrelation pairs the latest Total-sex observation per country
// with its GDP per capita covariate and fits the regression for the
// scatter overlay. Countries without a reported GDP are skipped. A nil
// Regression (with points still returned) means too few pairs to fit.
func EconomicCorrelation(rows []types.Observation) ([]EconPoint, *Regression) {
	latest := dataset.BySex(LatestPerCountry(rows), types.SexTotal)
	var points []EconPoint
	for _, o := range latest {
		if o.GDPPerCapita <= 0 {
			continue
		}
		points = append(points, EconPoint{Country: o.Country, GDP: o.GDPPerCapita, Value: o.ObsValue})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].GDP < points[j].GDP })
	if len(points) < 3 {
		dataset.Warnf("economic correlation: only %d countries have GDP data, skipping fit", len(points))
		return points, nil
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		// log10 of GDP linearizes the income gradient; the axis is labeled
		// accordingly in the chart.
		xs[i] = math.Log10(p.GDP)
		ys[i] = p.Value
	}
	reg, err := FitLinear(xs, ys)
	if err != nil {
		dataset.Warnf("economic correlation: %v", err)
		return points, nil
	}
	return points, reg
}
