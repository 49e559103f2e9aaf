// Package analysis computes the descriptive statistics, correlations and
// derived views the report sections are written from. Every function takes
// a row slice and returns a fresh value; nothing here mutates the table.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nutristats/nutriatlas/src/dataset"
	"github.com/nutristats/nutriatlas/src/types"
)

// SummaryStats are the descriptive aggregates reported per group.
type SummaryStats struct {
	N      int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
}

// Describe computes summary statistics over vals. Zero value for an empty
// input; Std is 0 for a single observation.
func Describe(vals []float64) SummaryStats {
	if len(vals) == 0 {
		return SummaryStats{}
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s := SummaryStats{
		N:      len(vals),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LatestPerCountry reduces rows to at most one observation per
// (country, sex): the most recent year wins. Input rows are assumed to be
// deduplicated on (country, sex, year) already, so there are no ties.
func LatestPerCountry(rows []types.Observation) []types.Observation {
	latest := map[string]types.Observation{}
	for _, o := range rows {
		key := o.Country + "|" + o.Sex
		cur, ok := latest[key]
		if !ok || o.Year > cur.Year {
			latest[key] = o
		}
	}
	out := make([]types.Observation, 0, len(latest))
	for _, o := range latest {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Sex < out[j].Sex
	})
	return out
}

// CountrySummary is the per-country rollup across all available years
// (Total sex only).
type CountrySummary struct {
	Country     string
	ISO3        string
	Region      string
	Stats       SummaryStats
	LatestYear  int
	LatestValue float64
}

// SummarizeCountries aggregates the Total-sex rows per country, sorted by
// latest value descending.
func SummarizeCountries(rows []types.Observation) []CountrySummary {
	byCountry := map[string][]types.Observation{}
	for _, o := range dataset.BySex(rows, types.SexTotal) {
		byCountry[o.Country] = append(byCountry[o.Country], o)
	}
	out := make([]CountrySummary, 0, len(byCountry))
	for country, obs := range byCountry {
		vals := make([]float64, len(obs))
		latest := obs[0]
		for i, o := range obs {
			vals[i] = o.ObsValue
			if o.Year > latest.Year {
				latest = o
			}
		}
		out = append(out, CountrySummary{
			Country:     country,
			ISO3:        latest.ISO3,
			Region:      latest.Region,
			Stats:       Describe(vals),
			LatestYear:  latest.Year,
			LatestValue: latest.ObsValue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LatestValue != out[j].LatestValue {
			return out[i].LatestValue > out[j].LatestValue
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// RegionSummary rolls the latest Total-sex value per country up to regions.
type RegionSummary struct {
	Region    string
	Countries int
	Stats     SummaryStats
}

// SummarizeRegions groups the latest-per-country Total view by region.
// Countries without an ISO mapping have no region and land under
// "Unclassified".
func SummarizeRegions(rows []types.Observation) []RegionSummary {
	latest := dataset.BySex(LatestPerCountry(rows), types.SexTotal)
	byRegion := map[string][]float64{}
	for _, o := range latest {
		region := o.Region
		if region == "" {
			region = "Unclassified"
		}
		byRegion[region] = append(byRegion[region], o.ObsValue)
	}
	out := make([]RegionSummary, 0, len(byRegion))
	for region, vals := range byRegion {
		out = append(out, RegionSummary{Region: region, Countries: len(vals), Stats: Describe(vals)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stats.Mean != out[j].Stats.Mean {
			return out[i].Stats.Mean > out[j].Stats.Mean
		}
		return out[i].Region < out[j].Region
	})
	return out
}

// TopAndBottom returns the topN highest and lowest countries by latest
// Total-sex value. Both slices are ordered most-extreme-first.
func TopAndBottom(summaries []CountrySummary, topN int) (top, bottom []CountrySummary) {
	if topN <= 0 || len(summaries) == 0 {
		return nil, nil
	}
	sorted := make([]CountrySummary, len(summaries))
	copy(sorted, summaries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LatestValue > sorted[j].LatestValue })
	n := topN
	if n > len(sorted) {
		n = len(sorted)
	}
	top = sorted[:n]
	bottom = make([]CountrySummary, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		bottom = append(bottom, sorted[i])
	}
	return top, bottom
}
