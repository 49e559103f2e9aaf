package analysis

import (
	"sort"

	"github.com/nutristats/nutriatlas/src/dataset"
	"github.com/nutristats/nutriatlas/src/types"
)

// AnnualChange is the average per-year movement of a country's Total-sex
// value between its first and last observation.
type AnnualChange struct {
	Country    string
	FirstYear  int
	LastYear   int
	FirstValue float64
	LastValue  float64
	PerYear    float64 // (last − first) / (lastYear − firstYear)
}

// AnnualChanges computes the per-country annual change over the Total-sex
// rows. A country needs a strictly positive year span; single-year
// countries are skipped, never divided by zero. Sorted by PerYear
// descending (fastest risers first).
func AnnualChanges(rows []types.Observation) []AnnualChange {
	byCountry := map[string][]types.Observation{}
	for _, o := range dataset.BySex(rows, types.SexTotal) {
		byCountry[o.Country] = append(byCountry[o.Country], o)
	}
	var out []AnnualChange
	skipped := 0
	for country, obs := range byCountry {
		first, last := obs[0], obs[0]
		for _, o := range obs {
			if o.Year < first.Year {
				first = o
			}
			if o.Year > last.Year {
				last = o
			}
		}
		span := last.Year - first.Year
		if span <= 0 {
			skipped++
			continue
		}
		out = append(out, AnnualChange{
			Country:    country,
			FirstYear:  first.Year,
			LastYear:   last.Year,
			FirstValue: first.ObsValue,
			LastValue:  last.ObsValue,
			PerYear:    (last.ObsValue - first.ObsValue) / float64(span),
		})
	}
	if skipped > 0 {
		dataset.Debugf("annual change: skipped %d countries with a single survey year", skipped)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PerYear != out[j].PerYear {
			return out[i].PerYear > out[j].PerYear
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// SeriesPoint is one year of a country's time series.
type SeriesPoint struct {
	Year  int
	Value float64
}

// TimeSeries extracts the chronological Total-sex sequence for one country.
func TimeSeries(rows []types.Observation, country string) []SeriesPoint {
	var out []SeriesPoint
	for _, o := range dataset.BySex(rows, types.SexTotal) {
		if o.Country == country {
			out = append(out, SeriesPoint{Year: o.Year, Value: o.ObsValue})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopMovers picks the n countries with the largest absolute annual change
// and at least minYears of span, for the time-series chart when no focus
// countries are configured.
func TopMovers(changes []AnnualChange, n, minYears int) []string {
	sorted := make([]AnnualChange, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool {
		return abs(sorted[i].PerYear) > abs(sorted[j].PerYear)
	})
	var out []string
	for _, c := range sorted {
		if c.LastYear-c.FirstYear < minYears {
			continue
		}
		out = append(out, c.Country)
		if len(out) == n {
			break
		}
	}
	return out
}
