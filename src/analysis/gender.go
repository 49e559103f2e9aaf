package analysis

import (
	"sort"

	"github.com/nutristats/nutriatlas/src/types"
)

// GenderGap is the Male/Female pivot for one country in one year.
// Diff = Male − Female, so the Female−Male framing is its exact negation.
type GenderGap struct {
	Country string
	ISO3    string
	Year    int
	Male    float64
	Female  float64
	Diff    float64
}

// GenderGaps pivots rows into per-country Male/Female pairs. When pinYear
// is >0 only that year is considered; otherwise the latest year where a
// country reports both sexes wins. Countries missing either sex are
// skipped. Sorted by |Diff| descending.
func GenderGaps(rows []types.Observation, pinYear int) []GenderGap {
	type yearPair struct {
		male, female *types.Observation
	}
	byCountryYear := map[string]map[int]*yearPair{}
	for i := range rows {
		o := rows[i]
		if o.Sex != types.SexMale && o.Sex != types.SexFemale {
			continue
		}
		if pinYear > 0 && o.Year != pinYear {
			continue
		}
		if byCountryYear[o.Country] == nil {
			byCountryYear[o.Country] = map[int]*yearPair{}
		}
		p := byCountryYear[o.Country][o.Year]
		if p == nil {
			p = &yearPair{}
			byCountryYear[o.Country][o.Year] = p
		}
		if o.Sex == types.SexMale {
			p.male = &rows[i]
		} else {
			p.female = &rows[i]
		}
	}

	var out []GenderGap
	for country, years := range byCountryYear {
		best := 0
		var bestPair *yearPair
		for year, p := range years {
			if p.male == nil || p.female == nil {
				continue
			}
			if year > best {
				best = year
				bestPair = p
			}
		}
		if bestPair == nil {
			continue
		}
		out = append(out, GenderGap{
			Country: country,
			ISO3:    bestPair.male.ISO3,
			Year:    best,
			Male:    bestPair.male.ObsValue,
			Female:  bestPair.female.ObsValue,
			Diff:    bestPair.male.ObsValue - bestPair.female.ObsValue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := abs(out[i].Diff), abs(out[j].Diff)
		if ai != aj {
			return ai > aj
		}
		return out[i].Country < out[j].Country
	})
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
