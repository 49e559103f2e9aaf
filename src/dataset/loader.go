// Package dataset loads the childhood-nutrition indicator CSV into memory,
// cleans it, and provides the filtered views the analysis sections work on.
// The file is read exactly once per process; every derived view is a fresh
// slice over the in-memory table.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nutristats/nutriatlas/src/types"
)

// LoadStats counts what happened to the raw rows during ingestion. The
// report surfaces these so a reader can judge coverage.
type LoadStats struct {
	TotalRows         int
	Kept              int
	SkippedMalformed  int
	SkippedOutOfRange int
	UnmappedCountries []string // sorted, unique; excluded from the choropleth only
}

// Table is the single in-memory dataset: load once, filter many times.
type Table struct {
	Rows  []types.Observation
	Stats LoadStats
}

// Column header aliases as seen across indicator exports. Keys are
// normalized (lowercase, collapsed whitespace, underscores folded).
var headerAliases = map[string]string{
	"country":         "country",
	"geographic area": "country",
	"ref area label":  "country",
	"indicator":       "indicator",
	"sex":             "sex",
	"year":            "year",
	"time period":     "year",
	"obs value":       "obs_value",
	"value":           "obs_value",
	"gdp per capita":  "gdp_per_capita",
	"gdppc":           "gdp_per_capita",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}

// Load reads the CSV at path into a Table. Malformed rows and observation
// values outside [0,100] are dropped with a counted warning; countries
// missing from the ISO table are kept but flagged so the choropleth can
// exclude them.
func Load(path string) (*Table, error) {
	defer TimeTrack(time.Now(), "dataset load")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, we validate per-row below
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		if canon, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, dup := cols[canon]; !dup {
				cols[canon] = i
			}
		}
	}
	for _, required := range []string{"country", "indicator", "sex", "year", "obs_value"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset %s: missing required column %q (headers: %v)", path, required, records[0])
		}
	}
	gdpCol, hasGDP := cols["gdp_per_capita"]
	if !hasGDP {
		Warnf("dataset %s has no GDP per capita column; the economic correlation section will be skipped", path)
	}

	t := &Table{}
	unmapped := map[string]bool{}
	for _, rec := range records[1:] {
		t.Stats.TotalRows++
		obs, ok := parseRow(rec, cols, gdpCol, hasGDP)
		if !ok {
			t.Stats.SkippedMalformed++
			continue
		}
		if obs.ObsValue < 0 || obs.ObsValue > 100 {
			t.Stats.SkippedOutOfRange++
			Debugf("dropping %s/%s/%d: obs_value %.2f outside [0,100]", obs.Country, obs.Sex, obs.Year, obs.ObsValue)
			continue
		}
		if c, found := LookupCountry(obs.Country); found {
			obs.Country = c.Name
			obs.ISO3 = c.ISO3
			obs.Region = c.Region
		} else {
			unmapped[obs.Country] = true
		}
		t.Rows = append(t.Rows, obs)
		t.Stats.Kept++
	}

	for name := range unmapped {
		t.Stats.UnmappedCountries = append(t.Stats.UnmappedCountries, name)
	}
	sort.Strings(t.Stats.UnmappedCountries)
	if len(t.Stats.UnmappedCountries) > 0 {
		Warnf("%d countries have no ISO mapping and will be omitted from the map: %s",
			len(t.Stats.UnmappedCountries), strings.Join(t.Stats.UnmappedCountries, ", "))
	}
	Infof("loaded %d/%d rows from %s (malformed=%d out_of_range=%d unmapped_countries=%d)",
		t.Stats.Kept, t.Stats.TotalRows, path, t.Stats.SkippedMalformed, t.Stats.SkippedOutOfRange, len(t.Stats.UnmappedCountries))
	return t, nil
}

func parseRow(rec []string, cols map[string]int, gdpCol int, hasGDP bool) (types.Observation, bool) {
	get := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(rec) {
			return "", false
		}
		return strings.TrimSpace(rec[i]), true
	}
	country, ok := get("country")
	if !ok || country == "" {
		return types.Observation{}, false
	}
	indicator, ok := get("indicator")
	if !ok || indicator == "" {
		return types.Observation{}, false
	}
	sexRaw, ok := get("sex")
	if !ok {
		return types.Observation{}, false
	}
	sex, ok := normalizeSex(sexRaw)
	if !ok {
		return types.Observation{}, false
	}
	yearRaw, ok := get("year")
	if !ok {
		return types.Observation{}, false
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil || year < 1900 || year > 2100 {
		return types.Observation{}, false
	}
	valRaw, ok := get("obs_value")
	if !ok || valRaw == "" {
		return types.Observation{}, false
	}
	val, err := strconv.ParseFloat(valRaw, 64)
	if err != nil {
		return types.Observation{}, false
	}
	obs := types.Observation{
		Country:   country,
		Indicator: indicator,
		Sex:       sex,
		Year:      year,
		ObsValue:  val,
	}
	if hasGDP && gdpCol < len(rec) {
		if g, err := strconv.ParseFloat(strings.TrimSpace(rec[gdpCol]), 64); err == nil && g > 0 {
			obs.GDPPerCapita = g
		}
	}
	return obs, true
}

func normalizeSex(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return types.SexMale, true
	case "female", "f":
		return types.SexFemale, true
	case "total", "both", "both sexes", "t", "_t", "all":
		return types.SexTotal, true
	}
	return "", false
}

// IndicatorSubset returns the rows for one indicator, optionally clamped to
// [minYear, maxYear] (0 disables a bound), deduplicated on
// (country, sex, year) with the first row winning. The indicator is matched
// case-insensitively, exact first, then substring so short config values
// like "eggflesh" still select the long official label.
func (t *Table) IndicatorSubset(indicator string, minYear, maxYear int) []types.Observation {
	want := strings.ToLower(strings.TrimSpace(indicator))
	match := func(ind string) bool { return strings.ToLower(ind) == want }
	exact := false
	for _, o := range t.Rows {
		if match(o.Indicator) {
			exact = true
			break
		}
	}
	if !exact {
		match = func(ind string) bool { return strings.Contains(strings.ToLower(ind), want) }
	}

	seen := map[string]bool{}
	dups := 0
	var out []types.Observation
	for _, o := range t.Rows {
		if !match(o.Indicator) {
			continue
		}
		if minYear > 0 && o.Year < minYear {
			continue
		}
		if maxYear > 0 && o.Year > maxYear {
			continue
		}
		key := fmt.Sprintf("%s|%s|%d", o.Country, o.Sex, o.Year)
		if seen[key] {
			dups++
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	if dups > 0 {
		Warnf("indicator subset %q: dropped %d duplicate (country, sex, year) rows, first occurrence wins", indicator, dups)
	}
	Debugf("indicator subset %q: %d rows", indicator, len(out))
	return out
}

// Indicators lists the distinct indicator labels in the table, sorted.
func (t *Table) Indicators() []string {
	set := map[string]bool{}
	for _, o := range t.Rows {
		set[o.Indicator] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BySex filters rows to one sex label.
func BySex(rows []types.Observation, sex string) []types.Observation {
	var out []types.Observation
	for _, o := range rows {
		if o.Sex == sex {
			out = append(out, o)
		}
	}
	return out
}
