package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nutristats/nutriatlas/src/types"
)

const testIndicator = "Percentage of children (aged 6-23 months) consuming egg and/or flesh foods"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeCSV(t, `Geographic area,Indicator,Sex,TIME_PERIOD,OBS_VALUE,GDP per capita
Ghana,`+testIndicator+`,Total,2019,42.5,2200
Ghana,`+testIndicator+`,Male,2019,44.0,2200
Ghana,`+testIndicator+`,Female,2019,41.0,2200
Atlantis,`+testIndicator+`,Total,2019,50.0,
Nepal,`+testIndicator+`,Total,2019,120.0,1200
Nepal,`+testIndicator+`,Total,20xx,30.0,1200
Viet Nam,`+testIndicator+`,Total,2020,55.5,3700
`)
	table, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := table.Stats
	if s.TotalRows != 7 {
		t.Errorf("TotalRows = %d, want 7", s.TotalRows)
	}
	if s.Kept != 5 {
		t.Errorf("Kept = %d, want 5", s.Kept)
	}
	if s.SkippedMalformed != 1 {
		t.Errorf("SkippedMalformed = %d, want 1", s.SkippedMalformed)
	}
	if s.SkippedOutOfRange != 1 {
		t.Errorf("SkippedOutOfRange = %d, want 1", s.SkippedOutOfRange)
	}
	if len(s.UnmappedCountries) != 1 || s.UnmappedCountries[0] != "Atlantis" {
		t.Errorf("UnmappedCountries = %v, want [Atlantis]", s.UnmappedCountries)
	}

	for _, o := range table.Rows {
		if o.ObsValue < 0 || o.ObsValue > 100 {
			t.Errorf("row %s/%d: obs_value %.1f outside [0,100]", o.Country, o.Year, o.ObsValue)
		}
	}

	var ghana, atlantis *types.Observation
	for i := range table.Rows {
		o := &table.Rows[i]
		if o.Country == "Ghana" && o.Sex == types.SexTotal {
			ghana = o
		}
		if o.Country == "Atlantis" {
			atlantis = o
		}
	}
	if ghana == nil {
		t.Fatal("Ghana Total row missing")
	}
	if ghana.ISO3 != "GHA" || ghana.Region == "" {
		t.Errorf("Ghana resolved to ISO3=%q region=%q", ghana.ISO3, ghana.Region)
	}
	if ghana.GDPPerCapita != 2200 {
		t.Errorf("Ghana GDP = %.0f, want 2200", ghana.GDPPerCapita)
	}
	if atlantis == nil {
		t.Fatal("unmapped country should be kept in the table")
	}
	if atlantis.HasISO() {
		t.Errorf("Atlantis should have no ISO3, got %q", atlantis.ISO3)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	p := writeCSV(t, "Geographic area,Sex,TIME_PERIOD,OBS_VALUE\nGhana,Total,2019,42.5\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for missing indicator column")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIndicatorSubset(t *testing.T) {
	p := writeCSV(t, `country,indicator,sex,year,obs_value
Ghana,`+testIndicator+`,Total,2015,30.0
Ghana,`+testIndicator+`,Total,2019,42.5
Ghana,`+testIndicator+`,Total,2019,99.0
Ghana,Minimum dietary diversity,Total,2019,25.0
Nepal,`+testIndicator+`,Total,2012,20.0
`)
	table, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Substring match on a short config value selects the long label, the
	// duplicate (country, sex, year) keeps the first row.
	rows := table.IndicatorSubset("egg and/or flesh", 0, 0)
	if len(rows) != 3 {
		t.Fatalf("subset = %d rows, want 3", len(rows))
	}
	for _, o := range rows {
		if o.Country == "Ghana" && o.Year == 2019 && o.ObsValue != 42.5 {
			t.Errorf("duplicate resolution kept %.1f, want first row 42.5", o.ObsValue)
		}
		if o.Indicator == "Minimum dietary diversity" {
			t.Errorf("other indicator leaked into subset")
		}
	}

	// Exact match wins over substring when both would apply.
	exact := table.IndicatorSubset("Minimum dietary diversity", 0, 0)
	if len(exact) != 1 || exact[0].ObsValue != 25.0 {
		t.Errorf("exact subset = %+v", exact)
	}

	// Year clamp.
	clamped := table.IndicatorSubset(testIndicator, 2015, 2018)
	if len(clamped) != 1 || clamped[0].Year != 2015 {
		t.Errorf("clamped subset = %+v, want the single 2015 row", clamped)
	}
}

func TestIndicators(t *testing.T) {
	p := writeCSV(t, `country,indicator,sex,year,obs_value
Ghana,B indicator,Total,2019,10.0
Ghana,A indicator,Total,2019,20.0
`)
	table, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	inds := table.Indicators()
	if len(inds) != 2 || inds[0] != "A indicator" || inds[1] != "B indicator" {
		t.Errorf("Indicators = %v, want sorted [A indicator, B indicator]", inds)
	}
}

func TestNormalizeSex(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Male", types.SexMale, true},
		{"m", types.SexMale, true},
		{"FEMALE", types.SexFemale, true},
		{"f", types.SexFemale, true},
		{"Total", types.SexTotal, true},
		{"Both sexes", types.SexTotal, true},
		{"_T", types.SexTotal, true},
		{"unknown", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := normalizeSex(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("normalizeSex(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestBySex(t *testing.T) {
	rows := []types.Observation{
		{Country: "Ghana", Sex: types.SexTotal},
		{Country: "Ghana", Sex: types.SexMale},
		{Country: "Nepal", Sex: types.SexTotal},
	}
	got := BySex(rows, types.SexTotal)
	if len(got) != 2 {
		t.Fatalf("BySex(Total) = %d rows, want 2", len(got))
	}
	for _, o := range got {
		if o.Sex != types.SexTotal {
			t.Errorf("wrong sex in filter result: %q", o.Sex)
		}
	}
}
