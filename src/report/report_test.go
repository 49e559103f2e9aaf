package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nutristats/nutriatlas/src/analysis"
	"github.com/nutristats/nutriatlas/src/dataset"
)

func sampleInputs() *Inputs {
	countries := []analysis.CountrySummary{
		{Country: "Peru", ISO3: "PER", Region: "Latin America & Caribbean", LatestValue: 68.1, LatestYear: 2020,
			Stats: analysis.SummaryStats{N: 2, Mean: 64.0, Median: 64.0, Std: 5.8, Min: 59.9, Max: 68.1}},
		{Country: "Ghana", ISO3: "GHA", Region: "Sub-Saharan Africa", LatestValue: 42.5, LatestYear: 2019,
			Stats: analysis.SummaryStats{N: 3, Mean: 38.0, Median: 37.5, Std: 4.6, Min: 33.9, Max: 42.5}},
		{Country: "Nepal", ISO3: "NPL", Region: "South Asia", LatestValue: 25.0, LatestYear: 2016,
			Stats: analysis.SummaryStats{N: 2, Mean: 23.0, Median: 23.0, Std: 2.8, Min: 21.0, Max: 25.0}},
	}
	return &Inputs{
		Indicator: "Egg and/or flesh food consumption (6-23 months)",
		LoadStats: dataset.LoadStats{
			TotalRows: 120, Kept: 110, SkippedMalformed: 6, SkippedOutOfRange: 4,
			UnmappedCountries: []string{"Kosovo (UNSCR 1244)"},
		},
		Overall:   analysis.SummaryStats{N: 3, Mean: 45.2, Median: 42.5, Std: 21.7, Min: 25.0, Max: 68.1},
		Countries: countries,
		Top:       countries[:2],
		Bottom:    []analysis.CountrySummary{countries[2], countries[1]},
		Regions: []analysis.RegionSummary{
			{Region: "Latin America & Caribbean", Countries: 1, Stats: analysis.SummaryStats{N: 1, Mean: 68.1, Median: 68.1}},
			{Region: "South Asia", Countries: 1, Stats: analysis.SummaryStats{N: 1, Mean: 25.0, Median: 25.0}},
		},
		GenderGaps: []analysis.GenderGap{
			{Country: "Ghana", ISO3: "GHA", Year: 2019, Male: 44.0, Female: 41.0, Diff: 3.0},
			{Country: "Nepal", ISO3: "NPL", Year: 2016, Male: 24.0, Female: 26.0, Diff: -2.0},
		},
		EconPoints: []analysis.EconPoint{
			{Country: "Nepal", GDP: 1200, Value: 25.0},
			{Country: "Ghana", GDP: 2200, Value: 42.5},
			{Country: "Peru", GDP: 6900, Value: 68.1},
		},
		EconFit: &analysis.Regression{N: 3, Slope: 56.3, Intercept: -151.2, R: 0.99, R2: 0.98, SlopeCI95: 9.1},
		Changes: []analysis.AnnualChange{
			{Country: "Peru", FirstYear: 2015, LastYear: 2020, FirstValue: 59.9, LastValue: 68.1, PerYear: 1.64},
			{Country: "Nepal", FirstYear: 2012, LastYear: 2016, FirstValue: 27.0, LastValue: 25.0, PerYear: -0.5},
		},
		ChartFiles: map[string]string{
			"bar_top":     "top_countries.png",
			"scatter_gdp": "gdp_scatter.png",
			"boxplot_sex": "sex_boxplot.png",
			"timeseries":  "trends.png",
			"choropleth":  "choropleth.html",
		},
	}
}

func TestWriteMarkdown(t *testing.T) {
	p := filepath.Join(t.TempDir(), "report.md")
	if err := WriteMarkdown(p, sampleInputs()); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)

	for _, want := range []string{
		"# Egg and/or flesh food consumption (6-23 months)",
		"## Executive summary",
		"## Geographic comparison",
		"## Economic correlation",
		"## Gender comparison",
		"## Trends over time",
		"## World map",
		"## Data notes",
		"**Leader**: Peru (68.1%, 2020)",
		"boys score higher in 1 and girls in 1",
		"**Peru** improved fastest",
		"![Top countries by latest value](top_countries.png)",
		"[choropleth.html](choropleth.html)",
		"Kosovo (UNSCR 1244)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteMarkdownSparseInputs(t *testing.T) {
	in := sampleInputs()
	in.EconPoints = nil
	in.EconFit = nil
	in.GenderGaps = nil
	in.Changes = nil
	in.ChartFiles = nil
	in.LoadStats.UnmappedCountries = nil

	p := filepath.Join(t.TempDir(), "report.md")
	if err := WriteMarkdown(p, in); err != nil {
		t.Fatalf("WriteMarkdown sparse: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, want := range []string{
		"No GDP per capita covariate",
		"no gender comparison is possible",
		"annual change cannot be computed",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("sparse report missing fallback %q", want)
		}
	}
	if strings.Contains(md, "![") {
		t.Error("sparse report should embed no images")
	}
}

func TestCorrelationWord(t *testing.T) {
	cases := []struct {
		r    float64
		want string
	}{
		{0.9, "a strong association"},
		{-0.8, "a strong association"},
		{0.5, "a moderate association"},
		{-0.3, "a weak association"},
		{0.05, "essentially no association"},
	}
	for _, c := range cases {
		if got := correlationWord(c.r); got != c.want {
			t.Errorf("correlationWord(%v) = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestWriteWorkbook(t *testing.T) {
	p := filepath.Join(t.TempDir(), "summary.xlsx")
	in := sampleInputs()
	if err := WriteWorkbook(p, in); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(p)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Countries", "Gender gaps", "Annual change"} {
		found := false
		for _, s := range sheets {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Errorf("workbook missing sheet %q (have %v)", want, sheets)
		}
	}

	if got, _ := f.GetCellValue("Countries", "A2"); got != "Peru" {
		t.Errorf("Countries!A2 = %q, want Peru", got)
	}
	if got, _ := f.GetCellValue("Countries", "D2"); got != "68.1" {
		t.Errorf("Countries!D2 = %q, want 68.1", got)
	}
	if got, _ := f.GetCellValue("Gender gaps", "A2"); got != "Ghana" {
		t.Errorf("Gender gaps!A2 = %q, want Ghana", got)
	}
	if got, _ := f.GetCellValue("Annual change", "A2"); got != "Peru" {
		t.Errorf("Annual change!A2 = %q, want Peru", got)
	}
}

func TestRounding(t *testing.T) {
	if got := round1(42.56); got != 42.6 {
		t.Errorf("round1(42.56) = %v", got)
	}
	if got := round1(-1.24); got != -1.2 {
		t.Errorf("round1(-1.24) = %v", got)
	}
	if got := round2(1.644); got != 1.64 {
		t.Errorf("round2(1.644) = %v", got)
	}
}
