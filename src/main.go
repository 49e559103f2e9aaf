// Nutrition indicator report entrypoint.
//
// One-shot pipeline: load the indicator CSV once, compute the descriptive
// statistics and correlations, render the charts (ranking bars, GDP
// scatter, sex boxplot, country trends, world choropleth) and write the
// markdown report plus the xlsx companion into --out-dir.
//
// Design notes:
// - The table is read exactly once; every section re-filters the in-memory
//   rows and hands a fresh view to its renderer.
// - Chart renderers never abort the run: degenerate input logs a warning
//   and the section is skipped or blanked.
// - Countries missing from the ISO table stay in every tabular output and
//   are only excluded from the choropleth.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nutristats/nutriatlas/src/analysis"
	"github.com/nutristats/nutriatlas/src/charts"
	"github.com/nutristats/nutriatlas/src/dataset"
	"github.com/nutristats/nutriatlas/src/report"
	"github.com/nutristats/nutriatlas/src/types"
)

func main() {
	dataPath := flag.String("data", "./nutrition_indicators.csv", "Path to the indicator CSV")
	configPath := flag.String("config", "./report.jsonc", "Path to the report JSONC config (optional)")
	outDir := flag.String("out-dir", "./report", "Directory for the report, charts and workbook")
	indicatorFlag := flag.String("indicator", "", "Indicator to report on (overrides config; empty = config value or first indicator in the data)")
	topN := flag.Int("top-n", 0, "Countries in the ranking chart/tables (overrides config when >0)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	skipMap := flag.Bool("skip-map", false, "Skip the interactive choropleth HTML")
	skipXLSX := flag.Bool("skip-xlsx", false, "Skip the xlsx workbook")
	flag.Parse()

	dataset.SetLogLevel(*logLevel)

	cfg := &types.ReportConfig{}
	if b, err := os.Stat(*configPath); err == nil && !b.IsDir() {
		loaded, err := types.LoadReportConfig(*configPath)
		if err != nil {
			fmt.Printf("[init] load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		dataset.Infof("no config at %s, using defaults", *configPath)
		cfg.Defaults()
	}
	if *indicatorFlag != "" {
		cfg.Indicator = *indicatorFlag
	}
	if *topN > 0 {
		cfg.TopN = *topN
	}

	table, err := dataset.Load(*dataPath)
	if err != nil {
		fmt.Printf("[init] %v\n", err)
		os.Exit(1)
	}
	if cfg.Indicator == "" {
		inds := table.Indicators()
		if len(inds) == 0 {
			fmt.Println("[init] dataset has no usable rows")
			os.Exit(1)
		}
		cfg.Indicator = inds[0]
		dataset.Infof("no indicator configured, defaulting to %q", cfg.Indicator)
	}

	rows := table.IndicatorSubset(cfg.Indicator, cfg.MinYear, cfg.MaxYear)
	if len(rows) == 0 {
		fmt.Printf("[init] indicator %q matched no rows (available: %v)\n", cfg.Indicator, table.Indicators())
		os.Exit(1)
	}

	// Analysis pass: every view below is recomputed from rows, nothing is
	// shared or mutated.
	latest := analysis.LatestPerCountry(rows)
	countries := analysis.SummarizeCountries(rows)
	top, bottom := analysis.TopAndBottom(countries, cfg.TopN)
	regions := analysis.SummarizeRegions(rows)
	gaps := analysis.GenderGaps(rows, cfg.GenderYear)
	econPoints, econFit := analysis.EconomicCorrelation(rows)
	changes := analysis.AnnualChanges(rows)

	focus := cfg.FocusCountries
	if len(focus) == 0 {
		focus = analysis.TopMovers(changes, 5, 2)
		dataset.Debugf("no focus countries configured, picked top movers: %v", focus)
	}
	var focusSeries []charts.CountrySeries
	for _, c := range focus {
		if pts := analysis.TimeSeries(rows, c); len(pts) > 0 {
			focusSeries = append(focusSeries, charts.CountrySeries{Country: c, Points: pts})
		} else {
			dataset.Warnf("focus country %q has no rows for this indicator", c)
		}
	}

	var latestTotals []float64
	for _, o := range latest {
		if o.Sex == types.SexTotal {
			latestTotals = append(latestTotals, o.ObsValue)
		}
	}
	overall := analysis.Describe(latestTotals)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Printf("[init] create out dir: %v\n", err)
		os.Exit(1)
	}

	chartFiles := map[string]string{}
	renderings := []struct {
		key  string
		file string
		fn   func(path string) error
	}{
		{"bar_top", "top_countries.png", func(p string) error {
			return charts.Bar(p, fmt.Sprintf("Top %d countries: %s", len(top), cfg.Indicator), top)
		}},
		{"scatter_gdp", "gdp_scatter.png", func(p string) error {
			return charts.EconScatter(p, "GDP per capita vs latest value", econPoints, econFit)
		}},
		{"boxplot_sex", "sex_boxplot.png", func(p string) error {
			var male, female, total []float64
			for _, o := range latest {
				switch o.Sex {
				case types.SexMale:
					male = append(male, o.ObsValue)
				case types.SexFemale:
					female = append(female, o.ObsValue)
				case types.SexTotal:
					total = append(total, o.ObsValue)
				}
			}
			return charts.SexBoxplot(p, "Latest value by sex", male, female, total)
		}},
		{"timeseries", "trends.png", func(p string) error {
			return charts.TimeSeries(p, "Country trends", focusSeries)
		}},
	}
	if !*skipMap {
		renderings = append(renderings, struct {
			key  string
			file string
			fn   func(path string) error
		}{"choropleth", "choropleth.html", func(p string) error {
			return charts.Choropleth(p, cfg.Indicator, latest)
		}})
	}
	for _, r := range renderings {
		path := filepath.Join(*outDir, r.file)
		if err := r.fn(path); err != nil {
			dataset.Errorf("render %s: %v", r.file, err)
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			chartFiles[r.key] = r.file
		}
	}

	in := &report.Inputs{
		Indicator:   cfg.Indicator,
		LoadStats:   table.Stats,
		Overall:     overall,
		Countries:   countries,
		Top:         top,
		Bottom:      bottom,
		Regions:     regions,
		GenderGaps:  gaps,
		EconPoints:  econPoints,
		EconFit:     econFit,
		Changes:     changes,
		FocusSeries: focusSeries,
		ChartFiles:  chartFiles,
	}
	if err := report.WriteMarkdown(filepath.Join(*outDir, "report.md"), in); err != nil {
		fmt.Printf("[report] %v\n", err)
		os.Exit(1)
	}
	if !*skipXLSX {
		if err := report.WriteWorkbook(filepath.Join(*outDir, "summary.xlsx"), in); err != nil {
			fmt.Printf("[report] %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("[report] indicator=%q countries=%d median=%.1f%% mean=%.1f%% gender_pairs=%d gdp_pairs=%d trend_countries=%d unmapped=%d\n",
		cfg.Indicator, len(countries), overall.Median, overall.Mean, len(gaps), len(econPoints), len(changes), len(table.Stats.UnmappedCountries))
	if econFit != nil {
		fmt.Printf("[report] gdp fit: slope=%+.2f/decade r=%.2f r2=%.2f n=%d\n", econFit.Slope, econFit.R, econFit.R2, econFit.N)
	}
	fmt.Printf("[report] outputs written to %s\n", *outDir)
}
