// Package report assembles the narrative outputs: the markdown report with
// prose commentary around the computed numbers, and the xlsx summary
// workbook.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nutristats/nutriatlas/src/analysis"
	"github.com/nutristats/nutriatlas/src/charts"
	"github.com/nutristats/nutriatlas/src/dataset"
)

// Inputs carries everything the writers interpolate into the report. main
// assembles it once after the analysis pass.
type Inputs struct {
	Indicator string
	LoadStats dataset.LoadStats

	Overall   analysis.SummaryStats // across latest-per-country Total values
	Countries []analysis.CountrySummary
	Top       []analysis.CountrySummary
	Bottom    []analysis.CountrySummary
	Regions   []analysis.RegionSummary

	GenderGaps []analysis.GenderGap

	EconPoints []analysis.EconPoint
	EconFit    *analysis.Regression

	Changes     []analysis.AnnualChange
	FocusSeries []charts.CountrySeries

	// Relative chart file names as written next to the report.
	ChartFiles map[string]string
}

// WriteMarkdown renders the full narrative report to path.
func WriteMarkdown(path string, in *Inputs) error {
	var b strings.Builder
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
	}

	w("# %s\n\n", in.Indicator)
	w("_Generated %s from %d observations (%d source rows; %d malformed, %d outside [0,100] dropped)._\n\n",
		time.Now().Format("2 January 2006"), in.LoadStats.Kept, in.LoadStats.TotalRows,
		in.LoadStats.SkippedMalformed, in.LoadStats.SkippedOutOfRange)

	w("## Executive summary\n\n")
	w("- **Countries covered**: %d\n", len(in.Countries))
	w("- **Median (latest per country)**: %.1f%%\n", in.Overall.Median)
	w("- **Mean ± std**: %.1f%% ± %.1f\n", in.Overall.Mean, in.Overall.Std)
	w("- **Range**: %.1f%% (lowest) to %.1f%% (highest)\n", in.Overall.Min, in.Overall.Max)
	if len(in.Top) > 0 && len(in.Bottom) > 0 {
		w("- **Leader**: %s (%.1f%%, %d); **trailing**: %s (%.1f%%, %d)\n",
			in.Top[0].Country, in.Top[0].LatestValue, in.Top[0].LatestYear,
			in.Bottom[0].Country, in.Bottom[0].LatestValue, in.Bottom[0].LatestYear)
	}
	w("\n")

	writeGeographicSection(w, in)
	writeEconomicSection(w, in)
	writeGenderSection(w, in)
	writeTrendSection(w, in)
	writeMapSection(w, in)
	writeDataNotes(w, in)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	dataset.Infof("report written to %s (%d bytes)", path, b.Len())
	return nil
}

type writef func(format string, args ...interface{})

func chartRef(w writef, in *Inputs, key, alt string) {
	if f, ok := in.ChartFiles[key]; ok && f != "" {
		w("![%s](%s)\n\n", alt, f)
	}
}

func writeGeographicSection(w writef, in *Inputs) {
	w("## Geographic comparison\n\n")
	if len(in.Regions) > 0 {
		top := in.Regions[0]
		bot := in.Regions[len(in.Regions)-1]
		w("Across regions the picture is uneven: **%s** leads with a mean of %.1f%% over %d countries, while **%s** trails at %.1f%%.\n\n",
			top.Region, top.Stats.Mean, top.Countries, bot.Region, bot.Stats.Mean)
		w("| Region | Countries | Mean | Median | Std |\n")
		w("|--------|-----------|------|--------|-----|\n")
		for _, r := range in.Regions {
			w("| %s | %d | %.1f%% | %.1f%% | %.1f |\n", r.Region, r.Countries, r.Stats.Mean, r.Stats.Median, r.Stats.Std)
		}
		w("\n")
	}
	chartRef(w, in, "bar_top", "Top countries by latest value")
	if len(in.Top) > 0 {
		w("| Rank | Country | Latest | Year | Mean (all years) |\n")
		w("|------|---------|--------|------|------------------|\n")
		for i, c := range in.Top {
			w("| %d | %s | %.1f%% | %d | %.1f%% |\n", i+1, c.Country, c.LatestValue, c.LatestYear, c.Stats.Mean)
		}
		w("\n")
	}
}

func writeEconomicSection(w writef, in *Inputs) {
	w("## Economic correlation\n\n")
	if len(in.EconPoints) == 0 {
		w("No GDP per capita covariate was present in the dataset, so this section is omitted.\n\n")
		return
	}
	if in.EconFit != nil {
		direction := "rises"
		if in.EconFit.Slope < 0 {
			direction = "falls"
		}
		strength := correlationWord(in.EconFit.R)
		w("Across the %d countries with a GDP covariate, the indicator %s with income: a tenfold increase in GDP per capita shifts the expected value by %+.1f points (±%.1f at 95%%). The Pearson correlation is %.2f (%s), and the fit explains %.0f%% of cross-country variance.\n\n",
			in.EconFit.N, direction, in.EconFit.Slope, in.EconFit.SlopeCI95, in.EconFit.R, strength, in.EconFit.R2*100)
	} else {
		w("Too few GDP-covered countries to fit a regression (%d); the scatter below is descriptive only.\n\n", len(in.EconPoints))
	}
	chartRef(w, in, "scatter_gdp", "GDP per capita vs indicator")
}

func correlationWord(r float64) string {
	switch a := r; {
	case a >= 0.7 || a <= -0.7:
		return "a strong association"
	case a >= 0.4 || a <= -0.4:
		return "a moderate association"
	case a >= 0.2 || a <= -0.2:
		return "a weak association"
	default:
		return "essentially no association"
	}
}

func writeGenderSection(w writef, in *Inputs) {
	w("## Gender comparison\n\n")
	if len(in.GenderGaps) == 0 {
		w("No country reports both sexes for a common year, so no gender comparison is possible.\n\n")
		return
	}
	wider := 0
	for _, g := range in.GenderGaps {
		if g.Diff > 0 {
			wider++
		}
	}
	w("Of %d countries with both sexes surveyed, boys score higher in %d and girls in %d. Differences are mostly small; the largest gaps:\n\n",
		len(in.GenderGaps), wider, len(in.GenderGaps)-wider)
	w("| Country | Year | Male | Female | M − F |\n")
	w("|---------|------|------|--------|-------|\n")
	n := len(in.GenderGaps)
	if n > 10 {
		n = 10
	}
	for _, g := range in.GenderGaps[:n] {
		w("| %s | %d | %.1f%% | %.1f%% | %+.1f |\n", g.Country, g.Year, g.Male, g.Female, g.Diff)
	}
	w("\n")
	chartRef(w, in, "boxplot_sex", "Distribution by sex")
}

func writeTrendSection(w writef, in *Inputs) {
	w("## Trends over time\n\n")
	if len(in.Changes) == 0 {
		w("Every country has a single survey year, so annual change cannot be computed.\n\n")
		return
	}
	riser := in.Changes[0]
	faller := in.Changes[len(in.Changes)-1]
	w("Among the %d countries with repeated surveys, **%s** improved fastest (%+.2f points/year over %d–%d) and **%s** moved most negatively (%+.2f points/year).\n\n",
		len(in.Changes), riser.Country, riser.PerYear, riser.FirstYear, riser.LastYear, faller.Country, faller.PerYear)
	chartRef(w, in, "timeseries", "Country trends")
	w("| Country | Span | First | Latest | Change/yr |\n")
	w("|---------|------|-------|--------|-----------|\n")
	n := len(in.Changes)
	if n > 10 {
		n = 10
	}
	for _, c := range in.Changes[:n] {
		w("| %s | %d–%d | %.1f%% | %.1f%% | %+.2f |\n", c.Country, c.FirstYear, c.LastYear, c.FirstValue, c.LastValue, c.PerYear)
	}
	w("\n")
}

func writeMapSection(w writef, in *Inputs) {
	w("## World map\n\n")
	if f, ok := in.ChartFiles["choropleth"]; ok && f != "" {
		w("An interactive choropleth of the latest value per country is written alongside this report: [%s](%s).\n\n", f, f)
	}
	if len(in.LoadStats.UnmappedCountries) > 0 {
		w("_%d source areas have no ISO 3166 mapping and are shown in tables but not on the map: %s._\n\n",
			len(in.LoadStats.UnmappedCountries), strings.Join(in.LoadStats.UnmappedCountries, ", "))
	}
}

func writeDataNotes(w writef, in *Inputs) {
	w("## Data notes\n\n")
	w("- Observations are percentages and validated to [0,100] at load; out-of-range rows are dropped.\n")
	w("- \"Latest per country\" keeps the most recent survey year per (country, sex); duplicates on (country, sex, year) are removed at ingestion, first row wins.\n")
	w("- Annual change requires at least two distinct survey years; single-year countries are excluded from trend rankings.\n")
	w("- %s\n", charts.Footnote)
}
