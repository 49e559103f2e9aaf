// Package charts renders the report figures. Static PNGs (ranking bars,
// GDP scatter, time series) use go-chart; the sex boxplot uses gonum/plot;
// the world choropleth is an interactive echarts HTML page. Renderers
// degrade gracefully: degenerate input produces a logged skip or a blank
// image, never a crash.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nutristats/nutriatlas/src/analysis"
	"github.com/nutristats/nutriatlas/src/dataset"
)

// Footnote is stamped onto every PNG so the figures stay attributable when
// copied out of the report.
const Footnote = "Source: UNICEF childhood nutrition indicators"

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	return img
}

func writePNG(img image.Image, path string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// renderToImage renders ch to a decoded image, falling back to a blank
// canvas on render errors so one bad section never sinks the whole report.
func renderToImage(ch chart.Chart) image.Image {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		dataset.Warnf("chart %q render error: %v; emitting blank image", ch.Title, err)
		return blank(ch.Width, ch.Height)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		dataset.Warnf("chart %q decode error: %v; emitting blank image", ch.Title, err)
		return blank(ch.Width, ch.Height)
	}
	return img
}

// Bar renders the country ranking bar chart (latest Total-sex values).
func Bar(path, title string, summaries []analysis.CountrySummary) error {
	if len(summaries) == 0 {
		dataset.Warnf("bar chart %s: no countries to plot, skipping", path)
		return nil
	}
	bars := make([]chart.Value, 0, len(summaries))
	maxV := 0.0
	for _, s := range summaries {
		bars = append(bars, chart.Value{Value: s.LatestValue, Label: s.Country})
		if s.LatestValue > maxV {
			maxV = s.LatestValue
		}
	}
	_, nMax := niceAxisBounds(0, math.Max(maxV, 1))
	if nMax > 100 {
		nMax = 100
	}
	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 48}},
		Width:      60*len(bars) + 120,
		Height:     480,
		BarWidth:   42,
		Bars:       bars,
		YAxis: chart.YAxis{
			Name:  "obs_value (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: nMax},
			Ticks: niceTicks(0, nMax, 6),
		},
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("bar chart render: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("bar chart decode: %w", err)
	}
	return writePNG(stampFootnote(img, Footnote), path)
}

// EconScatter renders GDP per capita (log10 axis) against the latest
// indicator value, with the fitted regression line overlaid when present.
func EconScatter(path, title string, points []analysis.EconPoint, reg *analysis.Regression) error {
	if len(points) == 0 {
		dataset.Warnf("scatter %s: no GDP pairs, skipping", path)
		return nil
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	for i, p := range points {
		xs[i] = math.Log10(p.GDP)
		ys[i] = p.Value
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
	}
	if maxX <= minX {
		maxX = minX + 0.1
	}

	series := []chart.Series{
		chart.ContinuousSeries{Name: "Countries", XValues: xs, YValues: ys, Style: pointStyle(chart.ColorBlue)},
	}
	if reg != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Fit (r²=%.2f)", reg.R2),
			XValues: []float64{minX, maxX},
			YValues: []float64{reg.Predict(minX), reg.Predict(maxX)},
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorRed},
		})
	}

	// Dollar ticks at whole log10 exponents ($100, $1k, $10k, ...).
	var xTicks []chart.Tick
	for e := math.Floor(minX); e <= math.Ceil(maxX); e++ {
		xTicks = append(xTicks, chart.Tick{Value: e, Label: dollarLabel(e)})
	}

	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 36}},
		Width:      900,
		Height:     560,
		XAxis: chart.XAxis{
			Name:  "GDP per capita (log scale)",
			Ticks: xTicks,
			Range: &chart.ContinuousRange{Min: math.Floor(minX), Max: math.Ceil(maxX)},
		},
		YAxis: chart.YAxis{
			Name:  "obs_value (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			Ticks: niceTicks(0, 100, 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(stampFootnote(renderToImage(ch), Footnote), path)
}

func dollarLabel(exp float64) string {
	v := math.Pow(10, exp)
	switch {
	case v >= 1000:
		return fmt.Sprintf("$%.0fk", v/1000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// CountrySeries names one time-series line on the trends chart.
type CountrySeries struct {
	Country string
	Points  []analysis.SeriesPoint
}

// TimeSeries renders the per-country trend lines over survey years.
// Single-point series are padded by one year so go-chart accepts them,
// mirroring how sparse batches are handled elsewhere.
func TimeSeries(path, title string, series []CountrySeries) error {
	var plotted []chart.Series
	minYear, maxYear := math.MaxInt32, 0
	for i, cs := range series {
		if len(cs.Points) == 0 {
			continue
		}
		xs := make([]float64, len(cs.Points))
		ys := make([]float64, len(cs.Points))
		for j, p := range cs.Points {
			xs[j] = float64(p.Year)
			ys[j] = p.Value
			if p.Year < minYear {
				minYear = p.Year
			}
			if p.Year > maxYear {
				maxYear = p.Year
			}
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		col := palette[i%len(palette)]
		plotted = append(plotted, chart.ContinuousSeries{
			Name:    cs.Country,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: col, DotWidth: 4, DotColor: col},
		})
	}
	if len(plotted) == 0 {
		dataset.Warnf("time series %s: nothing to plot, skipping", path)
		return nil
	}
	maxV := 0.0
	for _, s := range plotted {
		for _, v := range s.(chart.ContinuousSeries).YValues {
			if v > maxV {
				maxV = v
			}
		}
	}
	_, nMax := niceAxisBounds(0, math.Max(maxV, 1))
	if nMax > 100 {
		nMax = 100
	}
	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 36}},
		Width:      900,
		Height:     520,
		XAxis: chart.XAxis{
			Name:  "Survey year",
			Ticks: yearTicks(minYear, maxYear),
			Range: &chart.ContinuousRange{Min: float64(minYear) - 0.5, Max: float64(maxYear) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "obs_value (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: nMax},
			Ticks: niceTicks(0, nMax, 6),
		},
		Series: plotted,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(stampFootnote(renderToImage(ch), Footnote), path)
}
