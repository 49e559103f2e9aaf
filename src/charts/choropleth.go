package charts

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nutristats/nutriatlas/src/dataset"
	"github.com/nutristats/nutriatlas/src/types"
)

// Choropleth writes an interactive world map HTML page shading each mapped
// country by its latest Total-sex value. Countries without an ISO mapping
// never reach this function's input (the dataset loader flags them); as a
// second guard anything without an ISO3 is dropped here too.
func Choropleth(path, title string, latest []types.Observation) error {
	var data []opts.MapData
	for _, o := range ChoroplethInput(latest) {
		info, ok := dataset.LookupCountry(o.Country)
		if !ok {
			continue
		}
		data = append(data, opts.MapData{Name: info.MapLabel(), Value: o.ObsValue})
	}
	if len(data) == 0 {
		dataset.Warnf("choropleth %s: no ISO-mapped countries, skipping", path)
		return nil
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Name < data[j].Name })

	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d countries, latest survey per country", len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}: {c}%"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        100,
			InRange:    &opts.VisualMapInRange{Color: []string{"#fff7ec", "#fc8d59", "#7f0000"}},
		}),
	)
	m.AddSeries("obs_value", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create choropleth %s: %w", path, err)
	}
	defer f.Close()
	if err := m.Render(f); err != nil {
		return fmt.Errorf("render choropleth %s: %w", path, err)
	}
	dataset.Infof("choropleth: %d countries rendered to %s", len(data), path)
	return nil
}

// ChoroplethInput narrows latest-per-country rows to the subset the map
// accepts; exposed separately so the property is testable without
// rendering HTML.
func ChoroplethInput(latest []types.Observation) []types.Observation {
	var out []types.Observation
	for _, o := range latest {
		if o.Sex == types.SexTotal && o.HasISO() {
			out = append(out, o)
		}
	}
	return out
}
