package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nutristats/nutriatlas/src/dataset"
)

// SexBoxplot renders the obs_value distribution per sex as side-by-side
// boxplots. Groups with no data are skipped but keep their axis slot so
// the labels stay aligned.
func SexBoxplot(path, title string, male, female, total []float64) error {
	if len(male) == 0 && len(female) == 0 && len(total) == 0 {
		dataset.Warnf("boxplot %s: no values at all, skipping", path)
		return nil
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "obs_value (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	w := vg.Points(48)
	groups := []struct {
		label string
		vals  []float64
	}{
		{"Male", male},
		{"Female", female},
		{"Total", total},
	}
	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.label
		if len(g.vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(g.vals))
		if err != nil {
			return fmt.Errorf("boxplot %s group %s: %w", path, g.label, err)
		}
		p.Add(box)
	}
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save boxplot %s: %w", path, err)
	}
	return nil
}
