package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/nutristats/nutriatlas/src/dataset"
)

// WriteWorkbook writes the xlsx companion to the markdown report: a
// per-country dashboard, the gender gaps, and the annual-change table.
func WriteWorkbook(path string, in *Inputs) error {
	f := excelize.NewFile()
	defer f.Close()

	const dash = "Countries"
	f.SetSheetName("Sheet1", dash)

	headers := []string{"Country", "ISO3", "Region", "Latest (%)", "Latest year",
		"Surveys", "Mean (%)", "Median (%)", "Std", "Min (%)", "Max (%)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(dash, cell, h)
		f.SetColWidth(dash, cell[:1], cell[:1], 16)
	}
	for i, c := range in.Countries {
		row := i + 2
		f.SetCellValue(dash, fmt.Sprintf("A%d", row), c.Country)
		f.SetCellValue(dash, fmt.Sprintf("B%d", row), c.ISO3)
		f.SetCellValue(dash, fmt.Sprintf("C%d", row), c.Region)
		f.SetCellValue(dash, fmt.Sprintf("D%d", row), round1(c.LatestValue))
		f.SetCellValue(dash, fmt.Sprintf("E%d", row), c.LatestYear)
		f.SetCellValue(dash, fmt.Sprintf("F%d", row), c.Stats.N)
		f.SetCellValue(dash, fmt.Sprintf("G%d", row), round1(c.Stats.Mean))
		f.SetCellValue(dash, fmt.Sprintf("H%d", row), round1(c.Stats.Median))
		f.SetCellValue(dash, fmt.Sprintf("I%d", row), round1(c.Stats.Std))
		f.SetCellValue(dash, fmt.Sprintf("J%d", row), round1(c.Stats.Min))
		f.SetCellValue(dash, fmt.Sprintf("K%d", row), round1(c.Stats.Max))
	}

	const gaps = "Gender gaps"
	f.NewSheet(gaps)
	for i, h := range []string{"Country", "Year", "Male (%)", "Female (%)", "Male − Female"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(gaps, cell, h)
		f.SetColWidth(gaps, cell[:1], cell[:1], 16)
	}
	for i, g := range in.GenderGaps {
		row := i + 2
		f.SetCellValue(gaps, fmt.Sprintf("A%d", row), g.Country)
		f.SetCellValue(gaps, fmt.Sprintf("B%d", row), g.Year)
		f.SetCellValue(gaps, fmt.Sprintf("C%d", row), round1(g.Male))
		f.SetCellValue(gaps, fmt.Sprintf("D%d", row), round1(g.Female))
		f.SetCellValue(gaps, fmt.Sprintf("E%d", row), round1(g.Diff))
	}

	const trend = "Annual change"
	f.NewSheet(trend)
	for i, h := range []string{"Country", "First year", "Last year", "First (%)", "Latest (%)", "Change per year"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(trend, cell, h)
		f.SetColWidth(trend, cell[:1], cell[:1], 16)
	}
	for i, c := range in.Changes {
		row := i + 2
		f.SetCellValue(trend, fmt.Sprintf("A%d", row), c.Country)
		f.SetCellValue(trend, fmt.Sprintf("B%d", row), c.FirstYear)
		f.SetCellValue(trend, fmt.Sprintf("C%d", row), c.LastYear)
		f.SetCellValue(trend, fmt.Sprintf("D%d", row), round1(c.FirstValue))
		f.SetCellValue(trend, fmt.Sprintf("E%d", row), round1(c.LastValue))
		f.SetCellValue(trend, fmt.Sprintf("F%d", row), round2(c.PerYear))
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	dataset.Infof("workbook written to %s (%d countries)", path, len(in.Countries))
	return nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
