// Package export writes a snapshot of the emissions table to an Excel
// workbook: one sheet per view of the data plus the rendered charts.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/co2dash/core/dataset"
	"github.com/kilianp07/co2dash/core/stats"
	"github.com/kilianp07/co2dash/infra/charts"
)

const (
	sheetEmissions = "Emissions"
	sheetBreakdown = "Fuel_Breakdown"
	sheetSummary   = "Summary"
	sheetCharts    = "Charts"
)

// Workbook builds an xlsx file for the given country selection. When the
// selection is empty the whole table is exported and the chart sheet is
// skipped.
func Workbook(tbl *dataset.Table, countries []string, variable dataset.Variable) (*excelize.File, error) {
	selected := tbl
	if len(countries) > 0 {
		selected = tbl.FilterCountries(countries)
	}
	if selected.Len() == 0 {
		return nil, dataset.ErrNoData
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetEmissions)

	if err := writeEmissions(f, selected); err != nil {
		return nil, err
	}
	if err := writeBreakdown(f, selected); err != nil {
		return nil, err
	}
	if err := writeSummary(f, selected); err != nil {
		return nil, err
	}
	if len(countries) > 0 {
		if err := writeCharts(f, selected, variable); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(path string, tbl *dataset.Table, countries []string, variable dataset.Variable) error {
	f, err := Workbook(tbl, countries, variable)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeEmissions(f *excelize.File, tbl *dataset.Table) error {
	headers := []string{"Country", "ISO Code", "Year", "CO2 (Mt)", "CO2 per Capita (t)",
		"Population", "GDP", "Cumulative CO2 (Mt)", "Share of Global CO2 (%)"}
	if err := writeHeader(f, sheetEmissions, headers); err != nil {
		return err
	}
	for i, r := range tbl.Rows() {
		row := i + 2
		setRow(f, sheetEmissions, row,
			r.Country, r.ISOCode, r.Year, r.CO2, r.CO2PerCapita,
			r.Population, r.GDP, r.CumulativeCO2, r.ShareGlobalCO2)
	}
	return nil
}

func writeBreakdown(f *excelize.File, tbl *dataset.Table) error {
	if _, err := f.NewSheet(sheetBreakdown); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := writeHeader(f, sheetBreakdown, []string{"Country", "Year", "Fuel", "Emissions (Mt)"}); err != nil {
		return err
	}
	for i, rec := range tbl.FuelBreakdown() {
		setRow(f, sheetBreakdown, i+2, rec.Country, rec.Year, string(rec.Fuel), rec.EmissionsMt)
	}
	return nil
}

func writeSummary(f *excelize.File, tbl *dataset.Table) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	headers := []string{"Country", "Mean CO2 (Mt)", "Trend (Mt/year)", "Peak Year",
		"Peak CO2 (Mt)", "Latest Year", "Latest CO2 (Mt)", "Latest Share of Global (%)"}
	if err := writeHeader(f, sheetSummary, headers); err != nil {
		return err
	}
	for i, s := range stats.Summarize(tbl) {
		setRow(f, sheetSummary, i+2,
			s.Country, s.MeanCO2, s.TrendMtPerYear, s.PeakYear,
			s.PeakCO2, s.LatestYear, s.LatestCO2, s.LatestShareGlobal)
	}
	return nil
}

func writeCharts(f *excelize.File, tbl *dataset.Table, variable dataset.Variable) error {
	pts := tbl.SeriesPoints(variable)
	recs := tbl.FuelBreakdown()
	if len(pts) == 0 && len(recs) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetCharts); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if len(pts) > 0 {
		png, err := charts.LinePNG(pts, variable)
		if err != nil {
			return fmt.Errorf("line chart: %w", err)
		}
		if err := addPNG(f, "A1", png); err != nil {
			return err
		}
	}
	if len(recs) > 0 {
		_, maxYear := tbl.Years()
		png, err := charts.StackedBarPNG(recs, maxYear)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		if err := addPNG(f, "A28", png); err != nil {
			return err
		}
	}
	return nil
}

func addPNG(f *excelize.File, cell string, png []byte) error {
	pic := &excelize.Picture{Extension: ".png", File: png}
	if err := f.AddPictureFromBytes(sheetCharts, cell, pic); err != nil {
		return fmt.Errorf("add picture: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("header column: %w", err)
		}
		f.SetCellValue(sheet, col+"1", h)
		f.SetColWidth(sheet, col, col, 18)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}
