package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/co2dash/core/dataset"
)

const exportCSV = `country,year,iso_code,population,gdp,co2,co2_per_capita,co2_per_gdp,cumulative_co2,coal_co2,oil_co2,gas_co2,share_global_co2
United States,2020,USA,331000000,20900000000000,4710,14.2,0.2,416000,900,2000,1600,13.5
United States,2021,USA,332000000,21000000000000,5000,15.0,0.21,421000,1000,2100,1700,13.7
China,2021,CHN,1412000000,14900000000000,11000,7.8,0.72,246000,7600,1550,850,30.9
`

func loadTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Load(strings.NewReader(exportCSV))
	require.NoError(t, err)
	return tbl
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emissions.xlsx")
	err := WriteFile(path, loadTable(t), []string{"United States", "China"}, dataset.VarCO2)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetEmissions, sheetBreakdown, sheetSummary, sheetCharts}, f.GetSheetList())

	rows, err := f.GetRows(sheetEmissions)
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus three data rows")
	assert.Equal(t, "Country", rows[0][0])
	assert.Equal(t, "China", rows[3][0])

	rows, err = f.GetRows(sheetBreakdown)
	require.NoError(t, err)
	// Three fuels per row of input data.
	assert.Len(t, rows, 10)

	rows, err = f.GetRows(sheetSummary)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWorkbook_EmptySelection(t *testing.T) {
	tbl := loadTable(t)

	// No selection exports everything without the chart sheet.
	f, err := Workbook(tbl, nil, dataset.VarCO2)
	require.NoError(t, err)
	defer f.Close()
	assert.NotContains(t, f.GetSheetList(), sheetCharts)

	_, err = Workbook(tbl, []string{"Atlantis"}, dataset.VarCO2)
	assert.ErrorIs(t, err, dataset.ErrNoData)
}
