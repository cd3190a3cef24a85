package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixture carries an extra column (methane) and every row shape the
// cleaning step must handle: aggregate regions, missing iso codes and missing
// required values.
const fixtureCSV = `country,year,iso_code,population,gdp,co2,co2_per_capita,co2_per_gdp,cumulative_co2,coal_co2,oil_co2,gas_co2,share_global_co2,methane
United States,2020,USA,331000000,20900000000000,4710,14.2,0.2,416000,900,2000,1600,13.5,600
United States,2021,USA,332000000,21000000000000,5000,15.0,0.21,421000,1000,2100,1700,13.7,610
China,2020,CHN,1410000000,14700000000000,10660,7.6,0.7,235000,7400,1500,800,30.6,1200
France,2020,FRA,67000000,2600000000000,277,4.1,0.1,38000,20,110,,0.8,60
World,2020,OWID_WRL,7800000000,,34810,4.5,,1700000,14000,11000,7500,100,9000
Africa,2020,,1300000000,,1400,1.0,,45000,500,600,300,4.0,400
India,2020,IND,1380000000,,2440,1.8,,55000,1500,600,140,7.0,700
Utopia,2020,UTO,1000,10,,0.5,,10,1,1,1,0.0,1
Dystopia,2020,DYS,1000,10,5,,,10,1,1,1,0.0,1
`

func loadFixture(t *testing.T) *Table {
	t.Helper()
	tbl, err := Load(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	return tbl
}

func TestLoad_Cleaning(t *testing.T) {
	tbl := loadFixture(t)
	// World is denylisted, Africa lacks an iso code, Utopia lacks co2 and
	// Dystopia lacks co2_per_capita.
	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, []string{"China", "France", "India", "United States"}, tbl.Countries())
	min, max := tbl.Years()
	assert.Equal(t, 2020, min)
	assert.Equal(t, 2021, max)
}

func TestLoad_MissingColumn(t *testing.T) {
	csv := "country,year,iso_code\nFrance,2020,FRA\n"
	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestLoad_NoUsableRows(t *testing.T) {
	csv := fixtureCSV[:strings.Index(fixtureCSV, "\n")+1] +
		"World,2020,OWID_WRL,1,1,1,1,1,1,1,1,1,1,1\n"
	_, err := Load(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFilterYear(t *testing.T) {
	tbl := loadFixture(t)
	assert.Equal(t, 1, tbl.FilterYear(2021).Len())
	assert.Equal(t, 4, tbl.FilterYear(2020).Len())
	// An empty year slice is valid, not an error.
	assert.Equal(t, 0, tbl.FilterYear(1900).Len())
}

func TestFilterCountries(t *testing.T) {
	tbl := loadFixture(t)
	got := tbl.FilterCountries([]string{"China", "France"})
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, []string{"China", "France"}, got.Countries())
	assert.Equal(t, 0, tbl.FilterCountries(nil).Len())
}

func TestMapPoints_SortedByEmissions(t *testing.T) {
	tbl := loadFixture(t)
	pts := tbl.MapPoints(2020)
	require.Len(t, pts, 4)
	assert.Equal(t, "CHN", pts[0].ISOCode)
	assert.Equal(t, "USA", pts[1].ISOCode)
	assert.Equal(t, "IND", pts[2].ISOCode)
	assert.Equal(t, "FRA", pts[3].ISOCode)
}

func TestSeriesPoints_SkipsMissing(t *testing.T) {
	tbl := loadFixture(t)
	pts := tbl.FilterCountries([]string{"India", "France"}).SeriesPoints(VarGDP)
	// India has no GDP observation.
	require.Len(t, pts, 1)
	assert.Equal(t, "France", pts[0].Country)
	assert.Equal(t, 2020, pts[0].Year)

	co2 := tbl.FilterCountries([]string{"United States"}).SeriesPoints(VarCO2)
	require.Len(t, co2, 2)
	assert.Equal(t, 2020, co2[0].Year)
	assert.Equal(t, 2021, co2[1].Year)
	assert.Equal(t, 4710.0, co2[0].Value)
}

func TestFuelBreakdown_LongForm(t *testing.T) {
	tbl := loadFixture(t)
	recs := tbl.FilterCountries([]string{"France"}).FuelBreakdown()
	// France is missing gas_co2, so only coal and oil survive the reshape.
	require.Len(t, recs, 2)
	assert.Equal(t, FuelCoal, recs[0].Fuel)
	assert.Equal(t, 20.0, recs[0].EmissionsMt)
	assert.Equal(t, FuelOil, recs[1].Fuel)

	china := tbl.FilterCountries([]string{"China"}).FuelBreakdown()
	require.Len(t, china, 3)
	for _, r := range china {
		assert.Equal(t, "China", r.Country)
		assert.Equal(t, 2020, r.Year)
	}
}

func TestParseVariable(t *testing.T) {
	v, err := ParseVariable("co2_per_capita")
	require.NoError(t, err)
	assert.Equal(t, VarCO2PerCapita, v)
	assert.NotEmpty(t, v.Label())

	_, err = ParseVariable("methane")
	assert.Error(t, err)
}

func TestRowValue(t *testing.T) {
	r := Row{CO2: 1, Population: 2, GDP: 3, ShareGlobalCO2: 4}
	assert.Equal(t, 1.0, r.Value(VarCO2))
	assert.Equal(t, 2.0, r.Value(VarPopulation))
	assert.Equal(t, 3.0, r.Value(VarGDP))
	assert.Equal(t, 4.0, r.Value(VarShareGlobalCO2))
}
