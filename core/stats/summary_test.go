package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/core/dataset"
)

const summaryCSV = `country,year,iso_code,population,gdp,co2,co2_per_capita,co2_per_gdp,cumulative_co2,coal_co2,oil_co2,gas_co2,share_global_co2,methane
Testland,2000,TST,100,100,10,1.0,0.1,10,1,1,1,2.0,1
Testland,2001,TST,100,100,12,1.2,0.1,22,1,1,1,2.1,1
Testland,2002,TST,100,100,14,1.4,0.1,36,1,1,1,2.2,1
Solostan,2002,SOL,50,50,5,0.5,0.1,5,1,1,1,,1
`

func TestSummarize(t *testing.T) {
	tbl, err := dataset.Load(strings.NewReader(summaryCSV))
	require.NoError(t, err)

	sums := Summarize(tbl)
	require.Len(t, sums, 2)

	solo := sums[0]
	assert.Equal(t, "Solostan", solo.Country)
	assert.Equal(t, 5.0, solo.MeanCO2)
	// Single observation: no trend, and missing share stays zero.
	assert.Equal(t, 0.0, solo.TrendMtPerYear)
	assert.Equal(t, 0.0, solo.LatestShareGlobal)
	assert.Equal(t, 2002, solo.PeakYear)

	test := sums[1]
	assert.Equal(t, "Testland", test.Country)
	assert.InDelta(t, 12.0, test.MeanCO2, 1e-9)
	// Emissions rise by exactly 2 Mt per year in the fixture.
	assert.InDelta(t, 2.0, test.TrendMtPerYear, 1e-9)
	assert.Equal(t, 2002, test.PeakYear)
	assert.Equal(t, 14.0, test.PeakCO2)
	assert.Equal(t, 2002, test.LatestYear)
	assert.InDelta(t, 2.2, test.LatestShareGlobal, 1e-9)
}
