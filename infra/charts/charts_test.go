package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/core/dataset"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestLinePNG(t *testing.T) {
	pts := []dataset.Point{
		{Country: "China", Year: 2019, Value: 10100},
		{Country: "China", Year: 2020, Value: 10660},
		{Country: "United States", Year: 2019, Value: 5100},
		{Country: "United States", Year: 2020, Value: 4710},
	}
	png, err := LinePNG(pts, dataset.VarCO2)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "expected PNG output")
}

func TestLinePNG_Empty(t *testing.T) {
	_, err := LinePNG(nil, dataset.VarCO2)
	assert.Error(t, err)
}

func TestStackedBarPNG(t *testing.T) {
	recs := []dataset.FuelRecord{
		{Country: "China", Year: 2020, Fuel: dataset.FuelCoal, EmissionsMt: 7400},
		{Country: "China", Year: 2020, Fuel: dataset.FuelOil, EmissionsMt: 1500},
		{Country: "China", Year: 2020, Fuel: dataset.FuelGas, EmissionsMt: 800},
		{Country: "India", Year: 2020, Fuel: dataset.FuelCoal, EmissionsMt: 1500},
		// A record from another year must be ignored.
		{Country: "India", Year: 2019, Fuel: dataset.FuelOil, EmissionsMt: 620},
	}
	png, err := StackedBarPNG(recs, 2020)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "expected PNG output")
}

func TestStackedBarPNG_NoData(t *testing.T) {
	_, err := StackedBarPNG(nil, 2020)
	assert.Error(t, err)
}

func TestBase64(t *testing.T) {
	assert.Equal(t, "aGk=", Base64([]byte("hi")))
}
