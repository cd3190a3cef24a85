package charts

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/kilianp07/co2dash/core/dataset"
)

// StackedBarPNG renders the fuel breakdown for one year as a stacked bar
// chart, one bar per country with coal/oil/gas stacked. Records for other
// years are ignored.
func StackedBarPNG(recs []dataset.FuelRecord, year int) ([]byte, error) {
	// (country, fuel) -> emissions for the requested year
	type key struct {
		country string
		fuel    dataset.Fuel
	}
	values := make(map[key]float64)
	seen := make(map[string]bool)
	var countries []string
	for _, r := range recs {
		if r.Year != year {
			continue
		}
		values[key{r.Country, r.Fuel}] = r.EmissionsMt
		if !seen[r.Country] {
			seen[r.Country] = true
			countries = append(countries, r.Country)
		}
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("stacked bar: no fuel data for %d", year)
	}
	sort.Strings(countries)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Emissions by Fuel in %d", year)
	p.Y.Label.Text = "CO₂ Emissions (Million Tonnes)"
	p.NominalX(countries...)

	var prev *plotter.BarChart
	for i, fuel := range dataset.Fuels() {
		vals := make(plotter.Values, len(countries))
		for j, c := range countries {
			vals[j] = values[key{c, fuel}]
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(30))
		if err != nil {
			return nil, fmt.Errorf("bars for %s: %w", fuel, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(string(fuel), bars)
		prev = bars
	}
	p.Legend.Top = true

	return renderPNG(p)
}
