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

// LinePNG renders one line per country from long-form series points and
// returns the chart as PNG bytes. Points must be ordered by country then year,
// as dataset.SeriesPoints produces them.
func LinePNG(points []dataset.Point, variable dataset.Variable) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("line chart: no points")
	}

	byCountry := make(map[string]plotter.XYs)
	for _, pt := range points {
		byCountry[pt.Country] = append(byCountry[pt.Country], plotter.XY{X: float64(pt.Year), Y: pt.Value})
	}
	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Trend", variable.Label())
	p.X.Label.Text = "Year"
	p.Y.Label.Text = variable.Label()
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	for i, country := range countries {
		line, err := plotter.NewLine(byCountry[country])
		if err != nil {
			return nil, fmt.Errorf("line for %s: %w", country, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(country, line)
	}

	return renderPNG(p)
}
