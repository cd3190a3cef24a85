// Package dataset loads the OWID national CO2 emissions table and exposes the
// filter and reshape operations the dashboard views are built from: exact-year
// filtering for the map, country-set filtering for the time series, and a
// long-form fuel breakdown for the stacked bar chart.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Columns is the subset of OWID columns the dashboard uses, in frame order.
var Columns = []string{
	"country",
	"iso_code",
	"year",
	"co2",
	"co2_per_capita",
	"population",
	"gdp",
	"co2_per_gdp",
	"cumulative_co2",
	"coal_co2",
	"oil_co2",
	"gas_co2",
	"share_global_co2",
}

// ErrNoData is returned when cleaning leaves no usable rows.
var ErrNoData = errors.New("dataset: no usable rows after cleaning")

// Table wraps the cleaned emissions dataframe.
type Table struct {
	df dataframe.DataFrame
}

// Load parses the raw OWID CSV and cleans it: rows missing co2,
// co2_per_capita, year or iso_code are dropped, aggregate regions are
// excluded, and only the dashboard columns are kept.
func Load(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DefaultType(series.Float),
		dataframe.WithTypes(map[string]series.Type{
			"country":  series.String,
			"iso_code": series.String,
		}),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("read csv: %w", df.Error())
	}
	have := make(map[string]bool, len(df.Names()))
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, c := range Columns {
		if !have[c] {
			return nil, fmt.Errorf("dataset: missing column %q", c)
		}
	}
	df = df.Select(Columns)
	if df.Error() != nil {
		return nil, fmt.Errorf("select columns: %w", df.Error())
	}

	rows := make([]Row, 0, df.Nrow())
	for _, m := range df.Maps() {
		row, ok := rowFromMap(m)
		if !ok || IsAggregateRegion(row.Country) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	clean := dataframe.LoadStructs(rows)
	if clean.Error() != nil {
		return nil, fmt.Errorf("rebuild frame: %w", clean.Error())
	}
	return &Table{df: clean}, nil
}

// Len returns the number of rows in the table.
func (t *Table) Len() int { return t.df.Nrow() }

// Rows decodes the table into typed rows.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, t.df.Nrow())
	for _, m := range t.df.Maps() {
		r, _ := rowFromMap(m)
		rows = append(rows, r)
	}
	return rows
}

// FilterYear keeps rows matching the year exactly. An empty result is valid:
// the map view shows a warning instead of failing.
func (t *Table) FilterYear(year int) *Table {
	return &Table{df: t.df.Filter(dataframe.F{Colname: "year", Comparator: series.Eq, Comparando: year})}
}

// FilterCountries keeps rows whose country is in the given set. An empty set
// yields an empty table.
func (t *Table) FilterCountries(names []string) *Table {
	return &Table{df: t.df.Filter(dataframe.F{Colname: "country", Comparator: series.In, Comparando: names})}
}

// Countries returns the sorted unique country names.
func (t *Table) Countries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range t.df.Col("country").Records() {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Years returns the dataset year range. The latest year is the map default.
func (t *Table) Years() (min, max int) {
	if t.Len() == 0 {
		return 0, 0
	}
	col := t.df.Col("year")
	return int(col.Min()), int(col.Max())
}

// MapPoints returns the choropleth input for the given year, sorted by
// descending emissions.
func (t *Table) MapPoints(year int) []MapPoint {
	rows := t.FilterYear(year).Rows()
	pts := make([]MapPoint, 0, len(rows))
	for _, r := range rows {
		pts = append(pts, MapPoint{ISOCode: r.ISOCode, Country: r.Country, CO2: r.CO2})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].CO2 > pts[j].CO2 })
	return pts
}

// SeriesPoints projects the table onto (country, year, value) for the
// selected variable, skipping missing observations. Points are ordered by
// country then year so chart series come out contiguous.
func (t *Table) SeriesPoints(v Variable) []Point {
	rows := t.Rows()
	pts := make([]Point, 0, len(rows))
	for _, r := range rows {
		val := r.Value(v)
		if math.IsNaN(val) {
			continue
		}
		pts = append(pts, Point{Country: r.Country, Year: r.Year, Value: val})
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Country != pts[j].Country {
			return pts[i].Country < pts[j].Country
		}
		return pts[i].Year < pts[j].Year
	})
	return pts
}

// FuelBreakdown reshapes the coal/oil/gas columns into long form keyed by
// (country, year, fuel). Missing per-fuel observations are skipped.
func (t *Table) FuelBreakdown() []FuelRecord {
	rows := t.Rows()
	recs := make([]FuelRecord, 0, 3*len(rows))
	for _, r := range rows {
		for _, f := range Fuels() {
			var val float64
			switch f {
			case FuelCoal:
				val = r.CoalCO2
			case FuelOil:
				val = r.OilCO2
			case FuelGas:
				val = r.GasCO2
			}
			if math.IsNaN(val) {
				continue
			}
			recs = append(recs, FuelRecord{Country: r.Country, Year: r.Year, Fuel: f, EmissionsMt: val})
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Country != recs[j].Country {
			return recs[i].Country < recs[j].Country
		}
		if recs[i].Year != recs[j].Year {
			return recs[i].Year < recs[j].Year
		}
		return recs[i].Fuel < recs[j].Fuel
	})
	return recs
}

func rowFromMap(m map[string]interface{}) (Row, bool) {
	r := Row{
		Country:        stringVal(m, "country"),
		ISOCode:        stringVal(m, "iso_code"),
		CO2:            floatVal(m, "co2"),
		CO2PerCapita:   floatVal(m, "co2_per_capita"),
		Population:     floatVal(m, "population"),
		GDP:            floatVal(m, "gdp"),
		CO2PerGDP:      floatVal(m, "co2_per_gdp"),
		CumulativeCO2:  floatVal(m, "cumulative_co2"),
		CoalCO2:        floatVal(m, "coal_co2"),
		OilCO2:         floatVal(m, "oil_co2"),
		GasCO2:         floatVal(m, "gas_co2"),
		ShareGlobalCO2: floatVal(m, "share_global_co2"),
	}
	year := floatVal(m, "year")
	if math.IsNaN(year) {
		return r, false
	}
	r.Year = int(year)
	if math.IsNaN(r.CO2) || math.IsNaN(r.CO2PerCapita) {
		return r, false
	}
	if r.Country == "" || r.ISOCode == "" || r.ISOCode == "NaN" {
		return r, false
	}
	return r, true
}

func floatVal(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return math.NaN()
}

func stringVal(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
