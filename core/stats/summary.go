// Package stats computes per-country summaries of the emissions table shown
// in the dashboard's overview section.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/co2dash/core/dataset"
)

// Summary condenses one country's emission history.
type Summary struct {
	Country string `json:"country"`
	// MeanCO2 is the average annual emissions over the observed years.
	MeanCO2 float64 `json:"mean_co2"`
	// TrendMtPerYear is the linear-regression slope of emissions over time.
	TrendMtPerYear float64 `json:"trend_mt_per_year"`
	PeakYear       int     `json:"peak_year"`
	PeakCO2        float64 `json:"peak_co2"`
	LatestYear     int     `json:"latest_year"`
	LatestCO2      float64 `json:"latest_co2"`
	// LatestShareGlobal is the share of global emissions in the latest
	// observed year, NaN-free (0 when the source has no value).
	LatestShareGlobal float64 `json:"latest_share_global"`
}

// Summarize computes a Summary per country in the table, sorted by country
// name. Countries with a single observation get a zero trend.
func Summarize(t *dataset.Table) []Summary {
	byCountry := make(map[string][]dataset.Row)
	for _, r := range t.Rows() {
		byCountry[r.Country] = append(byCountry[r.Country], r)
	}

	out := make([]Summary, 0, len(byCountry))
	for country, rows := range byCountry {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

		years := make([]float64, len(rows))
		co2 := make([]float64, len(rows))
		s := Summary{Country: country, PeakCO2: math.Inf(-1)}
		for i, r := range rows {
			years[i] = float64(r.Year)
			co2[i] = r.CO2
			if r.CO2 > s.PeakCO2 {
				s.PeakCO2 = r.CO2
				s.PeakYear = r.Year
			}
		}
		last := rows[len(rows)-1]
		s.MeanCO2 = stat.Mean(co2, nil)
		s.LatestYear = last.Year
		s.LatestCO2 = last.CO2
		if !math.IsNaN(last.ShareGlobalCO2) {
			s.LatestShareGlobal = last.ShareGlobalCO2
		}
		if len(rows) > 1 {
			_, s.TrendMtPerYear = stat.LinearRegression(years, co2, nil, false)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}
