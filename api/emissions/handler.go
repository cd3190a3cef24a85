// Package emissions exposes the dashboard's data endpoints. The map JSON is
// consumed by the browser-side choropleth; series and breakdown feed both the
// server-rendered charts and external callers.
package emissions

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
)

type mapResponse struct {
	Year   int                `json:"year"`
	Points []dataset.MapPoint `json:"points"`
}

// NewMapHandler returns an HTTP handler exposing choropleth data via
// GET /api/map?year=Y. The latest dataset year is used when no year is given.
func NewMapHandler(store *dataset.Store, sink coremetrics.MetricsSink) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		tbl := store.Get()
		_, latest := tbl.Years()
		year := latest
		if s := r.URL.Query().Get("year"); s != "" {
			y, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "invalid year", http.StatusBadRequest)
				return
			}
			year = y
		}

		start := time.Now()
		pts := tbl.MapPoints(year)
		record(sink, coremetrics.QueryEvent{
			View:     "map",
			Variable: string(dataset.VarCO2),
			Year:     year,
			Rows:     len(pts),
			Duration: time.Since(start),
			Time:     time.Now(),
		})

		writeJSON(w, mapResponse{Year: year, Points: pts})
	})
}

type seriesResponse struct {
	Variable dataset.Variable `json:"variable"`
	Label    string           `json:"label"`
	Points   []dataset.Point  `json:"points"`
}

// NewSeriesHandler returns an HTTP handler exposing time-series data via
// GET /api/series?countries=a,b&variable=v.
func NewSeriesHandler(store *dataset.Store, sink coremetrics.MetricsSink) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		countries := splitCountries(r.URL.Query().Get("countries"))
		variable := dataset.VarCO2
		if s := r.URL.Query().Get("variable"); s != "" {
			v, err := dataset.ParseVariable(s)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			variable = v
		}

		start := time.Now()
		pts := store.Get().FilterCountries(countries).SeriesPoints(variable)
		record(sink, coremetrics.QueryEvent{
			View:      "series",
			Variable:  string(variable),
			Countries: len(countries),
			Rows:      len(pts),
			Duration:  time.Since(start),
			Time:      time.Now(),
		})

		writeJSON(w, seriesResponse{Variable: variable, Label: variable.Label(), Points: pts})
	})
}

// NewBreakdownHandler returns an HTTP handler exposing the long-form fuel
// breakdown via GET /api/breakdown?countries=a,b&year=Y. Year is optional;
// without it all observed years are returned.
func NewBreakdownHandler(store *dataset.Store, sink coremetrics.MetricsSink) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		countries := splitCountries(r.URL.Query().Get("countries"))
		tbl := store.Get().FilterCountries(countries)
		year := 0
		if s := r.URL.Query().Get("year"); s != "" {
			y, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "invalid year", http.StatusBadRequest)
				return
			}
			year = y
			tbl = tbl.FilterYear(y)
		}

		start := time.Now()
		recs := tbl.FuelBreakdown()
		record(sink, coremetrics.QueryEvent{
			View:      "breakdown",
			Year:      year,
			Countries: len(countries),
			Rows:      len(recs),
			Duration:  time.Since(start),
			Time:      time.Now(),
		})

		writeJSON(w, recs)
	})
}

// NewCountriesHandler returns an HTTP handler listing the selectable
// countries via GET /api/countries.
func NewCountriesHandler(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, store.Get().Countries())
	})
}

func splitCountries(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func record(sink coremetrics.MetricsSink, ev coremetrics.QueryEvent) {
	if sink == nil {
		return
	}
	// Metrics failures must not fail the request.
	_ = sink.RecordQuery([]coremetrics.QueryEvent{ev})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
