package emissions

import (
	"net/http"
	"time"

	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/stats"
)

type variableInfo struct {
	Name  dataset.Variable `json:"name"`
	Label string           `json:"label"`
}

type metaResponse struct {
	MinYear   int            `json:"min_year"`
	MaxYear   int            `json:"max_year"`
	Rows      int            `json:"rows"`
	Countries int            `json:"countries"`
	Variables []variableInfo `json:"variables"`
	Source    string         `json:"source"`
	LoadedAt  time.Time      `json:"loaded_at"`
}

// NewMetaHandler returns an HTTP handler describing the loaded dataset via
// GET /api/meta: year range, size and the selectable variables.
func NewMetaHandler(store *dataset.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		tbl := store.Get()
		min, max := tbl.Years()
		vars := make([]variableInfo, 0, len(dataset.Variables()))
		for _, v := range dataset.Variables() {
			vars = append(vars, variableInfo{Name: v, Label: v.Label()})
		}
		writeJSON(w, metaResponse{
			MinYear:   min,
			MaxYear:   max,
			Rows:      tbl.Len(),
			Countries: len(tbl.Countries()),
			Variables: vars,
			Source:    "Our World in Data (OWID)",
			LoadedAt:  store.LoadedAt(),
		})
	})
}

// NewSummaryHandler returns an HTTP handler exposing per-country summary
// statistics via GET /api/summary?countries=a,b.
func NewSummaryHandler(store *dataset.Store, sink coremetrics.MetricsSink) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		countries := splitCountries(r.URL.Query().Get("countries"))
		tbl := store.Get()
		if len(countries) > 0 {
			tbl = tbl.FilterCountries(countries)
		}

		start := time.Now()
		sums := stats.Summarize(tbl)
		record(sink, coremetrics.QueryEvent{
			View:      "summary",
			Countries: len(countries),
			Rows:      len(sums),
			Duration:  time.Since(start),
			Time:      time.Now(),
		})

		writeJSON(w, sums)
	})
}
