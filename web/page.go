package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/stats"
	"github.com/kilianp07/co2dash/infra/charts"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type countryOption struct {
	Name     string
	Selected bool
}

type variableOption struct {
	Name     dataset.Variable
	Label    string
	Selected bool
}

type pageData struct {
	Year    int
	MinYear int
	MaxYear int

	Countries []countryOption
	Variables []variableOption

	Variable      dataset.Variable
	VariableLabel string

	LineChart template.URL
	BarChart  template.URL

	MapWarning  string
	LineWarning string
	BarWarning  string

	Summaries []stats.Summary
	Source    string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tbl := s.store.Get()
	minYear, maxYear := tbl.Years()
	q := r.URL.Query()

	year := maxYear
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = y
	}

	// A clean landing gets the configured defaults. Once the form has been
	// submitted the user's (possibly empty) selection wins.
	countries := q["country"]
	if len(countries) == 0 && !q.Has("year") {
		countries = s.cfg.DefaultCountries
	}

	variable := dataset.Variable(s.cfg.DefaultVariable)
	if v := q.Get("variable"); v != "" {
		parsed, err := dataset.ParseVariable(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		variable = parsed
	}

	start := time.Now()
	selected := tbl.FilterCountries(countries)
	data := pageData{
		Year:          year,
		MinYear:       minYear,
		MaxYear:       maxYear,
		Variable:      variable,
		VariableLabel: variable.Label(),
		Summaries:     stats.Summarize(selected),
		Source:        "Our World in Data (OWID)",
	}

	isSelected := make(map[string]bool, len(countries))
	for _, c := range countries {
		isSelected[c] = true
	}
	for _, c := range tbl.Countries() {
		data.Countries = append(data.Countries, countryOption{Name: c, Selected: isSelected[c]})
	}
	for _, v := range dataset.Variables() {
		data.Variables = append(data.Variables, variableOption{Name: v, Label: v.Label(), Selected: v == variable})
	}

	if len(tbl.MapPoints(year)) == 0 {
		data.MapWarning = fmt.Sprintf("No CO₂ data available for the year %d.", year)
	}

	pts := selected.SeriesPoints(variable)
	if len(pts) == 0 {
		data.LineWarning = "Select one or more countries to view the time-series trend."
	} else {
		png, err := s.cachedChart(lineKey(countries, variable), func() ([]byte, error) {
			return charts.LinePNG(pts, variable)
		})
		if err != nil {
			s.log.Errorf("line chart: %v", err)
			data.LineWarning = "The time-series chart could not be rendered."
		} else {
			data.LineChart = pngURL(png)
		}
	}

	recs := selected.FuelBreakdown()
	if len(recs) == 0 {
		data.BarWarning = "No fuel breakdown available for the selected countries."
	} else {
		png, err := s.cachedChart(barKey(countries, year), func() ([]byte, error) {
			return charts.StackedBarPNG(recs, year)
		})
		if err != nil {
			data.BarWarning = fmt.Sprintf("No fuel breakdown available for %d.", year)
		} else {
			data.BarChart = pngURL(png)
		}
	}

	if s.sink != nil {
		_ = s.sink.RecordQuery([]coremetrics.QueryEvent{{
			View:      "dashboard",
			Variable:  string(variable),
			Year:      year,
			Countries: len(countries),
			Rows:      selected.Len(),
			Duration:  time.Since(start),
			Time:      time.Now(),
		}})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "dashboard.html.tmpl", data); err != nil {
		s.log.Errorf("render dashboard: %v", err)
	}
}

func pngURL(png []byte) template.URL {
	return template.URL("data:image/png;base64," + charts.Base64(png))
}

func lineKey(countries []string, v dataset.Variable) string {
	c := append([]string(nil), countries...)
	sort.Strings(c)
	return "line|" + string(v) + "|" + strings.Join(c, ",")
}

func barKey(countries []string, year int) string {
	c := append([]string(nil), countries...)
	sort.Strings(c)
	return fmt.Sprintf("bar|%d|%s", year, strings.Join(c, ","))
}
