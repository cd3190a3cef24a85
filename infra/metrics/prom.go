package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
)

// PromSink records dashboard events in Prometheus metrics.
type PromSink struct {
	queries      *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec
	loads        *prometheus.CounterVec
	rows         prometheus.Gauge
	loadedAt     prometheus.Gauge
	requests     *prometheus.HistogramVec
}

// NewPromSink registers dashboard metrics on the default Prometheus registerer.
// The /metrics server is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_queries_total",
		Help: "Total number of evaluated dashboard queries",
	}, []string{"view", "variable"})
	queryLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_duration_seconds",
		Help:    "Time spent filtering the emissions table per view",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_loads_total",
		Help: "Total number of dataset loads by source",
	}, []string{"source"})
	rows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_rows",
		Help: "Number of rows in the cleaned emissions table",
	})
	loadedAt := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_loaded_timestamp_seconds",
		Help: "Unix time of the last successful dataset load",
	})
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by path and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method", "status"})

	if err := register(reg, &queries); err != nil {
		return nil, err
	}
	if err := registerHist(reg, &queryLatency); err != nil {
		return nil, err
	}
	if err := register(reg, &loads); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &rows); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &loadedAt); err != nil {
		return nil, err
	}
	if err := registerHist(reg, &requests); err != nil {
		return nil, err
	}

	return &PromSink{
		queries:      queries,
		queryLatency: queryLatency,
		loads:        loads,
		rows:         rows,
		loadedAt:     loadedAt,
		requests:     requests,
	}, nil
}

func registerGauge(reg prometheus.Registerer, g *prometheus.Gauge) error {
	if err := reg.Register(*g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*g = are.ExistingCollector.(prometheus.Gauge)
			return nil
		}
		return err
	}
	return nil
}

func register(reg prometheus.Registerer, c **prometheus.CounterVec) error {
	if err := reg.Register(*c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*c = are.ExistingCollector.(*prometheus.CounterVec)
			return nil
		}
		return err
	}
	return nil
}

func registerHist(reg prometheus.Registerer, h **prometheus.HistogramVec) error {
	if err := reg.Register(*h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*h = are.ExistingCollector.(*prometheus.HistogramVec)
			return nil
		}
		return err
	}
	return nil
}

// RecordQuery increments the query counter and observes the latency.
func (s *PromSink) RecordQuery(events []coremetrics.QueryEvent) error {
	for _, ev := range events {
		s.queries.WithLabelValues(ev.View, ev.Variable).Inc()
		s.queryLatency.WithLabelValues(ev.View).Observe(ev.Duration.Seconds())
	}
	return nil
}

// RecordDatasetLoad counts the load and updates the row and freshness gauges.
func (s *PromSink) RecordDatasetLoad(ev coremetrics.DatasetLoadEvent) error {
	s.loads.WithLabelValues(ev.Source).Inc()
	s.rows.Set(float64(ev.Rows))
	s.loadedAt.Set(float64(ev.Time.Unix()))
	return nil
}

// RecordRequest observes the request latency.
func (s *PromSink) RecordRequest(ev coremetrics.RequestEvent) error {
	s.requests.WithLabelValues(ev.Path, ev.Method, strconv.Itoa(ev.Status)).Observe(ev.Duration.Seconds())
	return nil
}
