// Package web serves the dashboard page and wires the API handlers onto one
// mux. Line and bar charts are rendered server-side and cached until the
// dataset is reloaded; the choropleth is drawn in the browser from /api/map.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/co2dash/api/admin"
	"github.com/kilianp07/co2dash/api/emissions"
	"github.com/kilianp07/co2dash/config"
	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/internal/eventbus"
)

// Server renders the dashboard and exposes the data API.
type Server struct {
	cfg      config.ServerConfig
	store    *dataset.Store
	sink     coremetrics.MetricsSink
	reloader admin.Reloader
	bus      eventbus.EventBus
	log      logger.Logger
	tmpl     *template.Template

	mu         sync.Mutex
	chartCache map[string][]byte
}

// New creates a Server. The reloader and bus may be nil; the reload endpoint
// and cache invalidation are disabled accordingly.
func New(cfg config.ServerConfig, store *dataset.Store, sink coremetrics.MetricsSink, reloader admin.Reloader, bus eventbus.EventBus) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		cfg:        cfg,
		store:      store,
		sink:       sink,
		reloader:   reloader,
		bus:        bus,
		log:        logger.New("web"),
		tmpl:       tmpl,
		chartCache: make(map[string][]byte),
	}, nil
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))
	mux.Handle("/api/map", emissions.NewMapHandler(s.store, s.sink))
	mux.Handle("/api/series", emissions.NewSeriesHandler(s.store, s.sink))
	mux.Handle("/api/breakdown", emissions.NewBreakdownHandler(s.store, s.sink))
	mux.Handle("/api/countries", emissions.NewCountriesHandler(s.store))
	mux.Handle("/api/meta", emissions.NewMetaHandler(s.store))
	mux.Handle("/api/summary", emissions.NewSummaryHandler(s.store, s.sink))
	if s.reloader != nil {
		mux.Handle("/api/reload", admin.NewReloadHandler(s.reloader, s.cfg.APIToken))
	}
	return s.observe(mux)
}

// Run serves HTTP until the context is cancelled. Dataset reload events drop
// the rendered-chart cache.
func (s *Server) Run(ctx context.Context) error {
	if s.bus != nil {
		sub := s.bus.Subscribe()
		defer s.bus.Unsubscribe(sub)
		go s.watchBus(ctx, sub)
	}

	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("dashboard listening on %s", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) watchBus(ctx context.Context, sub <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if reload, ok := ev.(eventbus.DatasetReloaded); ok {
				s.invalidateCharts()
				s.log.Infof("chart cache dropped after reload (%d rows)", reload.Rows)
			}
		}
	}
}

func (s *Server) cachedChart(key string, render func() ([]byte, error)) ([]byte, error) {
	s.mu.Lock()
	png, ok := s.chartCache[key]
	s.mu.Unlock()
	if ok {
		return png, nil
	}
	png, err := render()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.chartCache[key] = png
	s.mu.Unlock()
	return png, nil
}

func (s *Server) invalidateCharts() {
	s.mu.Lock()
	s.chartCache = make(map[string][]byte)
	s.mu.Unlock()
}
