// Package app wires the configuration into a running dashboard service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/co2dash/config"
	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/fetch"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/infra/metrics"
	"github.com/kilianp07/co2dash/internal/eventbus"
	"github.com/kilianp07/co2dash/jobs/refresh"
	"github.com/kilianp07/co2dash/web"
)

// Service orchestrates the dataset lifecycle and the HTTP server.
type Service struct {
	server   *web.Server
	job      *refresh.Job
	bus      *eventbus.Bus
	log      logger.Logger
	promAddr string
}

// New loads the dataset and assembles the service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	fetcher := fetch.New(cfg.Dataset)
	tbl, err := refresh.LoadInitial(ctx, fetcher, sink)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	store := dataset.NewStore(tbl)
	minYear, maxYear := tbl.Years()
	logg.Infof("dataset loaded: %d rows, %d countries, years %d-%d",
		tbl.Len(), len(tbl.Countries()), minYear, maxYear)

	bus := eventbus.New()
	interval := time.Duration(cfg.Server.RefreshIntervalHours) * time.Hour
	job := refresh.NewJob(fetcher, store, bus, sink, interval)

	server, err := web.New(cfg.Server, store, sink, job, bus)
	if err != nil {
		return nil, fmt.Errorf("web server: %w", err)
	}

	svc := &Service{server: server, job: job, bus: bus, log: logg}
	if cfg.Metrics.PrometheusEnabled {
		svc.promAddr = cfg.Metrics.PrometheusAddr
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go func() {
		if err := s.job.Run(ctx); err != nil {
			s.log.Errorf("refresh job: %v", err)
		}
	}()
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.server.Run(ctx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
