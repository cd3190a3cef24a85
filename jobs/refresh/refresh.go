// Package refresh keeps the in-memory emissions table in sync with the OWID
// origin: an initial load at startup, a periodic re-download, and an on-demand
// reload triggered from the admin API.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/co2dash/core/dataset"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/fetch"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/internal/eventbus"
)

// LoadInitial fetches the CSV (cache or origin) and builds the first table.
func LoadInitial(ctx context.Context, f *fetch.Fetcher, sink coremetrics.MetricsSink) (*dataset.Table, error) {
	start := time.Now()
	rc, source, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	tbl, err := dataset.Load(rc)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	recordLoad(sink, tbl, source, time.Since(start))
	return tbl, nil
}

// Job periodically re-downloads the dataset and swaps the store contents.
type Job struct {
	fetcher  *fetch.Fetcher
	store    *dataset.Store
	bus      eventbus.EventBus
	sink     coremetrics.MetricsSink
	interval time.Duration
	log      logger.Logger
}

// NewJob creates a refresh job. An interval of zero disables the periodic
// loop; Reload stays usable either way.
func NewJob(f *fetch.Fetcher, store *dataset.Store, bus eventbus.EventBus, sink coremetrics.MetricsSink, interval time.Duration) *Job {
	return &Job{
		fetcher:  f,
		store:    store,
		bus:      bus,
		sink:     sink,
		interval: interval,
		log:      logger.New("refresh"),
	}
}

// Run starts the periodic loop and blocks until the context is cancelled.
func (j *Job) Run(ctx context.Context) error {
	if j.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := j.Reload(ctx); err != nil {
				j.log.Errorf("refresh: %v", err)
			}
		}
	}
}

// Reload downloads the origin, rebuilds the table and swaps it into the
// store. Subscribers are notified so cached renderings get dropped.
func (j *Job) Reload(ctx context.Context) (int, error) {
	start := time.Now()
	rc, err := j.fetcher.Refresh(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()
	tbl, err := dataset.Load(rc)
	if err != nil {
		return 0, fmt.Errorf("load dataset: %w", err)
	}
	j.store.Set(tbl)
	recordLoad(j.sink, tbl, fetch.SourceOrigin, time.Since(start))
	if j.bus != nil {
		j.bus.Publish(eventbus.DatasetReloaded{Rows: tbl.Len(), Source: fetch.SourceOrigin})
	}
	j.log.Infof("dataset reloaded: %d rows", tbl.Len())
	return tbl.Len(), nil
}

func recordLoad(sink coremetrics.MetricsSink, tbl *dataset.Table, source string, d time.Duration) {
	rec, ok := sink.(coremetrics.DatasetLoadRecorder)
	if !ok {
		return
	}
	min, max := tbl.Years()
	_ = rec.RecordDatasetLoad(coremetrics.DatasetLoadEvent{
		Source:    source,
		Rows:      tbl.Len(),
		Countries: len(tbl.Countries()),
		MinYear:   min,
		MaxYear:   max,
		Duration:  d,
		Time:      time.Now(),
	})
}
