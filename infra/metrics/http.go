package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/co2dash/infra/logger"
)

// StartPromServer exposes /metrics on its own listener so scrapes never
// compete with dashboard traffic. It blocks until the context is cancelled.
func StartPromServer(ctx context.Context, addr string) error {
	logg := logger.New("metrics-server")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Errorf("metrics server shutdown: %v", err)
		}
		cancel()
	}()
	logg.Infof("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
