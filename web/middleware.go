package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// observe tags every request with an id, logs it and records its latency.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)

		s.log.Debugw("request", map[string]any{
			"request_id":  id,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": dur.Milliseconds(),
		})
		if rec, ok := s.sink.(coremetrics.RequestRecorder); ok {
			_ = rec.RecordRequest(coremetrics.RequestEvent{
				Path:     r.URL.Path,
				Method:   r.Method,
				Status:   sw.status,
				Duration: dur,
				Time:     time.Now(),
			})
		}
	})
}
