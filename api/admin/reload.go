// Package admin exposes operational endpoints guarded by a bearer token.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
)

// Reloader triggers a dataset reload from the origin.
type Reloader interface {
	Reload(ctx context.Context) (rows int, err error)
}

// NewReloadHandler returns an HTTP handler triggering a dataset reload via
// POST /api/reload. Requests must include an Authorization header with
// "Bearer <token>" when token is non-empty.
func NewReloadHandler(rel Reloader, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		rows, err := rel.Reload(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]int{"rows": rows}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
