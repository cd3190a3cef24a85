package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeReloader struct {
	rows int
	err  error
}

func (f *fakeReloader) Reload(context.Context) (int, error) { return f.rows, f.err }

func TestReloadHandler_Authorized(t *testing.T) {
	h := NewReloadHandler(&fakeReloader{rows: 42}, "secret")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reload", nil)
	req.Header.Set("Authorization", "Bearer secret")
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"rows":42}`, rr.Body.String())
}

func TestReloadHandler_Unauthorized(t *testing.T) {
	h := NewReloadHandler(&fakeReloader{}, "secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/reload", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestReloadHandler_NoTokenConfigured(t *testing.T) {
	h := NewReloadHandler(&fakeReloader{rows: 1}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/reload", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestReloadHandler_MethodNotAllowed(t *testing.T) {
	h := NewReloadHandler(&fakeReloader{}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/reload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestReloadHandler_ReloadError(t *testing.T) {
	h := NewReloadHandler(&fakeReloader{err: errors.New("origin down")}, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/reload", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
