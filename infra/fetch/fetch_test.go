package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_DownloadsAndCaches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("country,year\nFrance,2020\n"))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "data.csv")
	f := New(Config{URL: srv.URL, CachePath: cache})

	rc, source, err := f.Fetch(context.Background())
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, SourceOrigin, source)
	assert.Contains(t, string(data), "France")

	// Second fetch must hit the fresh cache, not the origin.
	rc, source, err = f.Fetch(context.Background())
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, SourceCache, source)
}

func TestFetch_StaleCacheOnOriginError(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(cache, []byte("country,year\n"), 0o644))
	// Backdate the cache so it is no longer fresh.
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(cache, old, old))

	f := New(Config{URL: "http://127.0.0.1:1", CachePath: cache, MaxAgeHours: 24})
	rc, source, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, SourceCache, source)
}

func TestFetch_NoURLNoCache(t *testing.T) {
	f := New(Config{CachePath: filepath.Join(t.TempDir(), "missing.csv")})
	_, _, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestRefresh_ForcesDownload(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("country,year\n"))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "data.csv")
	f := New(Config{URL: srv.URL, CachePath: cache})

	rc, err := f.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	rc, err = f.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, 2, hits)
}

func TestRefresh_NoURL(t *testing.T) {
	f := New(Config{CachePath: filepath.Join(t.TempDir(), "data.csv")})
	_, err := f.Refresh(context.Background())
	assert.Error(t, err)
}
