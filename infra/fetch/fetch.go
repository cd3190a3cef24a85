// Package fetch downloads the OWID emissions CSV and keeps a local copy so
// the service does not hit the origin on every restart.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kilianp07/co2dash/infra/logger"
)

// Config holds the dataset source settings.
type Config struct {
	// URL is the CSV origin. Leave empty to only ever read CachePath.
	URL       string `json:"url"`
	CachePath string `json:"cache_path"`
	// MaxAgeHours is how long the cached copy is considered fresh.
	MaxAgeHours int `json:"max_age_hours"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.CachePath == "" {
		c.CachePath = "owid-co2-data.csv"
	}
	if c.MaxAgeHours <= 0 {
		c.MaxAgeHours = 24
	}
}

// Sources reported alongside fetched data.
const (
	SourceCache  = "cache"
	SourceOrigin = "origin"
)

// Fetcher retrieves the dataset CSV from the origin or the local cache.
type Fetcher struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// New creates a Fetcher for the given source configuration.
func New(cfg Config) *Fetcher {
	cfg.SetDefaults()
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		log:    logger.New("fetch"),
	}
}

// Fetch returns a reader over the CSV and the source it came from. A fresh
// cache copy is preferred; otherwise the origin is downloaded and cached.
// When the origin is unreachable a stale cache copy is served instead.
func (f *Fetcher) Fetch(ctx context.Context) (io.ReadCloser, string, error) {
	if f.fresh() || f.cfg.URL == "" {
		rc, err := os.Open(f.cfg.CachePath)
		if err == nil {
			return rc, SourceCache, nil
		}
		if f.cfg.URL == "" {
			return nil, "", fmt.Errorf("open dataset %s: %w", f.cfg.CachePath, err)
		}
	}
	if err := f.download(ctx); err != nil {
		if rc, cerr := os.Open(f.cfg.CachePath); cerr == nil {
			f.log.Warnf("origin unavailable, serving stale cache: %v", err)
			return rc, SourceCache, nil
		}
		return nil, "", err
	}
	rc, err := os.Open(f.cfg.CachePath)
	if err != nil {
		return nil, "", fmt.Errorf("open cache after download: %w", err)
	}
	return rc, SourceOrigin, nil
}

// Refresh downloads the origin unconditionally and updates the cache.
func (f *Fetcher) Refresh(ctx context.Context) (io.ReadCloser, error) {
	if f.cfg.URL == "" {
		return nil, fmt.Errorf("no dataset url configured")
	}
	if err := f.download(ctx); err != nil {
		return nil, err
	}
	rc, err := os.Open(f.cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open cache after download: %w", err)
	}
	return rc, nil
}

func (f *Fetcher) fresh() bool {
	info, err := os.Stat(f.cfg.CachePath)
	if err != nil {
		return false
	}
	maxAge := time.Duration(f.cfg.MaxAgeHours) * time.Hour
	return time.Since(info.ModTime()) < maxAge
}

func (f *Fetcher) download(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			f.log.Warnf("close response body: %v", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dataset: unexpected status %s", resp.Status)
	}

	// Write to a temp file first so a failed download never clobbers a
	// good cache copy.
	dir := filepath.Dir(f.cfg.CachePath)
	tmp, err := os.CreateTemp(dir, "owid-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.cfg.CachePath); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace cache: %w", err)
	}
	f.log.Infof("dataset downloaded from %s", f.cfg.URL)
	return nil
}
