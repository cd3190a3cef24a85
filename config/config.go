package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/co2dash/core/dataset"
	"github.com/kilianp07/co2dash/core/factory"
	"github.com/kilianp07/co2dash/infra/fetch"
)

type Config struct {
	Dataset fetch.Config  `json:"dataset"`
	Server  ServerConfig  `json:"server"`
	Metrics MetricsConfig `json:"metrics"`
}

// ServerConfig holds the dashboard HTTP server settings and view defaults.
type ServerConfig struct {
	Addr string `json:"addr"`
	// APIToken guards the reload endpoint when non-empty.
	APIToken string `json:"api_token"`
	// DefaultCountries pre-fills the time-series selector.
	DefaultCountries []string `json:"default_countries"`
	DefaultVariable  string   `json:"default_variable"`
	// RefreshIntervalHours re-downloads the dataset periodically; zero
	// disables the loop.
	RefreshIntervalHours int `json:"refresh_interval_hours"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if len(c.DefaultCountries) == 0 {
		c.DefaultCountries = []string{"United States", "China", "India"}
	}
	if c.DefaultVariable == "" {
		c.DefaultVariable = string(dataset.VarCO2)
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if _, err := dataset.ParseVariable(c.DefaultVariable); err != nil {
		return fmt.Errorf("default variable: %w", err)
	}
	if c.RefreshIntervalHours < 0 {
		return fmt.Errorf("refresh interval must not be negative")
	}
	return nil
}

// MetricsConfig defines the metrics sinks and the Prometheus endpoint.
type MetricsConfig struct {
	Sinks             []factory.ModuleConfig `json:"sinks"`
	PrometheusEnabled bool                   `json:"prometheus_enabled"`
	PrometheusAddr    string                 `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The provider must split on the koanf
	// delimiter so K_SERVER__ADDR merges into the nested server map.
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Dataset.SetDefaults()
	cfg.Server.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
