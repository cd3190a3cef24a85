package metrics

import (
	"testing"

	"github.com/kilianp07/co2dash/core/factory"
)

func TestNewMetricsSink_Defaults(t *testing.T) {
	s, err := NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
}

func TestNewMetricsSink_Registered(t *testing.T) {
	if err := RegisterMetricsSink("test-sink", func(map[string]any) (MetricsSink, error) {
		return &recordSink{}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err := NewMetricsSink([]factory.ModuleConfig{{Type: "test-sink"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := s.(*recordSink); !ok {
		t.Fatalf("expected recordSink, got %T", s)
	}
}

func TestNewMetricsSink_Multi(t *testing.T) {
	if err := RegisterMetricsSink("multi-a", func(map[string]any) (MetricsSink, error) { return NopSink{}, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterMetricsSink("multi-b", func(map[string]any) (MetricsSink, error) { return NopSink{}, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err := NewMetricsSink([]factory.ModuleConfig{{Type: "multi-a"}, {Type: "multi-b"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := s.(*MultiSink); !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
}

func TestNewMetricsSink_Unknown(t *testing.T) {
	if _, err := NewMetricsSink([]factory.ModuleConfig{{Type: "nope"}}); err == nil {
		t.Fatal("expected unknown type error")
	}
}
