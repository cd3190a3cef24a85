package metrics

import "testing"

// TestMultiSink ensures events are forwarded to all sinks.

type recordSink struct {
	count int
}

func (r *recordSink) RecordQuery([]QueryEvent) error {
	r.count++
	return nil
}

func (r *recordSink) RecordDatasetLoad(DatasetLoadEvent) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordQuery(nil); err != nil {
		t.Fatalf("record query: %v", err)
	}
	if err := m.RecordDatasetLoad(DatasetLoadEvent{}); err != nil {
		t.Fatalf("record load: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("events not forwarded")
	}
}

func TestMultiSink_SkipsNonRecorders(t *testing.T) {
	m := NewMultiSink(NopSink{})
	if err := m.RecordRequest(RequestEvent{}); err != nil {
		t.Fatalf("record request: %v", err)
	}
}
