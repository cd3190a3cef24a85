package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordQuery forwards the events to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordQuery(events []QueryEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordQuery(events); err != nil {
			return err
		}
	}
	return nil
}

// RecordDatasetLoad forwards dataset load events to sinks that record them.
func (m *MultiSink) RecordDatasetLoad(ev DatasetLoadEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DatasetLoadRecorder); ok {
			if err := rec.RecordDatasetLoad(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRequest forwards HTTP request events to sinks that record them.
func (m *MultiSink) RecordRequest(ev RequestEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RequestRecorder); ok {
			if err := rec.RecordRequest(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
