package metrics

import "time"

// DatasetLoadEvent describes one load (or reload) of the emissions table.
type DatasetLoadEvent struct {
	// Source is "origin" when the CSV was downloaded and "cache" when it
	// was served from the local copy.
	Source    string
	Rows      int
	Countries int
	MinYear   int
	MaxYear   int
	Duration  time.Duration
	Time      time.Time
}

// QueryEvent describes one evaluated dashboard query.
type QueryEvent struct {
	// View is the dashboard view served: map, series, breakdown or summary.
	View      string
	Variable  string
	Year      int
	Countries int
	Rows      int
	Duration  time.Duration
	Time      time.Time
}

// RequestEvent describes one handled HTTP request.
type RequestEvent struct {
	Path     string
	Method   string
	Status   int
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records query events for observability purposes.
type MetricsSink interface {
	RecordQuery(events []QueryEvent) error
}

// DatasetLoadRecorder is implemented by sinks able to record dataset loads.
type DatasetLoadRecorder interface {
	RecordDatasetLoad(ev DatasetLoadEvent) error
}

// RequestRecorder is implemented by sinks able to record HTTP requests.
type RequestRecorder interface {
	RecordRequest(ev RequestEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordQuery([]QueryEvent) error           { return nil }
func (NopSink) RecordDatasetLoad(DatasetLoadEvent) error { return nil }
func (NopSink) RecordRequest(RequestEvent) error         { return nil }
