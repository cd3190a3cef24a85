// Package metrics defines interfaces and implementations for collecting
// dashboard metrics. Sinks like PromSink and InfluxSink record events such
// as dataset loads or evaluated queries and can be combined with
// NewMultiSink. The factory helpers return a MultiSink automatically when
// multiple sinks are configured.
package metrics
