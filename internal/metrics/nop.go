// Package metrics provides internal metrics utilities for vdba.
package metrics

import "github.com/arloliu/vdba/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// OrNop returns collector, or a NopMetrics when collector is nil.
func OrNop(collector types.MetricsCollector) types.MetricsCollector {
	if collector == nil {
		return NewNopMetrics()
	}

	return collector
}

// IncQueryTotal discards the metric.
func (m *NopMetrics) IncQueryTotal(_ types.Operation) {}

// IncQueryError discards the metric.
func (m *NopMetrics) IncQueryError(_ types.Operation) {}

// ObserveQueryDuration discards the metric.
func (m *NopMetrics) ObserveQueryDuration(_ types.Operation, _ float64) {}

// IncConnectionOpened discards the metric.
func (m *NopMetrics) IncConnectionOpened() {}

// IncConnectionClosed discards the metric.
func (m *NopMetrics) IncConnectionClosed() {}

// IncConnectionError discards the metric.
func (m *NopMetrics) IncConnectionError() {}

// IncSchemaChange discards the metric.
func (m *NopMetrics) IncSchemaChange(_ string) {}
