// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "vdba" and hand it to a driver:
//
//	collector := vm.New()
//	cassandra.Register(registry, cassandra.WithMetrics(collector))
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_query_total{op="find"}
//   - myapp_query_duration_seconds{op="run"}
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer:
//
//	collector.WritePrometheus(w)
//
// # Metrics Provided
//
// Query engine:
//   - {prefix}_query_total{op} - Counter of operations (run, find, find_one, each)
//   - {prefix}_query_errors_total{op} - Counter of failed operations
//   - {prefix}_query_duration_seconds{op} - Histogram of operation latencies
//
// Connections:
//   - {prefix}_connections_opened_total - Counter of successful opens
//   - {prefix}_connections_closed_total - Counter of closes
//   - {prefix}_connection_errors_total - Counter of failed opens
//   - {prefix}_open_connections - Gauge of currently open connections
//
// Schema:
//   - {prefix}_schema_changes_total{kind} - Counter of applied DDL statements
//
// # Performance Notes
//
// This implementation pre-creates the known metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX) for optimal
// performance in hot paths, as recommended by the VictoriaMetrics documentation.
package vm
