package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/vdba/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	cassandra.Register(registry, cassandra.WithMetrics(collector))
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Query Engine
	// ----------------------

	// IncQueryTotal increments the counter of executed operations.
	IncQueryTotal(op Operation)

	// IncQueryError increments the counter of failed operations.
	IncQueryError(op Operation)

	// ObserveQueryDuration records an operation duration in seconds.
	ObserveQueryDuration(op Operation, seconds float64)

	// ----------------------
	// Connections
	// ----------------------

	// IncConnectionOpened is called after a connection opens successfully.
	IncConnectionOpened()

	// IncConnectionClosed is called after an open connection is closed.
	IncConnectionClosed()

	// IncConnectionError is called when opening a connection fails.
	IncConnectionError()

	// ----------------------
	// Schema
	// ----------------------

	// IncSchemaChange increments the counter of applied DDL statements.
	// Kind is one of "table_created", "table_dropped", "index_created", "index_dropped".
	IncSchemaChange(kind string)
}
