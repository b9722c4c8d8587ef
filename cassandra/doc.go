// Package cassandra is the Apache Cassandra driver for vdba.
//
// The driver is registered under "Cassandra" with the alias "C*":
//
//	registry := vdba.NewRegistry()
//	driver, err := cassandra.Register(registry,
//	    cassandra.WithLogger(logger),
//	    cassandra.WithMetrics(vm.New()),
//	)
//
// CreateConnection validates the configuration and builds the cluster
// without any network I/O. Open creates the session. Connected reports
// whether the session is open and at least one host is up, recomputed on
// every call.
//
// Writes (Run and all DDL) use the connection's write consistency; reads
// (Find, FindOne, Each and metadata lookups) use its read consistency.
//
// Schema metadata is read from system_schema (Cassandra 3.0+, ScyllaDB).
// Use WithLegacySchema for Cassandra 2.x.
//
// Clusters are built with gocql (adapter/cql/v1) by default. Pass
// WithClusterFactory(v2.NewCluster) to use the Apache driver instead.
package cassandra
