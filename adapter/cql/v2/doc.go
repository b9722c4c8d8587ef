// Package v2 provides an adapter for the Apache Cassandra gocql driver v2.x
// (github.com/apache/cassandra-gocql-driver/v2) to work with the vdba library.
//
// The API mirrors package v1. Select it as the Cassandra driver's cluster factory:
//
//	import (
//	    "github.com/arloliu/vdba/cassandra"
//	    v2 "github.com/arloliu/vdba/adapter/cql/v2"
//	)
//
//	cassandra.Register(registry, cassandra.WithClusterFactory(v2.NewCluster))
//
// # Context Handling
//
// The v2 driver deprecates Query.WithContext; this adapter calls the native
// ExecContext and IterContext methods instead.
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching the driver's thread safety guarantees.
package v2
