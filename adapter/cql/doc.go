// Package cql defines the collaborator interfaces vdba drivers use to talk
// to a CQL (Cassandra Query Language) cluster.
//
// The interfaces are deliberately small: a Cluster creates a Session, a
// Session creates Queries and reports its hosts, a Query either executes or
// yields an Iter. Keeping the surface this narrow lets the Cassandra driver
// be tested against scripted in-memory implementations and lets callers pick
// the gocql flavour they already depend on.
//
// # Adapters
//
// Driver-specific adapters are provided in subpackages:
//
//   - [github.com/arloliu/vdba/adapter/cql/v1]: Adapter for gocql v1.x
//   - [github.com/arloliu/vdba/adapter/cql/v2]: Adapter for apache/cassandra-gocql-driver v2.x
//
// Each adapter exports NewCluster, a ClusterFactory:
//
//	import (
//	    "github.com/arloliu/vdba/cassandra"
//	    v2 "github.com/arloliu/vdba/adapter/cql/v2"
//	)
//
//	cassandra.Register(registry, cassandra.WithClusterFactory(v2.NewCluster))
package cql
