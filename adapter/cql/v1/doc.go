// Package v1 provides an adapter for gocql v1.x to work with the vdba library.
//
// This adapter wraps gocql clusters, sessions, queries and iterators to
// implement the vdba CQL interfaces.
//
// # Installation
//
// Import this package along with gocql v1.x:
//
//	import (
//	    "github.com/gocql/gocql"
//	    "github.com/arloliu/vdba/adapter/cql/v1"
//	)
//
// # Usage
//
// NewCluster is the default cluster factory of the Cassandra driver, so most
// programs never call it directly. To start from an existing gocql
// configuration, wrap it:
//
//	config := gocql.NewCluster("127.0.0.1", "127.0.0.2")
//	config.Keyspace = "my_keyspace"
//	config.Consistency = gocql.Quorum
//
//	cluster := v1.WrapCluster(config)
//	session, err := cluster.CreateSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Host View
//
// gocql does not expose the hosts of a session. WrapCluster installs a host
// filter that records each discovered host, and Session.Hosts reports their
// current up/down state. Any filter already set on the configuration still
// decides which hosts are used.
//
// # Type Conversions
//
//   - [ToGocqlConsistency]: Converts vdba Consistency to gocql.Consistency
//   - [FromGocqlConsistency]: Converts gocql.Consistency to vdba Consistency
//   - [ToGocqlConfig]: Converts cql.ClusterConfig to *gocql.ClusterConfig
//   - [UnwrapSession]: Returns the underlying gocql.Session
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread safety guarantees.
package v1
