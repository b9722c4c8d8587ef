// Package testutil provides test utilities and mock implementations for vdba testing.
//
// # Mock Implementations
//
//   - [MockCluster]: cql.Cluster whose sessions answer from a shared script
//   - [MockSession]: cql.Session recording every query
//   - [MockQuery]: cql.Query recording consistency and execution
//   - [MockIter]: cql.Iter over scripted rows
//   - [TestMetricsCollector]: types.MetricsCollector recording every call
//   - [RecordingLogger]: types.Logger recording every entry
//   - [FailingPublisher]: events.Publisher that always fails
//
// # Usage
//
//	cluster := testutil.NewMockCluster().
//	    SetRows("SELECT release_version FROM system.local", map[string]any{"release_version": "4.1.5"})
//
//	driver := cassandra.New(cassandra.WithClusterFactory(cluster.Factory()))
//	conn, _ := driver.OpenConnection(ctx, &vdba.Config{Database: "shop"})
//
// # Integration Test Helpers
//
//   - StartEmbeddedNATS: starts an embedded NATS server with JetStream
//   - StartCQLCluster: starts a Cassandra or ScyllaDB container (requires Docker)
package testutil
