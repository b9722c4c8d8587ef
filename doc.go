// Package vdba provides vendor-neutral database access with a pluggable
// driver registry.
//
// Drivers turn a Config into a Connection. An open Connection exposes a
// Server and a Database; the Database creates and drops tables and
// indexes, inspects schema metadata and runs queries. The Cassandra driver
// lives in package cassandra and executes CQL through gocql.
//
// # Basic Usage
//
//	registry := vdba.NewRegistry()
//	if _, err := cassandra.Register(registry); err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, err := registry.OpenConnection(ctx, "Cassandra", &vdba.Config{
//	    Hosts:            vdba.Hosts{"10.0.0.1", "10.0.0.2"},
//	    Database:         "shop",
//	    ReadConsistency:  "localOne",
//	    WriteConsistency: "localQuorum",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	db := conn.Database()
//	err = db.CreateTable(ctx, "users", []vdba.Column{
//	    {Name: "id", Type: "uuid", PrimaryKey: true},
//	    {Name: "email", Type: "text"},
//	}, &vdba.TableOptions{IfNotExists: true})
//
//	row, err := db.FindOne(ctx, "SELECT email FROM users WHERE id = ?", id)
//
// # Configuration
//
// Config can be built in code or loaded from YAML with LoadConfig or
// ParseConfig. Missing fields take their defaults when a driver creates a
// connection: hosts ["localhost"], port 9042 and consistency "quorum".
// Consistency names are matched case-insensitively, so "localQuorum",
// "LOCAL_QUORUM" and "localquorum" are equivalent.
//
// # Error Handling
//
// Errors are classified with sentinels from package types and inspected
// with errors.Is and errors.As:
//
//   - types.ErrConfiguration: invalid configuration or DDL input, reported
//     before any statement is sent (*types.ConfigurationError,
//     *types.UnknownConsistencyError)
//   - types.ErrConnection: the session could not be opened (*types.ConnectionError)
//   - types.ErrExecution: the server rejected a statement (*types.ExecutionError)
//   - types.ErrNotConnected: the connection is not open
//   - types.ErrUnknownDriver: no driver is registered under the name
//
// Absence is not an error: FindTable, FindIndex and FindOne return nil
// with a nil error when nothing matches.
//
// # Observability
//
// The Cassandra driver accepts a types.Logger (cassandra.WithLogger), a
// types.MetricsCollector (cassandra.WithMetrics, see contrib/metrics/vm)
// and an events.Publisher that is notified after every applied schema
// change (cassandra.WithEventPublisher).
package vdba
