// Package types provides shared types and error definitions for the vdba library.
//
// This is a leaf package with zero vdba imports to prevent import cycles.
// All packages in vdba can safely import this package.
//
// # Consistency
//
// Consistency levels mirror gocql consistency levels:
//
//	const (
//	    Any         Consistency = 0x00
//	    One         Consistency = 0x01
//	    Two         Consistency = 0x02
//	    Three       Consistency = 0x03
//	    Quorum      Consistency = 0x04
//	    All         Consistency = 0x05
//	    LocalQuorum Consistency = 0x06
//	    EachQuorum  Consistency = 0x07
//	    LocalOne    Consistency = 0x0A
//	)
//
// ParseConsistency resolves the symbolic names used in configuration files
// ("quorum", "localQuorum", "eachQuorum", ...) case-insensitively.
//
// # Errors
//
// Sentinel errors identify failure classes and are matched with errors.Is:
//
//   - ErrConfiguration: Invalid input detected before any I/O
//   - ErrConnection: The connection could not be opened
//   - ErrExecution: The database rejected a statement
//   - ErrUnknownDriver: Registry lookup miss
//   - ErrNotConnected: Operation on a connection that is not open
//
// Structured errors carry details and are matched with errors.As:
//
//	var execErr *types.ExecutionError
//	if errors.As(err, &execErr) {
//	    log.Printf("statement %q failed: %v", execErr.Statement, execErr.Cause)
//	}
//
// Lookups that find nothing (FindTable, FindIndex, FindOne) are not errors:
// they return a nil value and a nil error.
package types
