package types

import (
	"errors"
	"strconv"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrConfiguration is the root of every configuration failure.
	// Configuration errors are returned before any network I/O.
	ErrConfiguration = errors.New("vdba: invalid configuration")

	// ErrConfigurationExpected indicates that no configuration was supplied.
	ErrConfigurationExpected = errors.New("vdba: configuration expected")

	// ErrDatabaseExpected indicates that the configuration names no database.
	ErrDatabaseExpected = errors.New("vdba: database expected")

	// ErrTableNameExpected indicates that a table operation was given an empty name.
	ErrTableNameExpected = errors.New("vdba: table name expected")

	// ErrColumnsExpected indicates that a table was defined without columns.
	ErrColumnsExpected = errors.New("vdba: table columns expected")

	// ErrIndexNameExpected indicates that an index operation was given an empty name.
	ErrIndexNameExpected = errors.New("vdba: index name expected")

	// ErrInvalidIdentifier indicates a table, column or index name that cannot
	// be rendered as an unquoted CQL identifier.
	ErrInvalidIdentifier = errors.New("vdba: invalid identifier")

	// ErrColumnTypeExpected indicates a column definition without a type.
	ErrColumnTypeExpected = errors.New("vdba: column type expected")

	// ErrDuplicateColumn indicates a column declared twice in one table.
	ErrDuplicateColumn = errors.New("vdba: duplicate column")

	// ErrUnknownColumn indicates a key that names a column the table does not declare.
	ErrUnknownColumn = errors.New("vdba: unknown column")

	// ErrInvalidIndexTarget indicates an index target other than values, keys, entries or full.
	ErrInvalidIndexTarget = errors.New("vdba: invalid index target")

	// ErrConflictingPrimaryKey indicates a table definition whose primary key
	// is declared more than once or in incompatible ways.
	ErrConflictingPrimaryKey = errors.New("vdba: conflicting primary key definition")

	// ErrUnknownConsistency indicates an unrecognized consistency name.
	ErrUnknownConsistency = errors.New("vdba: unknown consistency")

	// ErrConnection is the root of every failure to open or close a connection.
	ErrConnection = errors.New("vdba: connection failed")

	// ErrExecution is the root of every statement execution failure.
	ErrExecution = errors.New("vdba: execution failed")

	// ErrUnknownDriver indicates a registry lookup for a name nobody registered.
	ErrUnknownDriver = errors.New("vdba: unknown driver")

	// ErrNotConnected indicates an operation that needs an open connection.
	ErrNotConnected = errors.New("vdba: not connected")

	// ErrNilCluster indicates that a cluster factory produced a nil cluster.
	ErrNilCluster = errors.New("vdba: cluster cannot be nil")

	// ErrNilDriver indicates an attempt to register a nil driver.
	ErrNilDriver = errors.New("vdba: driver cannot be nil")
)

// ConfigurationError describes an invalid configuration value.
type ConfigurationError struct {
	// Field names the offending configuration field or argument.
	Field string

	// Cause is the underlying error, usually one of the sentinel errors above.
	Cause error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Cause.Error()
	}

	return e.Cause.Error() + " (" + e.Field + ")"
}

// Unwrap returns the wrapped errors for errors.Is/As compatibility.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Cause}
}

// UnknownConsistencyError reports a consistency name that does not resolve.
type UnknownConsistencyError struct {
	// Name is the name as supplied by the caller.
	Name string
}

// Error implements the error interface.
func (e *UnknownConsistencyError) Error() string {
	return "vdba: unknown consistency: " + strconv.Quote(e.Name)
}

// Unwrap returns the wrapped errors for errors.Is/As compatibility.
func (e *UnknownConsistencyError) Unwrap() []error {
	return []error{ErrConfiguration, ErrUnknownConsistency}
}

// ConnectionError wraps a failure reported while opening or closing a connection.
type ConnectionError struct {
	// Operation describes what failed ("open", "close").
	Operation string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return "vdba: connection " + e.Operation + " failed: " + e.Cause.Error()
}

// Unwrap returns the wrapped errors for errors.Is/As compatibility.
func (e *ConnectionError) Unwrap() []error {
	return []error{ErrConnection, e.Cause}
}

// ExecutionError wraps a failure reported by the database for a statement.
type ExecutionError struct {
	// Statement is the CQL text that failed.
	Statement string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return "vdba: execution of " + strconv.Quote(e.Statement) + " failed: " + e.Cause.Error()
}

// Unwrap returns the wrapped errors for errors.Is/As compatibility.
func (e *ExecutionError) Unwrap() []error {
	return []error{ErrExecution, e.Cause}
}

// UnknownDriverError reports a registry lookup miss.
type UnknownDriverError struct {
	// Name is the driver name that was looked up.
	Name string
}

// Error implements the error interface.
func (e *UnknownDriverError) Error() string {
	return "vdba: unknown driver: " + strconv.Quote(e.Name)
}

// Unwrap returns the underlying sentinel for errors.Is compatibility.
func (e *UnknownDriverError) Unwrap() error {
	return ErrUnknownDriver
}
