package types

// Logger is the structured logging interface used throughout vdba.
//
// The method set matches zap.SugaredLogger, so a sugared zap logger can be
// passed directly. Key-value pairs alternate between string keys and values:
//
//	logger.Info("connection opened", "hosts", hosts, "keyspace", keyspace)
//
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at info level.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at warn level.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at error level.
	Error(msg string, keysAndValues ...any)
}
