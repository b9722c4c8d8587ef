package v1

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/vdba/adapter/cql"
)

// ToGocqlConsistency converts a vdba Consistency to gocql.Consistency.
//
// This is useful when you need to interact with the underlying gocql driver
// directly while using vdba consistency constants.
//
// Parameters:
//   - c: vdba consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v1.ToGocqlConsistency(cql.Quorum)
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to vdba Consistency.
//
// Parameters:
//   - c: gocql consistency level
//
// Returns:
//   - cql.Consistency: The equivalent vdba consistency level
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// ToGocqlConfig translates a cql.ClusterConfig into a gocql cluster configuration.
//
// Zero-valued durations and protocol version keep gocql's defaults. A
// PasswordAuthenticator is installed when Username is set.
//
// Parameters:
//   - cfg: vdba cluster configuration
//
// Returns:
//   - *gocql.ClusterConfig: A configuration ready for CreateSession
func ToGocqlConfig(cfg cql.ClusterConfig) *gocql.ClusterConfig {
	config := gocql.NewCluster(cfg.Hosts...)
	config.Keyspace = cfg.Keyspace
	config.Consistency = ToGocqlConsistency(cfg.Consistency)

	config.Port = cfg.Port
	if config.Port == 0 {
		config.Port = cql.DefaultPort
	}
	if cfg.Timeout > 0 {
		config.Timeout = cfg.Timeout
	}
	if cfg.ConnectTimeout > 0 {
		config.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.ProtoVersion > 0 {
		config.ProtoVersion = cfg.ProtoVersion
	}
	if cfg.Username != "" {
		config.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	return config
}

// UnwrapSession returns the underlying gocql.Session from a v1 adapter session.
//
// This is useful when you need direct access to gocql-specific features
// not exposed through the cql.Session interface.
//
// Parameters:
//   - s: A v1.Session adapter
//
// Returns:
//   - *gocql.Session: The underlying gocql session
func UnwrapSession(s *Session) *gocql.Session {
	return s.session
}
