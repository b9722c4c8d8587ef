package cassandra

import (
	"context"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/adapter/cql"
	v1 "github.com/arloliu/vdba/adapter/cql/v1"
	"github.com/arloliu/vdba/events"
	"github.com/arloliu/vdba/internal/logging"
	"github.com/arloliu/vdba/internal/metrics"
	"github.com/arloliu/vdba/types"
)

// Registry names of the Cassandra driver.
const (
	DriverName  = "Cassandra"
	DriverAlias = "C*"
)

// DriverConfig holds configuration for the Cassandra driver.
type DriverConfig struct {
	// Logger receives connection and schema logs.
	Logger types.Logger

	// Metrics receives query, connection and schema metrics.
	Metrics types.MetricsCollector

	// Publisher, when set, receives an event after every applied DDL statement.
	Publisher events.Publisher

	// ClusterFactory builds clusters from connection configurations.
	ClusterFactory cql.ClusterFactory

	// LegacySchema reads metadata from the Cassandra 2.x system.schema_* tables.
	LegacySchema bool
}

// DefaultDriverConfig returns a DriverConfig with sensible defaults.
//
// Defaults:
//   - Logger: no-op
//   - Metrics: no-op
//   - Publisher: none
//   - ClusterFactory: gocql v1 (adapter/cql/v1.NewCluster)
//   - LegacySchema: false (system_schema tables)
//
// Returns:
//   - *DriverConfig: Configuration with default settings
func DefaultDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger:         logging.NewNopLogger(),
		Metrics:        metrics.NewNopMetrics(),
		ClusterFactory: v1.NewCluster,
	}
}

// Option configures a DriverConfig.
type Option func(*DriverConfig)

// WithLogger sets the logger.
//
// Parameters:
//   - logger: Logger implementation (zap.SugaredLogger compatible)
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *DriverConfig) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics collector.
//
// Parameters:
//   - collector: Metrics collector, e.g. contrib/metrics/vm.New()
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *DriverConfig) {
		c.Metrics = collector
	}
}

// WithEventPublisher publishes a schema event after every applied DDL statement.
//
// Publishing is best effort: failures are logged and do not fail the DDL call.
//
// Parameters:
//   - publisher: Event publisher, e.g. events.NewLocal() or events.NewNATSPublisher(...)
//
// Returns:
//   - Option: Configuration option
func WithEventPublisher(publisher events.Publisher) Option {
	return func(c *DriverConfig) {
		c.Publisher = publisher
	}
}

// WithClusterFactory selects how clusters are built.
//
// Use v2.NewCluster for the Apache driver, or a custom factory in tests.
//
// Parameters:
//   - factory: Cluster factory
//
// Returns:
//   - Option: Configuration option
func WithClusterFactory(factory cql.ClusterFactory) Option {
	return func(c *DriverConfig) {
		c.ClusterFactory = factory
	}
}

// WithLegacySchema reads schema metadata from the Cassandra 2.x tables
// (system.schema_columnfamilies, system.schema_columns) instead of system_schema.
//
// Returns:
//   - Option: Configuration option
func WithLegacySchema() Option {
	return func(c *DriverConfig) {
		c.LegacySchema = true
	}
}

// Driver creates Cassandra connections.
type Driver struct {
	config *DriverConfig
}

var _ vdba.Driver = (*Driver)(nil)

// New creates a Cassandra driver.
//
// Parameters:
//   - opts: Driver options
//
// Returns:
//   - *Driver: A driver ready to be registered or used directly
func New(opts ...Option) *Driver {
	cfg := DefaultDriverConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Logger = logging.OrNop(cfg.Logger)
	cfg.Metrics = metrics.OrNop(cfg.Metrics)
	if cfg.ClusterFactory == nil {
		cfg.ClusterFactory = v1.NewCluster
	}

	return &Driver{config: cfg}
}

// Register creates a Cassandra driver and registers it under "Cassandra" and "C*".
//
// Parameters:
//   - registry: The registry to register into
//   - opts: Driver options
//
// Returns:
//   - *Driver: The registered driver
//   - error: Registration error
//
// Example:
//
//	registry := vdba.NewRegistry()
//	if _, err := cassandra.Register(registry, cassandra.WithLogger(logger)); err != nil {
//	    return err
//	}
func Register(registry *vdba.Registry, opts ...Option) (*Driver, error) {
	d := New(opts...)
	if err := registry.Register(d); err != nil {
		return nil, err
	}

	return d, nil
}

// Name returns "Cassandra".
func (d *Driver) Name() string {
	return DriverName
}

// Aliases returns ["C*"].
func (d *Driver) Aliases() []string {
	return []string{DriverAlias}
}

// CreateConnection validates cfg and returns an unopened connection.
//
// Defaults are applied to a copy of cfg: hosts ["localhost"], port 9042,
// consistency "quorum". No network I/O happens here.
//
// Parameters:
//   - cfg: Connection configuration
//
// Returns:
//   - vdba.Connection: An unopened *Connection
//   - error: *types.ConfigurationError for missing configuration or database,
//     *types.UnknownConsistencyError for an unrecognized consistency name
func (d *Driver) CreateConnection(cfg *vdba.Config) (vdba.Connection, error) {
	conn, err := d.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// NewConnection is CreateConnection returning the concrete type.
func (d *Driver) NewConnection(cfg *vdba.Config) (*Connection, error) {
	if cfg == nil {
		return nil, &types.ConfigurationError{Cause: types.ErrConfigurationExpected}
	}

	normalized := cfg.WithDefaults()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	// Validate guarantees both names resolve.
	read, _ := types.ParseConsistency(normalized.ReadConsistency)
	write, _ := types.ParseConsistency(normalized.WriteConsistency)

	cluster, err := d.config.ClusterFactory(cql.ClusterConfig{
		Hosts:          normalized.Hosts,
		Port:           normalized.Port,
		Keyspace:       normalized.Database,
		Username:       normalized.Username,
		Password:       normalized.Password,
		Consistency:    write,
		Timeout:        normalized.Timeout,
		ConnectTimeout: normalized.ConnectTimeout,
		ProtoVersion:   normalized.ProtoVersion,
	})
	if err != nil {
		return nil, &types.ConfigurationError{Field: "cluster", Cause: err}
	}
	if cluster == nil {
		return nil, &types.ConfigurationError{Field: "cluster", Cause: types.ErrNilCluster}
	}

	return &Connection{
		driver:           d,
		config:           normalized,
		cluster:          cluster,
		readConsistency:  read,
		writeConsistency: write,
	}, nil
}

// OpenConnection creates a connection and opens it.
//
// Parameters:
//   - ctx: Context for the open
//   - cfg: Connection configuration
//
// Returns:
//   - vdba.Connection: An open *Connection
//   - error: Configuration or connection error
func (d *Driver) OpenConnection(ctx context.Context, cfg *vdba.Config) (vdba.Connection, error) {
	conn, err := d.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := conn.Open(ctx); err != nil {
		return nil, err
	}

	return conn, nil
}
