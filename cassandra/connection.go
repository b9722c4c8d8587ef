package cassandra

import (
	"context"
	"sync"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/adapter/cql"
	"github.com/arloliu/vdba/types"
)

// Connection is a connection to a Cassandra cluster.
//
// A Connection is created unopened by Driver.CreateConnection. Open creates
// the underlying session; Close releases it and invalidates the Server and
// Database handles. Open and Close are not serialized against queries in
// flight: callers must not close a connection that is still in use.
type Connection struct {
	driver  *Driver
	config  *vdba.Config
	cluster cql.Cluster

	readConsistency  types.Consistency
	writeConsistency types.Consistency

	mu       sync.Mutex
	session  cql.Session
	server   *Server
	database *Database
}

var _ vdba.Connection = (*Connection)(nil)

// Config returns the normalized configuration of the connection.
func (c *Connection) Config() vdba.Config {
	return *c.config
}

// Open connects to the cluster. It is a no-op when already connected.
//
// A session whose hosts are all down is closed and replaced.
//
// Parameters:
//   - ctx: Checked before connecting; the driver's ConnectTimeout bounds the dial
//
// Returns:
//   - error: *types.ConnectionError if the session cannot be created
func (c *Connection) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connectedLocked() {
		return nil
	}

	logger := c.driver.config.Logger
	metrics := c.driver.config.Metrics

	if err := ctx.Err(); err != nil {
		return &types.ConnectionError{Operation: "open", Cause: err}
	}

	if c.session != nil {
		logger.Info("replacing unavailable session", "hosts", c.config.Hosts, "keyspace", c.config.Database)
		c.closeLocked()
	}

	session, err := c.cluster.CreateSession()
	if err != nil {
		metrics.IncConnectionError()
		logger.Warn("failed to open connection", "hosts", c.config.Hosts, "keyspace", c.config.Database, "error", err)

		return &types.ConnectionError{Operation: "open", Cause: err}
	}

	c.session = session
	metrics.IncConnectionOpened()
	logger.Info("connection opened", "hosts", c.config.Hosts, "keyspace", c.config.Database)

	return nil
}

// Close disconnects from the cluster. It is a no-op unless the connection is open.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}

	c.closeLocked()
	c.driver.config.Logger.Info("connection closed", "hosts", c.config.Hosts, "keyspace", c.config.Database)

	return nil
}

func (c *Connection) closeLocked() {
	c.server = nil
	c.database = nil
	c.session.Close()
	c.session = nil
	c.driver.config.Metrics.IncConnectionClosed()
}

// Connected reports whether the session is open and at least one known host is up.
//
// The value is recomputed from the live host view on every call.
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connectedLocked()
}

func (c *Connection) connectedLocked() bool {
	if c.session == nil || c.session.Closed() {
		return false
	}

	for _, host := range c.session.Hosts() {
		if host.Up {
			return true
		}
	}

	return false
}

// Server returns the server handle, or nil when not connected.
//
// The handle is created on first access and reused until Close.
func (c *Connection) Server() vdba.Server {
	server := c.cassandraServer()
	if server == nil {
		return nil
	}

	return server
}

func (c *Connection) cassandraServer() *Server {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connectedLocked() {
		return nil
	}
	if c.server == nil {
		c.server = newServer(c)
	}

	return c.server
}

// Database returns the handle of the configured keyspace, or nil when not connected.
//
// The handle is created on first access and reused until Close.
func (c *Connection) Database() vdba.Database {
	db := c.cassandraDatabase()
	if db == nil {
		return nil
	}

	return db
}

func (c *Connection) cassandraDatabase() *Database {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connectedLocked() {
		return nil
	}
	if c.database == nil {
		c.database = newDatabase(c, c.config.Database)
	}

	return c.database
}

// ReadConsistency returns the symbolic consistency used for reads.
func (c *Connection) ReadConsistency() string {
	return c.config.ReadConsistency
}

// WriteConsistency returns the symbolic consistency used for writes.
func (c *Connection) WriteConsistency() string {
	return c.config.WriteConsistency
}

// activeSession returns the open session or types.ErrNotConnected.
func (c *Connection) activeSession() (cql.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || c.session.Closed() {
		return nil, types.ErrNotConnected
	}

	return c.session, nil
}

func (c *Connection) newEngine() *engine {
	return &engine{
		source:  c,
		logger:  c.driver.config.Logger,
		metrics: c.driver.config.Metrics,
	}
}

func (c *Connection) consistencies() (read, write types.Consistency) {
	return c.readConsistency, c.writeConsistency
}
