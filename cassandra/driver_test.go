package cassandra

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/adapter/cql"
	"github.com/arloliu/vdba/test/testutil"
	"github.com/arloliu/vdba/types"
)

func TestDriverNames(t *testing.T) {
	d := New()
	assert.Equal(t, "Cassandra", d.Name())
	assert.Equal(t, []string{"C*"}, d.Aliases())
}

func TestDefaultDriverConfig(t *testing.T) {
	cfg := DefaultDriverConfig()
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Metrics)
	assert.NotNil(t, cfg.ClusterFactory)
	assert.Nil(t, cfg.Publisher)
	assert.False(t, cfg.LegacySchema)
}

func TestNewFallsBackToNop(t *testing.T) {
	d := New(WithLogger(nil), WithMetrics(nil), WithClusterFactory(nil))
	assert.NotNil(t, d.config.Logger)
	assert.NotNil(t, d.config.Metrics)
	assert.NotNil(t, d.config.ClusterFactory)
}

func TestRegister(t *testing.T) {
	registry := vdba.NewRegistry()

	d, err := Register(registry)
	require.NoError(t, err)

	byName, err := registry.GetDriver("Cassandra")
	require.NoError(t, err)
	assert.Same(t, d, byName)

	byAlias, err := registry.GetDriver("C*")
	require.NoError(t, err)
	assert.Same(t, d, byAlias)

	_, err = registry.GetDriver("cassandra")
	require.ErrorIs(t, err, types.ErrUnknownDriver)
}

func TestNewConnectionNilConfig(t *testing.T) {
	_, err := New().NewConnection(nil)
	require.ErrorIs(t, err, types.ErrConfigurationExpected)
	require.ErrorIs(t, err, types.ErrConfiguration)
}

func TestNewConnectionMissingDatabase(t *testing.T) {
	cluster := testutil.NewMockCluster()
	d := New(WithClusterFactory(cluster.Factory()))

	_, err := d.CreateConnection(&vdba.Config{Hosts: vdba.Hosts{"db1"}})
	require.ErrorIs(t, err, types.ErrDatabaseExpected)
	assert.Empty(t, cluster.Configs(), "no cluster is built for an invalid configuration")
}

func TestNewConnectionUnknownConsistency(t *testing.T) {
	cluster := testutil.NewMockCluster()
	d := New(WithClusterFactory(cluster.Factory()))

	_, err := d.CreateConnection(&vdba.Config{Database: "shop", ReadConsistency: "strong"})
	require.ErrorIs(t, err, types.ErrUnknownConsistency)

	var unknown *types.UnknownConsistencyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "strong", unknown.Name)
	assert.Empty(t, cluster.Configs())
}

func TestNewConnectionClusterConfig(t *testing.T) {
	cluster := testutil.NewMockCluster()
	d := New(WithClusterFactory(cluster.Factory()))

	conn, err := d.NewConnection(&vdba.Config{
		Database:         "shop",
		Username:         "app",
		Password:         "secret",
		ReadConsistency:  "localOne",
		WriteConsistency: "LOCAL_QUORUM",
	})
	require.NoError(t, err)

	configs := cluster.Configs()
	require.Len(t, configs, 1)
	got := configs[0]
	assert.Equal(t, []string{"localhost"}, got.Hosts)
	assert.Equal(t, 9042, got.Port)
	assert.Equal(t, "shop", got.Keyspace)
	assert.Equal(t, "app", got.Username)
	assert.Equal(t, "secret", got.Password)
	assert.Equal(t, cql.LocalQuorum, got.Consistency)
	assert.Equal(t, vdba.DefaultTimeout, got.Timeout)

	assert.Equal(t, "localOne", conn.ReadConsistency())
	assert.Equal(t, "LOCAL_QUORUM", conn.WriteConsistency())
	read, write := conn.consistencies()
	assert.Equal(t, types.LocalOne, read)
	assert.Equal(t, types.LocalQuorum, write)

	assert.False(t, conn.Connected(), "a created connection is not opened")
	assert.Empty(t, cluster.Sessions())
}

func TestNewConnectionDoesNotModifyConfig(t *testing.T) {
	cluster := testutil.NewMockCluster()
	d := New(WithClusterFactory(cluster.Factory()))

	cfg := &vdba.Config{Database: "shop"}
	conn, err := d.NewConnection(cfg)
	require.NoError(t, err)

	assert.Empty(t, cfg.Hosts)
	assert.Empty(t, cfg.ReadConsistency)
	assert.Equal(t, vdba.Hosts{"localhost"}, conn.Config().Hosts)
	assert.Equal(t, "quorum", conn.Config().ReadConsistency)
}

func TestNewConnectionFactoryError(t *testing.T) {
	boom := errors.New("no route")
	d := New(WithClusterFactory(func(cql.ClusterConfig) (cql.Cluster, error) {
		return nil, boom
	}))

	_, err := d.NewConnection(&vdba.Config{Database: "shop"})
	require.ErrorIs(t, err, boom)

	var cfgErr *types.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "cluster", cfgErr.Field)
}

func TestNewConnectionNilCluster(t *testing.T) {
	d := New(WithClusterFactory(func(cql.ClusterConfig) (cql.Cluster, error) {
		return nil, nil
	}))

	_, err := d.NewConnection(&vdba.Config{Database: "shop"})
	require.ErrorIs(t, err, types.ErrNilCluster)
}

func TestOpenConnection(t *testing.T) {
	cluster := testutil.NewMockCluster()
	collector := testutil.NewTestMetricsCollector()
	d := New(WithClusterFactory(cluster.Factory()), WithMetrics(collector))

	conn, err := d.OpenConnection(context.Background(), &vdba.Config{Database: "shop"})
	require.NoError(t, err)
	assert.True(t, conn.Connected())
	assert.Equal(t, int64(1), collector.GetConnectionsOpened())
	require.NoError(t, conn.Close())
}

func TestOpenConnectionFailure(t *testing.T) {
	refused := errors.New("connection refused")
	cluster := testutil.NewMockCluster().SetCreateError(refused)
	collector := testutil.NewTestMetricsCollector()
	logger := testutil.NewRecordingLogger()
	d := New(WithClusterFactory(cluster.Factory()), WithMetrics(collector), WithLogger(logger))

	conn, err := d.OpenConnection(context.Background(), &vdba.Config{Database: "shop"})
	require.Nil(t, conn)
	require.ErrorIs(t, err, types.ErrConnection)
	require.ErrorIs(t, err, refused)

	var connErr *types.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "open", connErr.Operation)

	assert.Equal(t, int64(1), collector.GetConnectionErrors())
	assert.Len(t, logger.Find("warn", "failed to open connection"), 1)
}

func TestRegistryOpenConnection(t *testing.T) {
	cluster := testutil.NewMockCluster()
	registry := vdba.NewRegistry()
	_, err := Register(registry, WithClusterFactory(cluster.Factory()))
	require.NoError(t, err)

	conn, err := registry.OpenConnection(context.Background(), "C*", &vdba.Config{Database: "shop"})
	require.NoError(t, err)
	defer conn.Close()

	require.NotNil(t, conn.Database())
	assert.Equal(t, "shop", conn.Database().Name())
}
