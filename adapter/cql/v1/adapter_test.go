package v1_test

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vdba/adapter/cql"
	v1 "github.com/arloliu/vdba/adapter/cql/v1" //nolint:revive // required for v1_test package
)

// TestConsistencyConstants verifies consistency constants match gocql.
func TestConsistencyConstants(t *testing.T) {
	require.Equal(t, cql.Consistency(gocql.Any), cql.Any)
	require.Equal(t, cql.Consistency(gocql.One), cql.One)
	require.Equal(t, cql.Consistency(gocql.Two), cql.Two)
	require.Equal(t, cql.Consistency(gocql.Three), cql.Three)
	require.Equal(t, cql.Consistency(gocql.Quorum), cql.Quorum)
	require.Equal(t, cql.Consistency(gocql.All), cql.All)
	require.Equal(t, cql.Consistency(gocql.LocalQuorum), cql.LocalQuorum)
	require.Equal(t, cql.Consistency(gocql.EachQuorum), cql.EachQuorum)
	require.Equal(t, cql.Consistency(gocql.LocalOne), cql.LocalOne)
}

func TestConsistencyConversionRoundTrip(t *testing.T) {
	for _, c := range []cql.Consistency{cql.Any, cql.One, cql.Quorum, cql.LocalQuorum, cql.EachQuorum, cql.LocalOne} {
		require.Equal(t, c, v1.FromGocqlConsistency(v1.ToGocqlConsistency(c)))
	}
}

func TestToGocqlConfig(t *testing.T) {
	config := v1.ToGocqlConfig(cql.ClusterConfig{
		Hosts:          []string{"10.0.0.1", "10.0.0.2"},
		Port:           19042,
		Keyspace:       "odba",
		Username:       "cassandra",
		Password:       "secret",
		Consistency:    cql.LocalQuorum,
		Timeout:        3 * time.Second,
		ConnectTimeout: 5 * time.Second,
		ProtoVersion:   4,
	})

	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, config.Hosts)
	require.Equal(t, 19042, config.Port)
	require.Equal(t, "odba", config.Keyspace)
	require.Equal(t, gocql.LocalQuorum, config.Consistency)
	require.Equal(t, 3*time.Second, config.Timeout)
	require.Equal(t, 5*time.Second, config.ConnectTimeout)
	require.Equal(t, 4, config.ProtoVersion)

	auth, ok := config.Authenticator.(gocql.PasswordAuthenticator)
	require.True(t, ok)
	require.Equal(t, "cassandra", auth.Username)
	require.Equal(t, "secret", auth.Password)
}

func TestToGocqlConfigDefaults(t *testing.T) {
	defaults := gocql.NewCluster("localhost")
	config := v1.ToGocqlConfig(cql.ClusterConfig{Hosts: []string{"localhost"}})

	require.Equal(t, cql.DefaultPort, config.Port)
	require.Equal(t, defaults.Timeout, config.Timeout)
	require.Equal(t, defaults.ConnectTimeout, config.ConnectTimeout)
	require.Nil(t, config.Authenticator)
}

func TestNewClusterInstallsHostFilter(t *testing.T) {
	cluster, err := v1.NewCluster(cql.ClusterConfig{Hosts: []string{"localhost"}})
	require.NoError(t, err)

	wrapped, ok := cluster.(*v1.Cluster)
	require.True(t, ok)
	require.NotNil(t, wrapped.Config().HostFilter)
}

// TestNewSessionNil verifies a session without a driver session reports closed.
func TestNewSessionNil(t *testing.T) {
	session := v1.NewSession(nil)
	require.NotNil(t, session)
	require.True(t, session.Closed())
	require.Nil(t, session.Hosts())
	require.Nil(t, v1.UnwrapSession(session))
	session.Close()
}

// TestNilIter verifies a nil-backed iterator behaves as an empty result.
func TestNilIter(t *testing.T) {
	iter := &v1.Iter{}

	require.False(t, iter.Scan())
	require.False(t, iter.MapScan(map[string]any{}))
	require.Equal(t, 0, iter.NumRows())
	require.Nil(t, iter.Columns())

	rows, err := iter.SliceMap()
	require.NoError(t, err)
	require.Nil(t, rows)
	require.NoError(t, iter.Close())
}
