package integration_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/cassandra"
	"github.com/arloliu/vdba/test/testutil"
)

const testKeyspace = "vdba_it"

// sharedCluster is the CQL container used by all integration tests.
var sharedCluster *testutil.CQLCluster

// TestMain starts one container for the whole package.
// Prefers ScyllaDB when VDBA_PREFER_SCYLLA=1 and AIO is available, otherwise Cassandra.
func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		return
	}

	if os.Getenv("SKIP_INTEGRATION_TESTS") == "1" {
		fmt.Println("Skipping integration tests (SKIP_INTEGRATION_TESTS=1)")

		return
	}

	ctx := context.Background()
	opts := testutil.DefaultCQLClusterOptions(testKeyspace)
	opts.PreferScyllaDB = os.Getenv("VDBA_PREFER_SCYLLA") == "1"

	fmt.Println("Starting shared CQL cluster for integration tests...")
	cluster, err := testutil.StartCQLCluster(ctx, opts)
	if err != nil {
		fmt.Printf("Failed to start CQL cluster: %v\n", err)

		return
	}
	sharedCluster = cluster
	fmt.Printf("Shared cluster ready! (using %s)\n", cluster.Type)

	code := m.Run()

	_ = sharedCluster.Terminate(ctx)
	os.Exit(code)
}

// clusterConfig returns a fresh configuration for the shared cluster or skips the test.
func clusterConfig(t *testing.T) *vdba.Config {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if sharedCluster == nil {
		t.Skip("shared cluster not available (run with -short=false and Docker)")
	}

	return sharedCluster.Config()
}

// openDatabase opens a connection through a registry and returns its database.
func openDatabase(t *testing.T, opts ...cassandra.Option) vdba.Database {
	t.Helper()

	cfg := clusterConfig(t)
	cfg.ReadConsistency = "one"
	cfg.WriteConsistency = "one"

	registry := vdba.NewRegistry()
	_, err := cassandra.Register(registry, opts...)
	require.NoError(t, err)

	conn, err := registry.OpenConnection(t.Context(), cassandra.DriverName, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := conn.Database()
	require.NotNil(t, db)

	return db
}

// uniqueName returns an identifier that is unique per call.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
