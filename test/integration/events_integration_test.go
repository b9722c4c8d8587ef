package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/cassandra"
	"github.com/arloliu/vdba/events"
	"github.com/arloliu/vdba/test/testutil"
)

func TestSchemaEventsOverNATS(t *testing.T) {
	clusterConfig(t)

	js := testutil.StartEmbeddedNATS(t)
	publisher, err := events.NewNATSPublisher(js, events.WithStreamName("it-schema"))
	require.NoError(t, err)
	defer publisher.Close()

	watcher, err := events.NewNATSWatcher(js, events.WithStreamName("it-schema"), events.WithKeyspace(testKeyspace), events.WithDeliverAll())
	require.NoError(t, err)
	defer watcher.Close()
	updates := watcher.Watch(t.Context())

	db := openDatabase(t, cassandra.WithEventPublisher(publisher))
	table := uniqueName("audited")

	require.NoError(t, db.CreateTable(t.Context(), table, []vdba.Column{{Name: "id", Type: "int", PrimaryKey: true}}, nil))
	t.Cleanup(func() { _ = db.DropTable(context.Background(), table) })

	select {
	case ev := <-updates:
		assert.Equal(t, events.TableCreated, ev.Kind)
		assert.Equal(t, testKeyspace, ev.Keyspace)
		assert.Equal(t, table, ev.Object)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for schema event")
	}
}
