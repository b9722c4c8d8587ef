package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPublishAndWatch(t *testing.T) {
	local := NewLocal()
	defer local.Close()

	ctx := t.Context()
	updates := local.Watch(ctx)

	ev := NewEvent(TableCreated, "ks", "users", "users", "CREATE TABLE users (id int PRIMARY KEY)")
	require.NoError(t, local.Publish(ctx, ev))

	select {
	case got := <-updates:
		assert.Equal(t, ev.ID, got.ID)
		assert.Equal(t, "users", got.Object)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	assert.Len(t, local.Events(), 1)
}

func TestLocalWatchReturnsSameChannel(t *testing.T) {
	local := NewLocal()
	defer local.Close()

	first := local.Watch(t.Context())
	second := local.Watch(context.Background())
	assert.Equal(t, first, second)
}

func TestLocalFullBufferKeepsHistory(t *testing.T) {
	local := NewLocalWithBuffer(1)
	defer local.Close()

	ctx := t.Context()
	for range 3 {
		require.NoError(t, local.Publish(ctx, NewEvent(TableDropped, "ks", "t", "t", "DROP TABLE IF EXISTS t")))
	}

	assert.Len(t, local.Events(), 3)

	updates := local.Watch(ctx)
	<-updates
	select {
	case <-updates:
		t.Fatal("only one event fits in the buffer")
	default:
	}
}

func TestLocalClose(t *testing.T) {
	local := NewLocal()
	updates := local.Watch(t.Context())

	require.NoError(t, local.Close())
	require.NoError(t, local.Close())

	select {
	case _, ok := <-updates:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	err := local.Publish(context.Background(), NewEvent(TableCreated, "ks", "t", "t", ""))
	require.ErrorIs(t, err, ErrClosed)
}

func TestLocalCloseWithoutWatch(t *testing.T) {
	local := NewLocal()
	require.NoError(t, local.Close())

	_, ok := <-local.Watch(t.Context())
	assert.False(t, ok)
}

func TestLocalContextCancelClosesChannel(t *testing.T) {
	local := NewLocal()
	defer local.Close()

	ctx, cancel := context.WithCancel(context.Background())
	updates := local.Watch(ctx)
	cancel()

	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	// Publishing still records history after the watch ended.
	require.NoError(t, local.Publish(context.Background(), NewEvent(IndexDropped, "ks", "i", "", "DROP INDEX i")))
	assert.Len(t, local.Events(), 1)
}

func TestLocalConcurrentPublish(t *testing.T) {
	local := NewLocalWithBuffer(1000)
	defer local.Close()

	ctx := t.Context()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = local.Publish(ctx, NewEvent(TableCreated, "ks", "t", "t", ""))
			}
		}()
	}
	wg.Wait()

	assert.Len(t, local.Events(), 500)
}
