package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func TestEventMsgpRoundTrip(t *testing.T) {
	original := NewEvent(IndexCreated, "shop", "users_by_email", "users",
		"CREATE INDEX users_by_email ON users (email)")

	data, err := original.MarshalMsg(nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(data), original.Msgsize())

	var decoded Event
	rest, err := decoded.UnmarshalMsg(data)
	require.NoError(t, err)
	assert.Empty(t, rest)

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Kind, decoded.Kind)
	assert.Equal(t, original.Keyspace, decoded.Keyspace)
	assert.Equal(t, original.Object, decoded.Object)
	assert.Equal(t, original.Table, decoded.Table)
	assert.Equal(t, original.Statement, decoded.Statement)
	assert.True(t, original.Timestamp.Equal(decoded.Timestamp))
}

func TestEventUnmarshalSkipsUnknownFields(t *testing.T) {
	id := uuid.New()
	ext := extUUID(id)

	b := msgp.AppendMapHeader(nil, 3)
	b = msgp.AppendString(b, "id")
	b, err := msgp.AppendExtension(b, &ext)
	require.NoError(t, err)
	b = msgp.AppendString(b, "future")
	b = msgp.AppendArrayHeader(b, 2)
	b = msgp.AppendInt(b, 1)
	b = msgp.AppendBool(b, true)
	b = msgp.AppendString(b, "kind")
	b = msgp.AppendString(b, string(TableDropped))

	var decoded Event
	_, err = decoded.UnmarshalMsg(b)
	require.NoError(t, err)
	assert.Equal(t, id, decoded.ID)
	assert.Equal(t, TableDropped, decoded.Kind)
}

func TestEventUnmarshalTruncated(t *testing.T) {
	ev := NewEvent(TableCreated, "ks", "t", "t", "CREATE TABLE t (id int PRIMARY KEY)")
	data, err := ev.MarshalMsg(nil)
	require.NoError(t, err)

	var decoded Event
	_, err = decoded.UnmarshalMsg(data[:len(data)/2])
	require.Error(t, err)
}

func TestUUIDExtensionRejectsWrongLength(t *testing.T) {
	var u extUUID
	require.Error(t, u.UnmarshalBinary([]byte{1, 2, 3}))
	assert.Equal(t, UUIDExtensionType, u.ExtensionType())
	assert.Equal(t, 16, u.Len())
}

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	ev := NewEvent(TableCreated, "ks", "users", "users", "CREATE TABLE users (id int PRIMARY KEY)")

	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, TableCreated, ev.Kind)
	assert.False(t, ev.Timestamp.Before(before.Add(-time.Second)))
	assert.True(t, ev.Kind.Valid())
	assert.False(t, Kind("table_altered").Valid())
}
