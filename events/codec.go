package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tinylib/msgp/msgp"
)

// UUIDExtensionType is the MessagePack extension type for event IDs.
// Types 3, 4, 5 are used by msgp for complex64, complex128, and time.Time.
const UUIDExtensionType int8 = 10

func init() {
	msgp.RegisterExtension(UUIDExtensionType, func() msgp.Extension {
		return new(extUUID)
	})
}

// extUUID adapts uuid.UUID to msgp.Extension.
type extUUID uuid.UUID

func (u *extUUID) ExtensionType() int8 {
	return UUIDExtensionType
}

func (u *extUUID) Len() int {
	return len(u)
}

func (u *extUUID) MarshalBinaryTo(b []byte) error {
	copy(b, u[:])

	return nil
}

func (u *extUUID) UnmarshalBinary(b []byte) error {
	if len(b) != len(u) {
		return fmt.Errorf("vdba/events: uuid extension has %d bytes, want %d", len(b), len(u))
	}
	copy(u[:], b)

	return nil
}

// Field names of the encoded event map.
const (
	fieldID        = "id"
	fieldKind      = "kind"
	fieldKeyspace  = "keyspace"
	fieldObject    = "object"
	fieldTable     = "table"
	fieldStatement = "statement"
	fieldTimestamp = "ts"
)

// MarshalMsg appends the MessagePack encoding of e to b.
//
// The event is encoded as a map so that fields can be added without
// breaking older readers. The timestamp is stored as Unix nanoseconds.
func (e *Event) MarshalMsg(b []byte) ([]byte, error) {
	id := extUUID(e.ID)

	b = msgp.AppendMapHeader(b, 7)
	b = msgp.AppendString(b, fieldID)
	b, err := msgp.AppendExtension(b, &id)
	if err != nil {
		return nil, fmt.Errorf("vdba/events: failed to encode id: %w", err)
	}
	b = msgp.AppendString(b, fieldKind)
	b = msgp.AppendString(b, string(e.Kind))
	b = msgp.AppendString(b, fieldKeyspace)
	b = msgp.AppendString(b, e.Keyspace)
	b = msgp.AppendString(b, fieldObject)
	b = msgp.AppendString(b, e.Object)
	b = msgp.AppendString(b, fieldTable)
	b = msgp.AppendString(b, e.Table)
	b = msgp.AppendString(b, fieldStatement)
	b = msgp.AppendString(b, e.Statement)
	b = msgp.AppendString(b, fieldTimestamp)
	b = msgp.AppendInt64(b, e.Timestamp.UnixNano())

	return b, nil
}

// UnmarshalMsg decodes an event from b and returns the remaining bytes.
//
// Unknown fields are skipped.
func (e *Event) UnmarshalMsg(b []byte) ([]byte, error) {
	n, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return nil, fmt.Errorf("vdba/events: failed to read event header: %w", err)
	}

	var out Event
	for i := uint32(0); i < n; i++ {
		var key string
		key, b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return nil, fmt.Errorf("vdba/events: failed to read field name: %w", err)
		}

		switch key {
		case fieldID:
			var id extUUID
			b, err = msgp.ReadExtensionBytes(b, &id)
			out.ID = uuid.UUID(id)
		case fieldKind:
			var kind string
			kind, b, err = msgp.ReadStringBytes(b)
			out.Kind = Kind(kind)
		case fieldKeyspace:
			out.Keyspace, b, err = msgp.ReadStringBytes(b)
		case fieldObject:
			out.Object, b, err = msgp.ReadStringBytes(b)
		case fieldTable:
			out.Table, b, err = msgp.ReadStringBytes(b)
		case fieldStatement:
			out.Statement, b, err = msgp.ReadStringBytes(b)
		case fieldTimestamp:
			var ns int64
			ns, b, err = msgp.ReadInt64Bytes(b)
			out.Timestamp = time.Unix(0, ns).UTC()
		default:
			b, err = msgp.Skip(b)
		}
		if err != nil {
			return nil, fmt.Errorf("vdba/events: failed to decode field %q: %w", key, err)
		}
	}

	*e = out

	return b, nil
}

// Msgsize returns an upper bound of the encoded size of e.
func (e *Event) Msgsize() int {
	return msgp.MapHeaderSize +
		7*msgp.StringPrefixSize + len(fieldID+fieldKind+fieldKeyspace+fieldObject+fieldTable+fieldStatement+fieldTimestamp) +
		msgp.ExtensionPrefixSize + len(e.ID) +
		5*msgp.StringPrefixSize + len(e.Kind) + len(e.Keyspace) + len(e.Object) + len(e.Table) + len(e.Statement) +
		msgp.Int64Size
}
