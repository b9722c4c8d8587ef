// Package events delivers notifications about schema changes.
//
// The Cassandra driver publishes an Event after every applied CREATE/DROP
// TABLE and CREATE/DROP INDEX statement when a Publisher is configured with
// cassandra.WithEventPublisher. Two implementations are provided:
//
//   - Local: in-memory, for tests and in-process hooks
//   - NATSPublisher / NATSWatcher: durable fan-out over NATS JetStream
//
// Events are encoded with MessagePack; the event ID uses extension type 10.
//
// Example:
//
//	publisher := events.NewLocal()
//	driver := cassandra.New(cassandra.WithEventPublisher(publisher))
//
//	go func() {
//	    for ev := range publisher.Watch(ctx) {
//	        log.Printf("%s %s.%s", ev.Kind, ev.Keyspace, ev.Object)
//	    }
//	}()
package events
