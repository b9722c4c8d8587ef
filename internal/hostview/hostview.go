// Package hostview records the hosts a CQL driver discovers so that their
// liveness can be inspected later.
//
// gocql does not expose the host list of a session. Both adapters install a
// host filter that accepts every host and records it here; the recorded
// host values are live, so their up/down state is read at snapshot time.
package hostview

import (
	"sort"
	"sync"

	"github.com/arloliu/vdba/adapter/cql"
)

// Recorder collects driver host values keyed by address.
type Recorder[H any] struct {
	mu       sync.RWMutex
	hosts    map[string]H
	key      func(H) string
	describe func(H) cql.HostInfo
}

// New creates a recorder.
//
// Parameters:
//   - key: Returns a stable identity for a host (e.g. "10.0.0.1:9042")
//   - describe: Converts a host to its current cql.HostInfo view
//
// Returns:
//   - *Recorder[H]: An empty recorder
func New[H any](key func(H) string, describe func(H) cql.HostInfo) *Recorder[H] {
	return &Recorder[H]{
		hosts:    make(map[string]H),
		key:      key,
		describe: describe,
	}
}

// Accept records host and always returns true, so it can back a driver host filter.
func (r *Recorder[H]) Accept(host H) bool {
	k := r.key(host)

	r.mu.Lock()
	r.hosts[k] = host
	r.mu.Unlock()

	return true
}

// Reset forgets every recorded host.
//
// Clusters call it before creating a session so that hosts seen only by a
// previous session do not leak into the new session's view.
func (r *Recorder[H]) Reset() {
	r.mu.Lock()
	clear(r.hosts)
	r.mu.Unlock()
}

// Snapshot returns the current view of every recorded host, sorted by address.
func (r *Recorder[H]) Snapshot() []cql.HostInfo {
	r.mu.RLock()
	infos := make([]cql.HostInfo, 0, len(r.hosts))
	for _, h := range r.hosts {
		infos = append(infos, r.describe(h))
	}
	r.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Address != infos[j].Address {
			return infos[i].Address < infos[j].Address
		}
		return infos[i].Port < infos[j].Port
	})

	return infos
}

// Len returns the number of recorded hosts.
func (r *Recorder[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.hosts)
}
