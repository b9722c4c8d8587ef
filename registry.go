package vdba

import (
	"context"
	"sort"
	"sync"

	"github.com/arloliu/vdba/types"
)

// Registry maps driver names and aliases to drivers.
//
// A registry is created by the application and passed to whatever needs to
// resolve drivers; there is no package-level default. Lookups are
// case-sensitive. Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewRegistry creates an empty registry.
//
// Returns:
//   - *Registry: A registry with no drivers
//
// Example:
//
//	registry := vdba.NewRegistry()
//	cassandra.Register(registry)
//
//	conn, err := registry.OpenConnection(ctx, "Cassandra", &vdba.Config{Database: "odba"})
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Driver),
	}
}

// Register indexes d under its name and every alias.
//
// A driver registered earlier under any of the same names is replaced for that name.
//
// Parameters:
//   - d: The driver to register
//
// Returns:
//   - error: types.ErrNilDriver if d is nil
func (r *Registry) Register(d Driver) error {
	if d == nil {
		return types.ErrNilDriver
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.drivers[d.Name()] = d
	for _, alias := range d.Aliases() {
		r.drivers[alias] = d
	}

	return nil
}

// GetDriver returns the driver registered under name.
//
// Parameters:
//   - name: Driver name or alias, case-sensitive
//
// Returns:
//   - Driver: The registered driver
//   - error: *types.UnknownDriverError if nothing is registered under name
func (r *Registry) GetDriver(name string) (Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[name]
	if !ok {
		return nil, &types.UnknownDriverError{Name: name}
	}

	return d, nil
}

// IsRegistered reports whether name resolves to a driver.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.drivers[name]
	return ok
}

// Drivers returns the sorted primary names of all registered drivers.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.drivers))
	for _, d := range r.drivers {
		seen[d.Name()] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Unregister removes the driver resolved by name together with all its names.
//
// Unregistering an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[name]
	if !ok {
		return
	}

	for key, registered := range r.drivers {
		if registered == d {
			delete(r.drivers, key)
		}
	}
}

// Clear removes all drivers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drivers = make(map[string]Driver)
}

// CreateConnection resolves the driver and creates an unopened connection.
//
// Parameters:
//   - name: Driver name or alias
//   - cfg: Connection configuration
//
// Returns:
//   - Connection: An unopened connection
//   - error: Lookup or configuration error
func (r *Registry) CreateConnection(name string, cfg *Config) (Connection, error) {
	d, err := r.GetDriver(name)
	if err != nil {
		return nil, err
	}

	return d.CreateConnection(cfg)
}

// OpenConnection resolves the driver, creates a connection and opens it.
//
// Parameters:
//   - ctx: Context for the open
//   - name: Driver name or alias
//   - cfg: Connection configuration
//
// Returns:
//   - Connection: An open connection
//   - error: Lookup, configuration or connection error
func (r *Registry) OpenConnection(ctx context.Context, name string, cfg *Config) (Connection, error) {
	d, err := r.GetDriver(name)
	if err != nil {
		return nil, err
	}

	return d.OpenConnection(ctx, cfg)
}
