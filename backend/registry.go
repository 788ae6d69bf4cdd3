package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new backend instance.
type Factory func() Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a backend factory available under name.
// This is typically called from init() functions in backend packages.
//
// Register panics if factory is nil or if name is already registered.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("backend: Register factory is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := factories[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// New returns a fresh instance of the named backend. The alias NameGPU
// resolves to NameWebGL.
func New(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[Canonical(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[Canonical(name)]
	return ok
}
