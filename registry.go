package planeshift

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// BackendFactory creates a backend attached to conn. It returns a
// *ConnectionError when the connection is unusable.
type BackendFactory func(conn Connection) (Backend, error)

// Registry names of the known backends.
const (
	BackendCoreAnimation     = "core-animation"
	BackendDirectComposition = "direct-composition"
	BackendWayland           = "wayland"
	BackendGLX               = "glx"
	BackendSoftware          = "software"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first to connect wins).
	// Native compositors come first; the software compositor is the fallback.
	backendPriority = []string{
		BackendCoreAnimation,
		BackendDirectComposition,
		BackendWayland,
		BackendGLX,
		BackendSoftware,
	}
)

// RegisterBackend registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func RegisterBackend(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// UnregisterBackend removes a backend from the registry.
// This is useful for testing.
func UnregisterBackend(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// AvailableBackends returns the registered backend names, sorted.
func AvailableBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBackendRegistered checks if a backend with the given name is registered.
func IsBackendRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// NewBackend constructs the named backend on conn.
func NewBackend(name string, conn Connection) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(conn)
}

// DefaultBackend constructs the first backend, in priority order, that
// accepts conn. Backends registered under names outside the priority list
// are tried last, in name order.
//
// If every backend fails, the returned *ConnectionError wraps ErrNoBackend
// and each backend's error.
func DefaultBackend(conn Connection) (Backend, error) {
	registryMu.RLock()
	order := make([]string, 0, len(backends))
	seen := make(map[string]bool, len(backendPriority))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			order = append(order, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range backends {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)
	factories := make([]BackendFactory, len(order))
	for i, name := range order {
		factories[i] = backends[name]
	}
	registryMu.RUnlock()

	errs := []error{ErrNoBackend}
	for i, factory := range factories {
		b, err := factory(conn)
		if err == nil {
			Logger().Info("planeshift: backend selected", "backend", order[i])
			return b, nil
		}
		Logger().Warn("planeshift: backend unavailable, falling back",
			"backend", order[i], "err", err)
		errs = append(errs, err)
	}
	return nil, &ConnectionError{Err: errors.Join(errs...)}
}
