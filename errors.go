package planeshift

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by LayerContext and backends.
var (
	// ErrUnsupportedConnection is returned when a backend cannot use the
	// given Connection.
	ErrUnsupportedConnection = errors.New("planeshift: unsupported connection")

	// ErrNoBackend is returned when no registered backend accepts the
	// connection.
	ErrNoBackend = errors.New("planeshift: no backend available")

	// ErrBackendNotAvailable is returned when a named backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("planeshift: backend not registered")

	// ErrGLContext is returned when a GL context cannot be created or wrapped.
	ErrGLContext = errors.New("planeshift: GL context creation failed")

	// ErrNotSurfaceLayer is returned when a container layer is bound to a
	// GL context.
	ErrNotSurfaceLayer = errors.New("planeshift: layer is not a surface layer")

	// ErrEmptyBounds is returned when a layer with no area is bound for
	// rendering.
	ErrEmptyBounds = errors.New("planeshift: layer bounds are empty")

	// ErrNoWindow is returned by HostLayerInWindow when the connection has
	// no window.
	ErrNoWindow = errors.New("planeshift: connection has no window")
)

// ConnectionError reports that a backend could not be constructed from a
// Connection.
type ConnectionError struct {
	// Backend is the registry name of the backend that failed, or empty
	// when selection itself failed.
	Backend string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("planeshift: connection failed: %v", e.Err)
	}
	return fmt.Sprintf("planeshift: %s backend: connection failed: %v", e.Backend, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
