package planeshift

// ContextOption configures a LayerContext during creation.
// Use functional options to customize LayerContext behavior.
//
// Example:
//
//	// Best available backend for the connection
//	ctx, err := planeshift.NewLayerContext(conn)
//
//	// Explicit backend (dependency injection)
//	ctx, err := planeshift.NewLayerContext(conn, planeshift.WithBackend(b))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for LayerContext creation.
type contextOptions struct {
	backend     Backend
	backendName string
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		backend:     nil, // Chosen by DefaultBackend if nil
		backendName: "",
	}
}

// WithBackend makes the context drive b instead of selecting a backend
// from the registry. The context takes ownership of b and closes it in
// Close.
//
// Example:
//
//	b, _ := software.NewWithInterface(iface)
//	ctx, _ := planeshift.NewLayerContext(planeshift.Connection{}, planeshift.WithBackend(b))
func WithBackend(b Backend) ContextOption {
	return func(o *contextOptions) {
		o.backend = b
	}
}

// WithBackendName selects a registered backend by name instead of trying
// them in priority order. It is ignored when WithBackend is also given.
//
// Example:
//
//	ctx, err := planeshift.NewLayerContext(conn, planeshift.WithBackendName(planeshift.BackendSoftware))
func WithBackendName(name string) ContextOption {
	return func(o *contextOptions) {
		o.backendName = name
	}
}
