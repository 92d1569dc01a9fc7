package planeshift

import (
	"fmt"
	"image"
	"iter"

	"github.com/gogpu/gpucontext"
)

// LayerContext owns a layer tree and drives a Backend with its changes.
//
// Layers are entities named by LayerID; their aspects live in separate
// component stores (tree links, container child lists, geometry, surface
// options). Every mutation must happen inside a transaction, see
// BeginTransaction.
//
// LayerContext is not safe for concurrent use. Only the promises it returns
// may be used from other goroutines.
type LayerContext struct {
	nextID LayerID

	level   int
	promise *Promise[struct{}]

	tree      LayerMap[LayerTreeInfo]
	container LayerMap[LayerContainerInfo]
	geometry  LayerMap[LayerGeometryInfo]
	surface   LayerMap[LayerSurfaceInfo]

	backend Backend
	closed  bool
}

// NewLayerContext creates a context attached to conn.
//
// Without options the backend is chosen with DefaultBackend, so at least
// one backend package must be linked in:
//
//	import _ "github.com/gogpu/planeshift/backend/software"
func NewLayerContext(conn Connection, opts ...ContextOption) (*LayerContext, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := o.backend
	if b == nil {
		var err error
		if o.backendName != "" {
			b, err = NewBackend(o.backendName, conn)
		} else {
			b, err = DefaultBackend(conn)
		}
		if err != nil {
			return nil, err
		}
	}
	trackBackend(b)
	Logger().Debug("planeshift: context created", "backend", b.Name())

	return &LayerContext{
		nextID:  1,
		promise: ResolvedPromise(struct{}{}),
		backend: b,
	}, nil
}

// Backend returns the backend the context drives.
func (c *LayerContext) Backend() Backend {
	return c.backend
}

// Components returns a read-only view of the component stores.
func (c *LayerContext) Components() Components {
	return Components{
		Tree:      &c.tree,
		Container: &c.container,
		Geometry:  &c.geometry,
		Surface:   &c.surface,
	}
}

// Close releases the backend and every GPU resource it holds. Further use
// of the context panics. Close is idempotent.
func (c *LayerContext) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	untrackBackend(c.backend)
	return c.backend.Close()
}

func (c *LayerContext) checkOpen(op string) {
	if c.closed {
		panic(fmt.Sprintf("planeshift: %s on closed LayerContext", op))
	}
}

func (c *LayerContext) checkTransaction(op string) {
	c.checkOpen(op)
	if c.level == 0 {
		panic(fmt.Sprintf("planeshift: %s outside a transaction", op))
	}
}

// checkLayer panics unless layer was created and not yet deleted.
func (c *LayerContext) checkLayer(op string, layer LayerID) {
	if !c.geometry.Has(layer) {
		panic(fmt.Sprintf("planeshift: %s: unknown layer %d", op, layer))
	}
}

// ParentOf returns what layer is attached to, or false if it is detached.
func (c *LayerContext) ParentOf(layer LayerID) (LayerParent, bool) {
	info, ok := c.tree.Get(layer)
	return info.Parent, ok
}

// Children iterates over the children of a container in front-to-back
// sibling order. It yields nothing for surfaces.
func (c *LayerContext) Children(layer LayerID) iter.Seq[LayerID] {
	return func(yield func(LayerID) bool) {
		info, ok := c.container.Get(layer)
		if !ok {
			return
		}
		for child := info.FirstChild; child != NoLayer; child = c.tree.Must(child).NextSibling {
			if !yield(child) {
				return
			}
		}
	}
}

// LayerBounds returns the parent-relative bounds of layer.
func (c *LayerContext) LayerBounds(layer LayerID) Rect {
	return c.geometry.Must(layer).Bounds
}

// LayerSurfaceOptions returns the options of a surface layer.
func (c *LayerContext) LayerSurfaceOptions(layer LayerID) SurfaceOptions {
	return c.surface.Must(layer).Options
}

// IsContainer reports whether layer is a container layer.
func (c *LayerContext) IsContainer(layer LayerID) bool {
	return c.container.Has(layer)
}

// Window returns the backend's window, or nil.
func (c *LayerContext) Window() gpucontext.WindowProvider {
	return c.backend.Window()
}

// GLAPI reports which GL flavor the backend's contexts expose.
func (c *LayerContext) GLAPI() GLAPI {
	return c.backend.GLAPI()
}

// CreateGLContext creates a rendering context for surfaces with options.
func (c *LayerContext) CreateGLContext(options SurfaceOptions) (GLContext, error) {
	c.checkOpen("CreateGLContext")
	return c.backend.CreateGLContext(options)
}

// WrapGLContext adopts a context created by the application.
func (c *LayerContext) WrapGLContext(native any) (GLContext, error) {
	c.checkOpen("WrapGLContext")
	return c.backend.WrapGLContext(native)
}

// BindLayerToGLContext prepares the framebuffer the application draws the
// content of a surface layer into.
func (c *LayerContext) BindLayerToGLContext(layer LayerID, ctx GLContext) (GLContextLayerBinding, error) {
	c.checkOpen("BindLayerToGLContext")
	c.checkLayer("BindLayerToGLContext", layer)
	if !c.surface.Has(layer) {
		return GLContextLayerBinding{}, fmt.Errorf("%w: %d", ErrNotSurfaceLayer, layer)
	}
	return c.backend.BindLayerToGLContext(layer, ctx, c.Components())
}

// PresentGLContext publishes content drawn through binding. changed is in
// the layer's local coordinates. The content reaches the display with the
// enclosing transaction.
func (c *LayerContext) PresentGLContext(binding GLContextLayerBinding, changed Rect) error {
	c.checkTransaction("PresentGLContext")
	return c.backend.PresentGLContext(binding, changed, c.Components())
}

// ScreenshotHostedLayer captures a hosted layer as it appears once the
// current (or most recent) transaction has been presented.
func (c *LayerContext) ScreenshotHostedLayer(layer LayerID) *Promise[*image.RGBA] {
	c.checkOpen("ScreenshotHostedLayer")
	if parent, ok := c.ParentOf(layer); !ok || !parent.IsNativeHost() {
		panic(fmt.Sprintf("planeshift: ScreenshotHostedLayer: layer %d is not hosted", layer))
	}
	return c.backend.ScreenshotHostedLayer(layer, c.promise, c.Components())
}
