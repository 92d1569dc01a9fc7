package planeshift

import (
	"image"

	"github.com/gogpu/gpucontext"
)

// Host is an externally owned presentation surface a layer can be anchored
// to, such as a native window or view. Its concrete type is defined by the
// backend.
type Host = any

// GLAPI identifies the flavor of OpenGL a backend's contexts expose.
type GLAPI uint8

const (
	// GL is desktop OpenGL.
	GL GLAPI = iota

	// GLES is OpenGL ES.
	GLES
)

// String returns "GL" or "GLES".
func (a GLAPI) String() string {
	if a == GLES {
		return "GLES"
	}
	return "GL"
}

// GLContext is a rendering context created by a backend. Its concrete type
// is defined by the backend that created it.
type GLContext interface {
	// SurfaceOptions returns the options the context was created with.
	SurfaceOptions() SurfaceOptions
}

// GLContextLayerBinding is the result of binding a surface layer for
// rendering: the framebuffer the application draws the layer's content into.
type GLContextLayerBinding struct {
	Layer       LayerID
	Framebuffer uint32
}

// Connection carries what a backend needs to attach to the platform.
type Connection struct {
	// Native is a backend-specific connection handle (a display, a
	// compositor device, or a software.Interface).
	Native any

	// Window is the window layers are hosted in by HostLayerInWindow.
	// It may be nil for backends that only host in explicit Hosts.
	Window gpucontext.WindowProvider

	// Device is the host application's GPU device, if any.
	Device gpucontext.DeviceProvider
}

// Backend maps a layer tree onto a concrete presentation mechanism.
//
// LayerContext is the only caller. It updates its component stores first
// and then passes a read-only Components view to the hook, so backends see
// the state after the mutation. A backend must eventually resolve the
// promise it receives in EndTransaction.
//
// Backends are not required to be safe for concurrent use.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// CreateGLContext creates a rendering context for surfaces with the
	// given options. Failures wrap ErrGLContext.
	CreateGLContext(options SurfaceOptions) (GLContext, error)

	// WrapGLContext adopts a native context created by the application.
	WrapGLContext(native any) (GLContext, error)

	// GLAPI reports which GL flavor contexts expose.
	GLAPI() GLAPI

	BeginTransaction()

	// EndTransaction commits the outermost transaction and resolves
	// promise once its effects reach the display.
	EndTransaction(promise *Promise[struct{}], c Components)

	AddContainerLayer(layer LayerID)
	AddSurfaceLayer(layer LayerID)
	DeleteLayer(layer LayerID)

	// InsertBefore is called after newChild has been linked under parent.
	InsertBefore(parent, newChild, reference LayerID, c Components)

	// RemoveFromSuperlayer is called before layer is unlinked from parent,
	// so c still shows layer in place.
	RemoveFromSuperlayer(layer, parent LayerID, c Components)

	// HostLayer anchors layer to host.
	HostLayer(layer LayerID, host Host, c Components)

	// HostLayerInWindow anchors layer to the connection's window.
	HostLayerInWindow(layer LayerID, c Components) error

	// UnhostLayer is called before a hosted layer is detached; c still
	// shows it hosted.
	UnhostLayer(layer LayerID, c Components)

	// SetLayerBounds is called after the bounds of layer changed from
	// oldBounds.
	SetLayerBounds(layer LayerID, oldBounds Rect, c Components)

	SetLayerSurfaceOptions(layer LayerID, c Components)

	// BindLayerToGLContext prepares the framebuffer the application draws
	// layer's content into.
	BindLayerToGLContext(layer LayerID, ctx GLContext, c Components) (GLContextLayerBinding, error)

	// PresentGLContext publishes the content drawn into binding. changed is
	// in the layer's local coordinates.
	PresentGLContext(binding GLContextLayerBinding, changed Rect, c Components) error

	// ScreenshotHostedLayer captures the pixels of a hosted layer after
	// transaction resolves.
	ScreenshotHostedLayer(layer LayerID, transaction *Promise[struct{}], c Components) *Promise[*image.RGBA]

	// Window returns the connection's window, or nil.
	Window() gpucontext.WindowProvider

	// Close releases every resource the backend owns. It is safe to call
	// more than once.
	Close() error
}
