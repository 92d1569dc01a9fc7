package planeshift

import (
	"fmt"
	"image"
	"log/slog"
	"testing"

	"github.com/gogpu/gpucontext"
)

// recordingBackend is a Backend that records every call and resolves
// transactions immediately.
type recordingBackend struct {
	calls   []string
	ends    int
	begins  int
	hostErr error
	closed  int
	logger  *slog.Logger
	resolve bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{resolve: true}
}

func (r *recordingBackend) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingBackend) Name() string { return "recording" }

func (r *recordingBackend) CreateGLContext(options SurfaceOptions) (GLContext, error) {
	return fakeGLContext(options), nil
}

func (r *recordingBackend) WrapGLContext(native any) (GLContext, error) {
	return nil, ErrGLContext
}

func (r *recordingBackend) GLAPI() GLAPI { return GLES }

func (r *recordingBackend) BeginTransaction() {
	r.begins++
	r.record("begin")
}

func (r *recordingBackend) EndTransaction(p *Promise[struct{}], c Components) {
	r.ends++
	r.record("end")
	if r.resolve {
		p.Resolve(struct{}{})
	}
}

func (r *recordingBackend) AddContainerLayer(layer LayerID) { r.record("add-container %d", layer) }
func (r *recordingBackend) AddSurfaceLayer(layer LayerID)   { r.record("add-surface %d", layer) }
func (r *recordingBackend) DeleteLayer(layer LayerID)       { r.record("delete %d", layer) }

func (r *recordingBackend) InsertBefore(parent, newChild, reference LayerID, c Components) {
	r.record("insert %d %d %d", parent, newChild, reference)
}

func (r *recordingBackend) RemoveFromSuperlayer(layer, parent LayerID, c Components) {
	// The layer must still be linked when the backend sees it.
	info := c.Tree.Must(layer)
	r.record("remove %d %d linked=%t", layer, parent, info.Parent == ParentLayer(parent))
}

func (r *recordingBackend) HostLayer(layer LayerID, host Host, c Components) {
	r.record("host %d %v", layer, host)
}

func (r *recordingBackend) HostLayerInWindow(layer LayerID, c Components) error {
	r.record("host-window %d", layer)
	return r.hostErr
}

func (r *recordingBackend) UnhostLayer(layer LayerID, c Components) {
	info := c.Tree.Must(layer)
	r.record("unhost %d hosted=%t", layer, info.Parent.IsNativeHost())
}

func (r *recordingBackend) SetLayerBounds(layer LayerID, old Rect, c Components) {
	r.record("bounds %d %v -> %v", layer, old, c.Geometry.Must(layer).Bounds)
}

func (r *recordingBackend) SetLayerSurfaceOptions(layer LayerID, c Components) {
	r.record("options %d %v", layer, c.Surface.Must(layer).Options)
}

func (r *recordingBackend) BindLayerToGLContext(layer LayerID, ctx GLContext, c Components) (GLContextLayerBinding, error) {
	r.record("bind %d", layer)
	return GLContextLayerBinding{Layer: layer, Framebuffer: uint32(layer) + 100}, nil
}

func (r *recordingBackend) PresentGLContext(binding GLContextLayerBinding, changed Rect, c Components) error {
	r.record("present %d %v", binding.Layer, changed)
	return nil
}

func (r *recordingBackend) ScreenshotHostedLayer(layer LayerID, txn *Promise[struct{}], c Components) *Promise[*image.RGBA] {
	r.record("screenshot %d", layer)
	out := NewPromise[*image.RGBA]()
	txn.Then(func(struct{}) { out.Resolve(image.NewRGBA(image.Rect(0, 0, 1, 1))) })
	return out
}

func (r *recordingBackend) Window() gpucontext.WindowProvider {
	return gpucontext.NullWindowProvider{W: 10, H: 10}
}

func (r *recordingBackend) Close() error {
	r.closed++
	return nil
}

func (r *recordingBackend) SetLogger(l *slog.Logger) { r.logger = l }

type fakeGLContext SurfaceOptions

func (f fakeGLContext) SurfaceOptions() SurfaceOptions { return SurfaceOptions(f) }

func newTestContext(t testing.TB) (*LayerContext, *recordingBackend) {
	t.Helper()
	b := newRecordingBackend()
	ctx, err := NewLayerContext(Connection{}, WithBackend(b))
	if err != nil {
		t.Fatalf("NewLayerContext() error = %v", err)
	}
	return ctx, b
}

// mustPanic runs fn and reports whether it panicked.
func mustPanic(fn func()) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	fn()
	return false
}
