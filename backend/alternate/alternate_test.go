package alternate

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/backend/software"
)

var errRefused = errors.New("refused")

func refuse(planeshift.Connection) (planeshift.Backend, error) {
	return nil, &planeshift.ConnectionError{Backend: "native", Err: errRefused}
}

func softwareFactory(conn planeshift.Connection) (planeshift.Backend, error) {
	b, err := software.New(conn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func windowConn() planeshift.Connection {
	return planeshift.Connection{Window: gpucontext.NullWindowProvider{W: 8, H: 8}}
}

func TestPrimaryConnects(t *testing.T) {
	b, err := New(windowConn(), softwareFactory, refuse)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()
	if b.Fallback() {
		t.Error("Fallback() = true, want primary")
	}
	if b.Name() != "alternate(software)" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestFallbackConnects(t *testing.T) {
	b, err := New(windowConn(), refuse, softwareFactory)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()
	if !b.Fallback() {
		t.Error("Fallback() = false, want fallback")
	}
	if _, ok := b.Active().(*software.Backend); !ok {
		t.Errorf("Active() = %T, want *software.Backend", b.Active())
	}
}

func TestBothFail(t *testing.T) {
	_, err := New(planeshift.Connection{}, refuse, softwareFactory)
	var ce *planeshift.ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("New() error = %v, want *ConnectionError", err)
	}
	if !errors.Is(err, errRefused) || !errors.Is(err, planeshift.ErrUnsupportedConnection) {
		t.Errorf("New() error = %v, want both failures", err)
	}
}

func TestFactoryChains(t *testing.T) {
	f := Factory(refuse, Factory(refuse, softwareFactory))
	b, err := f(windowConn())
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer b.Close()
	if b.Name() != "alternate(alternate(software))" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestDrivesLayerContext(t *testing.T) {
	b, err := New(windowConn(), refuse, softwareFactory)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, err := planeshift.NewLayerContext(planeshift.Connection{}, planeshift.WithBackend(b))
	if err != nil {
		t.Fatalf("NewLayerContext() error = %v", err)
	}
	defer ctx.Close()

	ctx.BeginTransaction()
	root := ctx.AddContainerLayer()
	ctx.SetLayerBounds(root, planeshift.R(0, 0, 8, 8))
	if err := ctx.HostLayerInWindow(root); err != nil {
		t.Fatalf("HostLayerInWindow() error = %v", err)
	}
	p := ctx.EndTransaction()
	if p.State() != planeshift.PromiseResolved {
		t.Errorf("transaction state = %v, want resolved", p.State())
	}

	img, err := ctx.ScreenshotHostedLayer(root).Value()
	if err != nil {
		t.Fatalf("screenshot error = %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("screenshot width = %d, want 8", img.Bounds().Dx())
	}
}

func TestSetLoggerForwards(t *testing.T) {
	b, err := New(windowConn(), softwareFactory, refuse)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	var buf bytes.Buffer
	ctx, err := planeshift.NewLayerContext(planeshift.Connection{}, planeshift.WithBackend(b))
	if err != nil {
		t.Fatalf("NewLayerContext() error = %v", err)
	}
	// NewLayerContext hands the backend the package logger; set ours again.
	b.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx.BeginTransaction()
	root := ctx.AddContainerLayer()
	ctx.SetLayerBounds(root, planeshift.R(0, 0, 8, 8))
	ctx.HostLayer(nil, root)
	ctx.EndTransaction()
	ctx.Close()

	if !bytes.Contains(buf.Bytes(), []byte("software: commit")) {
		t.Errorf("forwarded logger saw nothing: %q", buf.String())
	}
}
