// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
)

// Backend is the software compositor.
type Backend struct {
	iface Interface
	dev   render.Device

	// layers holds the framebuffer cache of each surface layer.
	layers planeshift.LayerMap[layerInfo]

	// roots are the hosted layers in hosting order; damage holds the
	// pending dirty rectangle of each, in host coordinates.
	roots  []planeshift.LayerID
	damage map[planeshift.LayerID]planeshift.Rect

	clearColor *color.RGBA

	// windowSize is the window framebuffer size of the last commit.
	windowSize image.Point

	logger         *slog.Logger
	explicitLogger bool

	// txnErr is the first failure since BeginTransaction. It rejects the
	// transaction's promise.
	txnErr error
	closed bool
}

type layerInfo struct {
	fb *layerFramebuffer
}

// init registers the software backend on package import.
func init() {
	planeshift.RegisterBackend(planeshift.BackendSoftware, func(conn planeshift.Connection) (planeshift.Backend, error) {
		b, err := New(conn)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}

// New creates a software backend for conn.
//
// conn.Native may be an Interface. Otherwise conn.Window is required and a
// Headless interface is built from it and conn.Device.
func New(conn planeshift.Connection, opts ...Option) (*Backend, error) {
	if iface, ok := conn.Native.(Interface); ok {
		return NewWithInterface(iface, opts...)
	}
	if conn.Native != nil || conn.Window == nil {
		return nil, &planeshift.ConnectionError{
			Backend: planeshift.BackendSoftware,
			Err:     planeshift.ErrUnsupportedConnection,
		}
	}
	h, err := NewHeadless(conn.Window, conn.Device)
	if err != nil {
		return nil, &planeshift.ConnectionError{Backend: planeshift.BackendSoftware, Err: err}
	}
	return NewWithInterface(h, opts...)
}

// NewWithInterface creates a software backend drawing through iface.
func NewWithInterface(iface Interface, opts ...Option) (*Backend, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := iface.MakeCurrent(); err != nil {
		return nil, &planeshift.ConnectionError{Backend: planeshift.BackendSoftware, Err: err}
	}
	b := &Backend{
		iface:      iface,
		dev:        iface.Device(),
		damage:     make(map[planeshift.LayerID]planeshift.Rect),
		clearColor: o.clearColor,
		logger:     o.logger,
		windowSize: iface.DefaultFramebufferSize(),
	}
	if b.logger != nil {
		b.explicitLogger = true
	} else {
		b.logger = planeshift.Logger()
	}
	return b, nil
}

// Name implements planeshift.Backend.
func (b *Backend) Name() string {
	return planeshift.BackendSoftware
}

// Interface returns the interface the backend draws through.
func (b *Backend) Interface() Interface {
	return b.iface
}

// SetLogger replaces the logger unless one was given with WithLogger.
func (b *Backend) SetLogger(l *slog.Logger) {
	if !b.explicitLogger {
		b.logger = l
	}
}

// CreateGLContext implements planeshift.Backend. All contexts share the
// interface's device.
func (b *Backend) CreateGLContext(options planeshift.SurfaceOptions) (planeshift.GLContext, error) {
	if b.closed {
		return nil, fmt.Errorf("%w: %w", planeshift.ErrGLContext, ErrClosed)
	}
	return &GLContext{options: options, dev: b.dev}, nil
}

// WrapGLContext implements planeshift.Backend. native must be a *GLContext
// or a render.Device.
func (b *Backend) WrapGLContext(native any) (planeshift.GLContext, error) {
	switch n := native.(type) {
	case *GLContext:
		return n, nil
	case render.Device:
		return &GLContext{dev: n}, nil
	default:
		return nil, fmt.Errorf("%w: cannot wrap %T", planeshift.ErrGLContext, native)
	}
}

// GLAPI implements planeshift.Backend.
func (b *Backend) GLAPI() planeshift.GLAPI {
	return b.iface.GLAPI()
}

// BeginTransaction implements planeshift.Backend.
func (b *Backend) BeginTransaction() {
	b.txnErr = nil
	if err := b.iface.MakeCurrent(); err != nil {
		b.logger.Warn("software: make current failed", "err", err)
		b.txnErr = err
	}
}

// AddContainerLayer implements planeshift.Backend.
func (b *Backend) AddContainerLayer(planeshift.LayerID) {}

// AddSurfaceLayer implements planeshift.Backend.
func (b *Backend) AddSurfaceLayer(layer planeshift.LayerID) {
	b.layers.Add(layer, layerInfo{})
}

// DeleteLayer implements planeshift.Backend.
func (b *Backend) DeleteLayer(layer planeshift.LayerID) {
	if info := b.layers.GetMut(layer); info != nil {
		b.releaseFramebuffer(layer, info)
	}
	b.layers.RemoveIfPresent(layer)
}

// HostLayer implements planeshift.Backend. The host value is ignored: all
// layers are composited into the interface's window.
func (b *Backend) HostLayer(layer planeshift.LayerID, _ planeshift.Host, c planeshift.Components) {
	if !slices.Contains(b.roots, layer) {
		b.roots = append(b.roots, layer)
	}
	b.invalidateLayer(layer, localRect(c, layer), c)
}

// HostLayerInWindow implements planeshift.Backend.
func (b *Backend) HostLayerInWindow(layer planeshift.LayerID, c planeshift.Components) error {
	if b.iface.Window() == nil {
		return planeshift.ErrNoWindow
	}
	b.HostLayer(layer, b.iface.Window(), c)
	return nil
}

// UnhostLayer implements planeshift.Backend. The window area the layer
// covered is damaged in every remaining hosted layer so they redraw it.
func (b *Backend) UnhostLayer(layer planeshift.LayerID, c planeshift.Components) {
	vacated := localRect(c, layer).Translate(c.Origin(layer))
	b.roots = slices.DeleteFunc(b.roots, func(id planeshift.LayerID) bool { return id == layer })
	delete(b.damage, layer)
	for _, root := range b.roots {
		b.addDamage(root, vacated)
	}
}

// HostedLayers returns the hosted layers in hosting order.
func (b *Backend) HostedLayers() []planeshift.LayerID {
	return slices.Clone(b.roots)
}

// Window implements planeshift.Backend.
func (b *Backend) Window() gpucontext.WindowProvider {
	return b.iface.Window()
}

// Close implements planeshift.Backend. It releases every layer
// framebuffer.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	for id := range b.layers.All() {
		b.releaseFramebuffer(id, b.layers.At(id))
	}
	b.roots = nil
	clear(b.damage)
	return nil
}

// Ensure Backend implements planeshift.Backend.
var _ planeshift.Backend = (*Backend)(nil)
