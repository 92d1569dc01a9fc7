// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
)

var (
	red         = color.RGBA{255, 0, 0, 255}
	green       = color.RGBA{0, 255, 0, 255}
	blue        = color.RGBA{0, 0, 255, 255}
	halfRed     = color.RGBA{128, 0, 0, 128}
	transparent = color.RGBA{}
)

// testWindow is a window provider that counts redraw requests.
type testWindow struct {
	w, h    int
	sf      float64
	redraws int
}

func (w *testWindow) Size() (int, int) { return w.w, w.h }

func (w *testWindow) ScaleFactor() float64 {
	if w.sf == 0 {
		return 1
	}
	return w.sf
}

func (w *testWindow) RequestRedraw() { w.redraws++ }

// scene is a layer context driving a headless software backend.
type scene struct {
	t   *testing.T
	ctx *planeshift.LayerContext
	b   *Backend
	h   *Headless
	win *testWindow
	gl  planeshift.GLContext
}

func newScene(t *testing.T, win *testWindow, opts ...Option) *scene {
	t.Helper()
	b, err := New(planeshift.Connection{Window: win}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, err := planeshift.NewLayerContext(planeshift.Connection{}, planeshift.WithBackend(b))
	if err != nil {
		t.Fatalf("NewLayerContext() error = %v", err)
	}
	t.Cleanup(func() { ctx.Close() })

	gl, err := ctx.CreateGLContext(0)
	if err != nil {
		t.Fatalf("CreateGLContext() error = %v", err)
	}
	return &scene{t: t, ctx: ctx, b: b, h: b.Interface().(*Headless), win: win, gl: gl}
}

// root adds a hosted container with bounds r. It must be called inside a
// transaction.
func (s *scene) root(r planeshift.Rect) planeshift.LayerID {
	id := s.ctx.AddContainerLayer()
	s.ctx.SetLayerBounds(id, r)
	s.ctx.HostLayer(nil, id)
	return id
}

// surface appends a surface with bounds r to parent and fills it with c.
func (s *scene) surface(parent planeshift.LayerID, r planeshift.Rect, opts planeshift.SurfaceOptions, c color.RGBA) planeshift.LayerID {
	id := s.ctx.AddSurfaceLayer()
	s.ctx.SetLayerBounds(id, r)
	s.ctx.SetLayerSurfaceOptions(id, opts)
	s.ctx.AppendChild(parent, id)
	s.fill(id, c)
	return id
}

// fill draws c over the whole of layer and presents it.
func (s *scene) fill(layer planeshift.LayerID, c color.RGBA) {
	s.t.Helper()
	binding, err := s.ctx.BindLayerToGLContext(layer, s.gl)
	if err != nil {
		s.t.Fatalf("BindLayerToGLContext(%d) error = %v", layer, err)
	}
	dev := s.gl.(*GLContext).Device()
	if err := dev.BindFramebuffer(binding.Framebuffer); err != nil {
		s.t.Fatalf("BindFramebuffer() error = %v", err)
	}
	dev.Clear(render.ClearColor, render.ClearValues{Color: c})
	changed := planeshift.Rect{Size: s.ctx.LayerBounds(layer).Size}
	if err := s.ctx.PresentGLContext(binding, changed); err != nil {
		s.t.Fatalf("PresentGLContext(%d) error = %v", layer, err)
	}
}

// commit ends the open transaction and requires it to resolve.
func (s *scene) commit() {
	s.t.Helper()
	p := s.ctx.EndTransaction()
	if _, err := p.Value(); err != nil || p.State() != planeshift.PromiseResolved {
		s.t.Fatalf("transaction state = %v, err = %v, want resolved", p.State(), err)
	}
}

// shot captures a hosted layer after the most recent transaction.
func (s *scene) shot(layer planeshift.LayerID) *image.RGBA {
	s.t.Helper()
	p := s.ctx.ScreenshotHostedLayer(layer)
	img, err := p.Value()
	if err != nil || p.State() != planeshift.PromiseResolved {
		s.t.Fatalf("screenshot state = %v, err = %v, want resolved", p.State(), err)
	}
	return img
}

func checkPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := img.RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}
