// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"

	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
	"golang.org/x/image/math/f32"
)

// DepthQuantum is the depth distance between consecutive surfaces. The
// [0, 1] depth range holds 4096 slots. Surfaces past that get depths above
// 1, which the software device still orders correctly; the overflow is only
// logged at debug level.
const DepthQuantum = 1.0 / 4096

// maxDepthSlots is the number of distinct depth slots per frame.
const maxDepthSlots = 4096

// EndTransaction implements planeshift.Backend.
//
// With at least one hosted layer it prepares the window and composites
// the dirty rectangles, presents them and resolves promise. A window resize
// damages every hosted layer in full. Without damage nothing is drawn or
// presented. Failures reject promise.
func (b *Backend) EndTransaction(promise *planeshift.Promise[struct{}], c planeshift.Components) {
	if b.closed {
		promise.Reject(ErrClosed)
		return
	}
	if err := b.txnErr; err != nil {
		b.txnErr = nil
		clear(b.damage)
		promise.Reject(err)
		return
	}
	if len(b.roots) == 0 {
		clear(b.damage)
		promise.Resolve(struct{}{})
		return
	}

	err := b.commit(c)
	clear(b.damage)
	if err != nil {
		b.logger.Warn("software: commit failed", "err", err)
		promise.Reject(err)
		return
	}
	promise.Resolve(struct{}{})
}

// frame holds the per-commit drawing parameters.
type frame struct {
	c        planeshift.Components
	viewport planeshift.Size // logical window size
	depth    float32
	slots    int
}

// commit redraws the dirty rectangle of every damaged root and presents
// their union.
func (b *Backend) commit(c planeshift.Components) error {
	if err := b.iface.PrepareToDraw(); err != nil {
		return err
	}
	size := b.iface.DefaultFramebufferSize()
	scale := float32(b.iface.ScaleFactor())
	viewport := planeshift.Size{Width: float32(size.X) / scale, Height: float32(size.Y) / scale}
	if size != b.windowSize {
		// The resized framebuffer lost its contents.
		b.windowSize = size
		for _, root := range b.roots {
			b.addDamage(root, planeshift.Rect{Size: viewport})
		}
		b.logger.Debug("software: window resized", "size", size)
	}
	if len(b.damage) == 0 {
		return nil
	}
	if err := b.dev.BindFramebuffer(render.DefaultFramebuffer); err != nil {
		return fmt.Errorf("software: bind window framebuffer: %w", err)
	}
	b.dev.Viewport(image.Rectangle{Max: size})

	f := &frame{c: c, viewport: viewport}

	var dirty planeshift.Rect
	for _, root := range b.roots {
		r, ok := b.damage[root]
		if !ok {
			continue
		}
		scissor := windowRect(r, scale, size.Y).Intersect(image.Rectangle{Max: size})
		if scissor.Empty() {
			continue
		}
		dirty = dirty.Union(r)
		b.dev.Scissor(scissor)
		b.clear()
		if err := b.composite(f); err != nil {
			return err
		}
	}
	if dirty.IsEmpty() {
		return nil
	}
	if err := b.dev.Flush(); err != nil {
		return err
	}
	b.logger.Debug("software: commit", "dirty", dirty.String(), "surfaces", f.slots)
	return b.iface.Present(dirty)
}

// windowRect converts r, in logical top-down window coordinates, to a
// physical bottom-up framebuffer rectangle.
func windowRect(r planeshift.Rect, scale float32, height int) image.Rectangle {
	p := r.Scale(scale).ImageRect()
	return image.Rect(p.Min.X, height-p.Max.Y, p.Max.X, height-p.Min.Y)
}

func (b *Backend) clear() {
	mask := render.ClearDepth | render.ClearStencil
	var v render.ClearValues
	if b.clearColor != nil {
		mask |= render.ClearColor
		v.Color = *b.clearColor
	}
	b.dev.Clear(mask, v)
}

// composite draws every hosted tree into the scissored area: first the
// opaque pass, then the translucent pass.
func (b *Backend) composite(f *frame) error {
	f.depth, f.slots = 0, 0
	b.dev.SetState(render.State{
		DepthTest:  true,
		DepthFunc:  render.CompareGreaterEqual,
		DepthWrite: true,
	})
	for _, root := range b.roots {
		if err := b.drawOpaque(f, root, planeshift.Point{}); err != nil {
			return err
		}
	}
	if f.slots > maxDepthSlots {
		b.logger.Debug("software: depth slots exhausted", "surfaces", f.slots, "slots", maxDepthSlots)
	}

	b.dev.SetState(render.State{
		Blend:    true,
		BlendSrc: render.BlendOne,
		BlendDst: render.BlendOneMinusSrcAlpha,
	})
	var stack []pendingDraw
	for i := len(b.roots) - 1; i >= 0; i-- {
		stack = b.collectTranslucent(f, b.roots[i], planeshift.Point{}, stack)
	}
	// The mirror walk visits front to back; submit back to front.
	for i := len(stack) - 1; i >= 0; i-- {
		d := stack[i]
		if err := b.drawLayer(f, d.layer, d.origin, d.depth); err != nil {
			return err
		}
	}
	return nil
}

// pendingDraw is a translucent surface waiting to be blended.
type pendingDraw struct {
	layer  planeshift.LayerID
	origin planeshift.Point
	depth  float32
}

// drawOpaque walks the subtree of layer in pre-order. Every surface takes
// the next depth slot; opaque ones are drawn.
func (b *Backend) drawOpaque(f *frame, layer planeshift.LayerID, origin planeshift.Point) error {
	if list, ok := f.c.Container.Get(layer); ok {
		origin = origin.Add(f.c.Origin(layer))
		for kid := list.FirstChild; kid != planeshift.NoLayer; kid = f.c.Tree.Must(kid).NextSibling {
			if err := b.drawOpaque(f, kid, origin); err != nil {
				return err
			}
		}
		return nil
	}

	depth := f.depth
	f.depth += DepthQuantum
	f.slots++
	if !f.c.Surface.Must(layer).Options.Has(planeshift.SurfaceOpaque) {
		return nil
	}
	return b.drawLayer(f, layer, origin, depth)
}

// collectTranslucent mirrors drawOpaque: it walks last child first and
// steps depth back down, recovering each surface's slot, and pushes the
// translucent surfaces onto stack.
func (b *Backend) collectTranslucent(f *frame, layer planeshift.LayerID, origin planeshift.Point, stack []pendingDraw) []pendingDraw {
	if list, ok := f.c.Container.Get(layer); ok {
		origin = origin.Add(f.c.Origin(layer))
		for kid := list.LastChild; kid != planeshift.NoLayer; kid = f.c.Tree.Must(kid).PrevSibling {
			stack = b.collectTranslucent(f, kid, origin, stack)
		}
		return stack
	}

	f.depth -= DepthQuantum
	if f.c.Surface.Must(layer).Options.Has(planeshift.SurfaceOpaque) {
		return stack
	}
	return append(stack, pendingDraw{layer: layer, origin: origin, depth: f.depth})
}

// drawLayer draws the cached content of a surface whose parent origin, in
// window coordinates, is origin. Surfaces never bound have no content and
// are skipped.
func (b *Backend) drawLayer(f *frame, layer planeshift.LayerID, origin planeshift.Point, depth float32) error {
	info, ok := b.layers.Get(layer)
	if !ok || info.fb == nil {
		return nil
	}
	bounds := f.c.Geometry.Must(layer).Bounds.Translate(origin)
	return b.dev.DrawQuad(render.Quad{
		Texture:   info.fb.color,
		Transform: quadTransform(bounds, f.viewport),
		Depth:     depth,
	})
}

// quadTransform maps the unit quad onto r, in logical top-down window
// coordinates, in normalized device coordinates. v=0 lands on the bottom
// edge of r, so bottom-up layer framebuffers appear upright.
func quadTransform(r planeshift.Rect, window planeshift.Size) f32.Aff3 {
	w, h := window.Width, window.Height
	return f32.Aff3{
		2 * r.Size.Width / w, 0, 2*r.Origin.X/w - 1,
		0, 2 * r.Size.Height / h, 1 - 2*r.MaxY()/h,
	}
}
