// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
)

// GLContext is the rendering context of the software compositor. Layer
// content is drawn with its Device into the framebuffer returned by
// BindLayerToGLContext.
type GLContext struct {
	options planeshift.SurfaceOptions
	dev     render.Device
}

// SurfaceOptions implements planeshift.GLContext.
func (g *GLContext) SurfaceOptions() planeshift.SurfaceOptions {
	return g.options
}

// Device returns the device layer content is drawn with.
func (g *GLContext) Device() render.Device {
	return g.dev
}

// layerFramebuffer is the cached render target of a surface layer.
type layerFramebuffer struct {
	color        uint32
	depthStencil uint32 // 0 when the layer has no depth or stencil
	framebuffer  uint32
	size         image.Point
}

// framebufferSize is the texture size for bounds: the size rounded up to
// whole pixels.
func framebufferSize(bounds planeshift.Rect) image.Point {
	return image.Pt(int(math32.Ceil(bounds.Size.Width)), int(math32.Ceil(bounds.Size.Height)))
}

// BindLayerToGLContext implements planeshift.Backend.
//
// The layer's framebuffer is created on first bind and rebuilt when the
// layer's size or depth/stencil needs changed since. It is left bound on
// the device.
func (b *Backend) BindLayerToGLContext(layer planeshift.LayerID, _ planeshift.GLContext, c planeshift.Components) (planeshift.GLContextLayerBinding, error) {
	if b.closed {
		return planeshift.GLContextLayerBinding{}, ErrClosed
	}
	surface, ok := c.Surface.Get(layer)
	info := b.layers.GetMut(layer)
	if !ok || info == nil {
		return planeshift.GLContextLayerBinding{}, fmt.Errorf("%w: %d", planeshift.ErrNotSurfaceLayer, layer)
	}
	bounds := c.Geometry.Must(layer).Bounds
	size := framebufferSize(bounds)
	if size.X <= 0 || size.Y <= 0 {
		return planeshift.GLContextLayerBinding{}, fmt.Errorf("%w: layer %d is %v", planeshift.ErrEmptyBounds, layer, bounds)
	}
	wantDepth := surface.Options.NeedsDepthStencil()

	if fb := info.fb; fb != nil && (fb.size != size || (fb.depthStencil != 0) != wantDepth) {
		b.releaseFramebuffer(layer, info)
	}
	if info.fb == nil {
		fb, err := b.createFramebuffer(size, wantDepth)
		if err != nil {
			return planeshift.GLContextLayerBinding{}, fmt.Errorf("software: bind layer %d: %w", layer, err)
		}
		info.fb = fb
		b.logger.Debug("software: layer framebuffer created",
			"layer", layer, "size", size, "depthStencil", wantDepth)
	}

	if err := b.dev.BindFramebuffer(info.fb.framebuffer); err != nil {
		return planeshift.GLContextLayerBinding{}, fmt.Errorf("software: bind layer %d: %w", layer, err)
	}
	return planeshift.GLContextLayerBinding{Layer: layer, Framebuffer: info.fb.framebuffer}, nil
}

func (b *Backend) createFramebuffer(size image.Point, depthStencil bool) (*layerFramebuffer, error) {
	fb := &layerFramebuffer{size: size}
	desc := render.DefaultTextureDescriptor(uint32(size.X), uint32(size.Y), gputypes.TextureFormatRGBA8Unorm)
	desc.Label = "layer"
	var err error
	if fb.color, err = b.dev.CreateTexture(desc); err != nil {
		return nil, err
	}
	if depthStencil {
		fb.depthStencil, err = b.dev.CreateRenderbuffer(uint32(size.X), uint32(size.Y), gputypes.TextureFormatDepth24PlusStencil8)
		if err != nil {
			b.dev.DeleteTexture(fb.color)
			return nil, err
		}
	}
	if fb.framebuffer, err = b.dev.CreateFramebuffer(fb.color, fb.depthStencil); err != nil {
		b.dev.DeleteTexture(fb.color)
		if fb.depthStencil != 0 {
			b.dev.DeleteRenderbuffer(fb.depthStencil)
		}
		return nil, err
	}
	return fb, nil
}

// releaseFramebuffer deletes the cached framebuffer of a layer, if any.
func (b *Backend) releaseFramebuffer(layer planeshift.LayerID, info *layerInfo) {
	fb := info.fb
	if fb == nil {
		return
	}
	info.fb = nil
	b.dev.DeleteFramebuffer(fb.framebuffer)
	if fb.depthStencil != 0 {
		b.dev.DeleteRenderbuffer(fb.depthStencil)
	}
	b.dev.DeleteTexture(fb.color)
	b.logger.Debug("software: layer framebuffer released", "layer", layer)
}

// PresentGLContext implements planeshift.Backend. It rebinds the window
// framebuffer and damages changed, given in the layer's coordinates.
func (b *Backend) PresentGLContext(binding planeshift.GLContextLayerBinding, changed planeshift.Rect, c planeshift.Components) error {
	if b.closed {
		return ErrClosed
	}
	if err := b.dev.BindFramebuffer(render.DefaultFramebuffer); err != nil {
		return fmt.Errorf("software: present layer %d: %w", binding.Layer, err)
	}
	b.invalidateLayer(binding.Layer, changed, c)
	return nil
}
