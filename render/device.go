// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// DeviceHandle provides GPU device access from the host application.
//
// A compositor backend RECEIVES the device from the host, it does NOT create
// one. The host's preferred surface format decides the pixel format of the
// window framebuffer.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// DefaultFramebuffer is the name of the window framebuffer. It always exists
// and cannot be deleted.
const DefaultFramebuffer uint32 = 0

// TextureDescriptor describes parameters for creating a texture.
// This mirrors the WebGPU GPUTextureDescriptor specification.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage TextureUsage
}

// TextureUsage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageCopyDst allows the texture to be used as a copy destination.
	TextureUsageCopyDst

	// TextureUsageTextureBinding allows the texture to be sampled by DrawQuad.
	TextureUsageTextureBinding

	// TextureUsageRenderAttachment allows the texture to be used as a
	// framebuffer color attachment.
	TextureUsageRenderAttachment
)

// DefaultTextureDescriptor returns a TextureDescriptor with sensible defaults
// for a layer backing store: sampled and renderable.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:  width,
		Height: height,
		Format: format,
		Usage:  TextureUsageTextureBinding | TextureUsageRenderAttachment | TextureUsageCopyDst,
	}
}

// CompareFunc is a depth comparison function.
type CompareFunc uint8

const (
	// CompareAlways always passes. This is the zero value.
	CompareAlways CompareFunc = iota
	CompareNever
	CompareLess
	CompareLessEqual
	CompareGreater
	CompareGreaterEqual
)

// BlendFactor is a source or destination blend factor.
// Color values are premultiplied, so the usual "over" operator is
// (BlendOne, BlendOneMinusSrcAlpha).
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// State is the fixed-function pipeline state used by DrawQuad.
// The zero value disables depth testing and blending, matching a fresh GL
// context.
type State struct {
	// DepthTest enables the depth test against the bound framebuffer's
	// depth attachment. Framebuffers without one always pass.
	DepthTest bool

	// DepthFunc is the comparison applied as (fragment depth) FUNC (stored depth).
	DepthFunc CompareFunc

	// DepthWrite stores the fragment depth when the test passes.
	DepthWrite bool

	// Blend enables blending with BlendSrc and BlendDst.
	Blend bool

	BlendSrc BlendFactor
	BlendDst BlendFactor
}

// ClearMask selects which attachments Clear touches.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// ClearValues holds the values Clear writes.
type ClearValues struct {
	// Color is premultiplied.
	Color   color.RGBA
	Depth   float32
	Stencil uint8
}

// Quad is a single textured 4-vertex triangle-strip draw.
//
// The unit quad (0,0)-(1,1) is mapped into normalized device coordinates by
// Transform; texture coordinates equal the unit-quad coordinates, so texel
// row 0 lands on the v=0 edge.
type Quad struct {
	Texture   uint32
	Transform f32.Aff3
	Depth     float32
}

// Device is the GL-style command surface a compositor drives.
//
// Objects are named by uint32 handles like GL object names. Framebuffer
// coordinates have their origin at the bottom-left corner, rows growing
// upward, as in GL.
//
// Devices are NOT safe for concurrent use unless an implementation says
// otherwise.
type Device interface {
	// CreateTexture allocates a texture with undefined (zeroed) contents.
	CreateTexture(desc TextureDescriptor) (uint32, error)

	// UploadTexture replaces the texels in region with tightly packed,
	// premultiplied RGBA pixels, rows in texel order.
	UploadTexture(tex uint32, region image.Rectangle, pixels []byte) error

	// DeleteTexture releases a texture. Unknown names are ignored.
	DeleteTexture(tex uint32)

	// CreateRenderbuffer allocates a depth/stencil renderbuffer.
	CreateRenderbuffer(width, height uint32, format gputypes.TextureFormat) (uint32, error)

	// DeleteRenderbuffer releases a renderbuffer. Unknown names are ignored.
	DeleteRenderbuffer(rb uint32)

	// CreateFramebuffer assembles a framebuffer from a color texture and an
	// optional depth/stencil renderbuffer (0 for none).
	CreateFramebuffer(color, depthStencil uint32) (uint32, error)

	// DeleteFramebuffer releases a framebuffer object. Its attachments are
	// not released.
	DeleteFramebuffer(fb uint32)

	// BindFramebuffer makes fb the target of Clear, DrawQuad and
	// ReadPixels, resets the viewport to cover it and disables the scissor.
	BindFramebuffer(fb uint32) error

	// FramebufferSize returns the size of the bound framebuffer.
	FramebufferSize() image.Point

	// Viewport sets the rectangle NDC [-1,1] maps onto.
	Viewport(r image.Rectangle)

	// Scissor restricts Clear and DrawQuad to r. An empty rectangle
	// disables the scissor test.
	Scissor(r image.Rectangle)

	// SetState replaces the pipeline state.
	SetState(s State)

	// Clear fills the selected attachments of the bound framebuffer,
	// honoring the scissor.
	Clear(mask ClearMask, v ClearValues)

	// DrawQuad draws one textured quad into the bound framebuffer.
	DrawQuad(q Quad) error

	// ReadPixels returns the pixels of r in the bound framebuffer, rows
	// bottom-up, 4 bytes per pixel in the framebuffer's channel order.
	ReadPixels(r image.Rectangle) ([]byte, error)

	// Format returns the color format of the bound framebuffer.
	Format() gputypes.TextureFormat

	// Flush ensures submitted commands are complete.
	Flush() error
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for headless compositing where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports a software adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "planeshift software device", Type: gpucontext.AdapterTypeSoftware}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
