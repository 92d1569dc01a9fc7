// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Texture is a CPU-backed texture owned by a SoftwareDevice.
//
// Texels are stored premultiplied in an *image.RGBA whose row 0 is texel
// row 0 (the bottom row in GL terms). Texture implements the gpucontext
// texture interfaces so host code can upload content without knowing the
// device type.
type Texture struct {
	mu     *sync.Mutex
	img    *image.RGBA
	format gputypes.TextureFormat
	label  string
}

func newTexture(mu *sync.Mutex, desc TextureDescriptor) *Texture {
	return &Texture{
		mu:     mu,
		img:    image.NewRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height))),
		format: desc.Format,
		label:  desc.Label,
	}
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat {
	return t.format
}

// Label returns the debug label given at creation.
func (t *Texture) Label() string {
	return t.label
}

// UpdateData replaces the whole texture.
// Data must be exactly width * height * 4 bytes of premultiplied RGBA.
func (t *Texture) UpdateData(data []byte) error {
	return t.UpdateRegion(0, 0, t.Width(), t.Height(), data)
}

// UpdateRegion replaces a sub-rectangle of the texture.
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.upload(image.Rect(x, y, x+w, y+h), data)
}

func (t *Texture) upload(region image.Rectangle, data []byte) error {
	if !region.In(t.img.Bounds()) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, region, t.img.Bounds())
	}
	rowBytes := region.Dx() * 4
	if len(data) != rowBytes*region.Dy() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), rowBytes*region.Dy())
	}
	for row := 0; row < region.Dy(); row++ {
		off := t.img.PixOffset(region.Min.X, region.Min.Y+row)
		copy(t.img.Pix[off:off+rowBytes], data[row*rowBytes:(row+1)*rowBytes])
	}
	return nil
}

// Image returns the texel storage. The image shares memory with the
// texture and is only safe to touch while no draw is in flight.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

var (
	_ gpucontext.Texture              = (*Texture)(nil)
	_ gpucontext.TextureUpdater       = (*Texture)(nil)
	_ gpucontext.TextureRegionUpdater = (*Texture)(nil)
)

// renderbuffer is a combined depth/stencil attachment.
type renderbuffer struct {
	width, height int
	depth         []float32
	stencil       []uint8
}

func newRenderbuffer(width, height int) *renderbuffer {
	return &renderbuffer{
		width:   width,
		height:  height,
		depth:   make([]float32, width*height),
		stencil: make([]uint8, width*height),
	}
}

// framebuffer pairs a color texture with an optional depth/stencil buffer.
type framebuffer struct {
	color        *Texture
	depthStencil *renderbuffer
}

func (fb *framebuffer) bounds() image.Rectangle {
	return fb.color.img.Bounds()
}
