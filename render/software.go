// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
)

// SoftwareDevice is a CPU implementation of Device.
//
// It is the reference device for compositing: every draw is rasterized with
// nearest-texel sampling and integer premultiplied blending, so results are
// exact and reproducible across platforms. All storage is RGBA internally;
// a BGRA window framebuffer only changes the channel order ReadPixels
// returns.
//
// SoftwareDevice is safe for concurrent use.
//
// Example:
//
//	dev, _ := render.NewSoftwareDevice(800, 600, gputypes.TextureFormatRGBA8Unorm)
//	tex, _ := dev.CreateTexture(render.DefaultTextureDescriptor(64, 64, gputypes.TextureFormatRGBA8Unorm))
//	_ = dev.BindFramebuffer(render.DefaultFramebuffer)
//	_ = dev.DrawQuad(render.Quad{Texture: tex, Transform: f32.Aff3{1, 0, -0.5, 0, 1, -0.5}})
type SoftwareDevice struct {
	mu sync.Mutex

	textures      map[uint32]*Texture
	renderbuffers map[uint32]*renderbuffer
	framebuffers  map[uint32]*framebuffer
	nextName      uint32

	// windowFormat is the channel order of the default framebuffer.
	windowFormat gputypes.TextureFormat

	bound    uint32
	viewport image.Rectangle
	scissor  image.Rectangle
	state    State

	draws int
}

// NewSoftwareDevice creates a device whose default framebuffer is
// width x height pixels with a depth/stencil attachment.
//
// format selects the window channel order. TextureFormatUndefined means
// RGBA8Unorm.
func NewSoftwareDevice(width, height int, format gputypes.TextureFormat) (*SoftwareDevice, error) {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	if !colorFormat(format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	d := &SoftwareDevice{
		textures:      make(map[uint32]*Texture),
		renderbuffers: make(map[uint32]*renderbuffer),
		framebuffers:  make(map[uint32]*framebuffer),
		nextName:      1,
		windowFormat:  format,
	}
	if err := d.resizeDefault(width, height); err != nil {
		return nil, err
	}
	d.viewport = d.framebuffers[DefaultFramebuffer].bounds()
	return d, nil
}

func colorFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8Unorm || f == gputypes.TextureFormatBGRA8Unorm
}

func depthFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatDepth24PlusStencil8 || f == gputypes.TextureFormatDepth24Plus
}

// ResizeDefaultFramebuffer reallocates the window framebuffer. Its contents
// are discarded. If it is bound, the viewport is reset and the scissor
// disabled.
func (d *SoftwareDevice) ResizeDefaultFramebuffer(width, height int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.resizeDefault(width, height); err != nil {
		return err
	}
	if d.bound == DefaultFramebuffer {
		d.viewport = d.framebuffers[DefaultFramebuffer].bounds()
		d.scissor = image.Rectangle{}
	}
	return nil
}

func (d *SoftwareDevice) resizeDefault(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	color := newTexture(&d.mu, TextureDescriptor{
		Label:  "window",
		Width:  uint32(width),
		Height: uint32(height),
		Format: d.windowFormat,
	})
	d.framebuffers[DefaultFramebuffer] = &framebuffer{
		color:        color,
		depthStencil: newRenderbuffer(width, height),
	}
	return nil
}

func (d *SoftwareDevice) allocName() uint32 {
	n := d.nextName
	d.nextName++
	return n
}

// CreateTexture implements Device.
func (d *SoftwareDevice) CreateTexture(desc TextureDescriptor) (uint32, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, desc.Width, desc.Height)
	}
	if !colorFormat(desc.Format) {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	name := d.allocName()
	d.textures[name] = newTexture(&d.mu, desc)
	return name, nil
}

// Texture returns the texture named tex.
func (d *SoftwareDevice) Texture(tex uint32) (*Texture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[tex]
	return t, ok
}

// UploadTexture implements Device.
func (d *SoftwareDevice) UploadTexture(tex uint32, region image.Rectangle, pixels []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[tex]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, tex)
	}
	return t.upload(region, pixels)
}

// DeleteTexture implements Device.
func (d *SoftwareDevice) DeleteTexture(tex uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.textures, tex)
}

// CreateRenderbuffer implements Device.
func (d *SoftwareDevice) CreateRenderbuffer(width, height uint32, format gputypes.TextureFormat) (uint32, error) {
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !depthFormat(format) {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	name := d.allocName()
	d.renderbuffers[name] = newRenderbuffer(int(width), int(height))
	return name, nil
}

// DeleteRenderbuffer implements Device.
func (d *SoftwareDevice) DeleteRenderbuffer(rb uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.renderbuffers, rb)
}

// CreateFramebuffer implements Device.
func (d *SoftwareDevice) CreateFramebuffer(color, depthStencil uint32) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex, ok := d.textures[color]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTexture, color)
	}
	fb := &framebuffer{color: tex}
	if depthStencil != 0 {
		rb, ok := d.renderbuffers[depthStencil]
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrUnknownRenderbuffer, depthStencil)
		}
		if rb.width != tex.Width() || rb.height != tex.Height() {
			return 0, fmt.Errorf("%w: color %dx%d, depth %dx%d",
				ErrAttachmentSize, tex.Width(), tex.Height(), rb.width, rb.height)
		}
		fb.depthStencil = rb
	}
	name := d.allocName()
	d.framebuffers[name] = fb
	return name, nil
}

// DeleteFramebuffer implements Device. Deleting the bound framebuffer
// rebinds the default one.
func (d *SoftwareDevice) DeleteFramebuffer(fb uint32) {
	if fb == DefaultFramebuffer {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.framebuffers, fb)
	if d.bound == fb {
		d.bindLocked(DefaultFramebuffer)
	}
}

// BindFramebuffer implements Device.
func (d *SoftwareDevice) BindFramebuffer(fb uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.framebuffers[fb]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFramebuffer, fb)
	}
	d.bindLocked(fb)
	return nil
}

func (d *SoftwareDevice) bindLocked(fb uint32) {
	d.bound = fb
	d.viewport = d.framebuffers[fb].bounds()
	d.scissor = image.Rectangle{}
}

// FramebufferSize implements Device.
func (d *SoftwareDevice) FramebufferSize() image.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.framebuffers[d.bound].bounds().Size()
}

// Viewport implements Device.
func (d *SoftwareDevice) Viewport(r image.Rectangle) {
	d.mu.Lock()
	d.viewport = r
	d.mu.Unlock()
}

// Scissor implements Device.
func (d *SoftwareDevice) Scissor(r image.Rectangle) {
	d.mu.Lock()
	d.scissor = r
	d.mu.Unlock()
}

// SetState implements Device.
func (d *SoftwareDevice) SetState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// clipLocked returns the drawable area of the bound framebuffer.
func (d *SoftwareDevice) clipLocked(fb *framebuffer) image.Rectangle {
	clip := fb.bounds()
	if !d.scissor.Empty() {
		clip = clip.Intersect(d.scissor)
	}
	return clip
}

// Clear implements Device.
func (d *SoftwareDevice) Clear(mask ClearMask, v ClearValues) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fb := d.framebuffers[d.bound]
	clip := d.clipLocked(fb)
	if clip.Empty() {
		return
	}
	if mask&ClearColor != 0 {
		img := fb.color.img
		px := [4]byte{v.Color.R, v.Color.G, v.Color.B, v.Color.A}
		for y := clip.Min.Y; y < clip.Max.Y; y++ {
			for x := clip.Min.X; x < clip.Max.X; x++ {
				off := img.PixOffset(x, y)
				copy(img.Pix[off:off+4], px[:])
			}
		}
	}
	ds := fb.depthStencil
	if ds == nil || mask&(ClearDepth|ClearStencil) == 0 {
		return
	}
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			i := y*ds.width + x
			if mask&ClearDepth != 0 {
				ds.depth[i] = v.Depth
			}
			if mask&ClearStencil != 0 {
				ds.stencil[i] = v.Stencil
			}
		}
	}
}

// DrawQuad implements Device.
func (d *SoftwareDevice) DrawQuad(q Quad) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex, ok := d.textures[q.Texture]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, q.Texture)
	}
	fb := d.framebuffers[d.bound]
	rasterQuad(fb, tex, q, d.viewport, d.clipLocked(fb), d.state)
	d.draws++
	return nil
}

// DrawCount returns the number of quads drawn since the device was created.
func (d *SoftwareDevice) DrawCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draws
}

// ReadPixels implements Device.
func (d *SoftwareDevice) ReadPixels(r image.Rectangle) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fb := d.framebuffers[d.bound]
	if r.Empty() || !r.In(fb.bounds()) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, fb.bounds())
	}
	img := fb.color.img
	rowBytes := r.Dx() * 4
	out := make([]byte, rowBytes*r.Dy())
	for row := 0; row < r.Dy(); row++ {
		off := img.PixOffset(r.Min.X, r.Min.Y+row)
		copy(out[row*rowBytes:(row+1)*rowBytes], img.Pix[off:off+rowBytes])
	}
	if fb.color.format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < len(out); i += 4 {
			out[i], out[i+2] = out[i+2], out[i]
		}
	}
	return out, nil
}

// Format implements Device.
func (d *SoftwareDevice) Format() gputypes.TextureFormat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.framebuffers[d.bound].color.format
}

// Flush implements Device. Software draws complete synchronously.
func (d *SoftwareDevice) Flush() error {
	return nil
}

// Resources reports the number of live textures, renderbuffers and
// framebuffers, excluding the window framebuffer.
func (d *SoftwareDevice) Resources() (textures, renderbuffers, framebuffers int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures), len(d.renderbuffers), len(d.framebuffers) - 1
}

// Ensure SoftwareDevice implements Device.
var _ Device = (*SoftwareDevice)(nil)
