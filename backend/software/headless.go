// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
)

// Headless implements Interface on a render.SoftwareDevice.
//
// The window framebuffer is the window's logical size times its scale
// factor. Its channel order follows the host device's surface format;
// hosts without a surface get RGBA. Every Present asks the window for a
// redraw.
type Headless struct {
	mu        sync.Mutex
	window    gpucontext.WindowProvider
	device    render.DeviceHandle
	dev       *render.SoftwareDevice
	size      image.Point
	presented []planeshift.Rect
}

// NewHeadless creates a headless interface for window. device may be nil.
func NewHeadless(window gpucontext.WindowProvider, device render.DeviceHandle) (*Headless, error) {
	if window == nil {
		return nil, planeshift.ErrNoWindow
	}
	if device == nil {
		device = render.NullDeviceHandle{}
	}
	size := physicalSize(window)
	format := device.SurfaceFormat()
	if format != gputypes.TextureFormatBGRA8Unorm {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	dev, err := render.NewSoftwareDevice(size.X, size.Y, format)
	if err != nil {
		return nil, fmt.Errorf("software: headless window: %w", err)
	}
	return &Headless{
		window: window,
		device: device,
		dev:    dev,
		size:   size,
	}, nil
}

func physicalSize(window gpucontext.WindowProvider) image.Point {
	w, h := window.Size()
	sf := window.ScaleFactor()
	return image.Pt(int(math.Round(float64(w)*sf)), int(math.Round(float64(h)*sf)))
}

// GLAPI implements Interface. The software device mimics desktop GL.
func (h *Headless) GLAPI() planeshift.GLAPI {
	return planeshift.GL
}

// MakeCurrent implements Interface. The software device is always current.
func (h *Headless) MakeCurrent() error {
	return nil
}

// PrepareToDraw implements Interface. It resizes the framebuffer when the
// window size or scale factor changed.
func (h *Headless) PrepareToDraw() error {
	size := physicalSize(h.window)
	h.mu.Lock()
	defer h.mu.Unlock()
	if size == h.size {
		return nil
	}
	if err := h.dev.ResizeDefaultFramebuffer(size.X, size.Y); err != nil {
		return fmt.Errorf("software: resize window framebuffer: %w", err)
	}
	h.size = size
	return nil
}

// Present implements Interface.
func (h *Headless) Present(dirty planeshift.Rect) error {
	h.mu.Lock()
	h.presented = append(h.presented, dirty)
	h.mu.Unlock()
	h.window.RequestRedraw()
	return nil
}

// Device implements Interface.
func (h *Headless) Device() render.Device {
	return h.dev
}

// SoftwareDevice returns the underlying device.
func (h *Headless) SoftwareDevice() *render.SoftwareDevice {
	return h.dev
}

// DeviceHandle returns the host device the interface was created with.
func (h *Headless) DeviceHandle() render.DeviceHandle {
	return h.device
}

// DefaultFramebufferSize implements Interface.
func (h *Headless) DefaultFramebufferSize() image.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// ScaleFactor implements Interface.
func (h *Headless) ScaleFactor() float64 {
	return h.window.ScaleFactor()
}

// Window implements Interface.
func (h *Headless) Window() gpucontext.WindowProvider {
	return h.window
}

// Presented returns the dirty rectangles passed to Present, oldest first.
func (h *Headless) Presented() []planeshift.Rect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]planeshift.Rect(nil), h.presented...)
}

// Snapshot returns the window framebuffer as a top-down RGBA image.
// It rebinds the window framebuffer.
func (h *Headless) Snapshot() (*image.RGBA, error) {
	if err := h.dev.BindFramebuffer(render.DefaultFramebuffer); err != nil {
		return nil, err
	}
	size := h.dev.FramebufferSize()
	return readImage(h.dev, image.Rectangle{Max: size})
}

// Ensure Headless implements Interface.
var _ Interface = (*Headless)(nil)
