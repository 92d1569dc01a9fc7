// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
)

// Interface connects the compositor to a window and a device.
//
// Implementations wrap a platform GL context and its window, or, like
// Headless, a CPU device.
type Interface interface {
	// GLAPI reports which GL flavor the device speaks.
	GLAPI() planeshift.GLAPI

	// MakeCurrent makes the device current on the calling goroutine.
	MakeCurrent() error

	// PrepareToDraw is called before each composite, for example to
	// follow a window resize.
	PrepareToDraw() error

	// Present shows the dirty rectangle, in logical window coordinates.
	Present(dirty planeshift.Rect) error

	// Device returns the device to draw with.
	Device() render.Device

	// DefaultFramebufferSize returns the window framebuffer size in
	// physical pixels.
	DefaultFramebufferSize() image.Point

	// ScaleFactor returns physical pixels per logical pixel.
	ScaleFactor() float64

	// Window returns the window, or nil if there is none.
	Window() gpucontext.WindowProvider
}
