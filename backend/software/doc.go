// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides the planeshift compositor that renders layers
// itself.
//
// It is the fallback backend when no native compositor is available. Each
// surface layer renders into its own cached framebuffer; at commit the
// backend composites every hosted layer tree into the window framebuffer
// with depth-ordered draw calls:
//
//   - Opaque surfaces are drawn with the depth test on and blending off.
//     Every surface in pre-order gets the next depth slot, so later
//     siblings win overlaps.
//   - Translucent surfaces are then blended back-to-front with
//     premultiplied alpha and the depth test off.
//
// Only the dirty rectangle accumulated since the previous commit is
// redrawn and presented. Damage is tracked as one bounding rectangle per
// hosted layer.
//
// # Connection
//
// The backend draws through an Interface, which supplies the render.Device
// and the window. Headless implements Interface on a render.SoftwareDevice
// sized from a gpucontext.WindowProvider, which makes the compositor usable
// without any GPU:
//
//	import _ "github.com/gogpu/planeshift/backend/software"
//
//	conn := planeshift.Connection{Window: gpucontext.NullWindowProvider{W: 800, H: 600}}
//	ctx, err := planeshift.NewLayerContext(conn, planeshift.WithBackendName(planeshift.BackendSoftware))
//
// Importing the package registers the backend as planeshift.BackendSoftware.
package software
