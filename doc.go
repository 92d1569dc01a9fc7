// Package planeshift maintains a tree of rectangular layers that host
// GPU-rendered content and presents them through a pluggable compositor
// backend.
//
// # Overview
//
// A LayerContext owns the tree. Layers are either containers, which group
// children and draw nothing, or surfaces, leaf layers whose pixels the
// application renders with a GL context. Each layer has parent-relative
// bounds in logical pixels with a top-left origin.
//
// All changes happen inside transactions. Transactions nest, and only the
// outermost one reaches the backend: at EndTransaction the backend commits
// every change at once and later resolves the transaction's Promise when
// the frame is on screen.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/planeshift"
//	    _ "github.com/gogpu/planeshift/backend/software"
//	)
//
//	ctx, err := planeshift.NewLayerContext(planeshift.Connection{Window: window})
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	ctx.BeginTransaction()
//	root := ctx.AddContainerLayer()
//	ctx.SetLayerBounds(root, planeshift.R(0, 0, 800, 600))
//	_ = ctx.HostLayerInWindow(root)
//
//	content := ctx.AddSurfaceLayer()
//	ctx.SetLayerBounds(content, planeshift.R(10, 10, 200, 100))
//	ctx.SetLayerSurfaceOptions(content, planeshift.SurfaceOpaque)
//	ctx.AppendChild(root, content)
//	ctx.EndTransaction().Then(func(struct{}) {
//	    // The frame is on screen.
//	})
//
// # Backends
//
// A Backend maps the tree onto a presentation mechanism. Native compositor
// bindings register under BackendCoreAnimation, BackendDirectComposition,
// BackendWayland and BackendGLX. The software compositor in
// backend/software registers as BackendSoftware and is the fallback:
// it renders every layer itself with depth-ordered draw calls and tracks a
// dirty rectangle per hosted layer. DefaultBackend tries registered
// backends in that priority order. backend/alternate combines two
// factories explicitly.
//
// # Programmer Errors
//
// Misuse of the tree API, such as mutating outside a transaction or
// deleting an attached layer, panics with a "planeshift:" message.
// Runtime failures (connection, GL context, binding) are returned as
// errors wrapping the sentinels in this package.
//
// # Logging
//
// planeshift is silent by default. Use SetLogger to route its slog output.
package planeshift
