package planeshift_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/backend/software"
	"github.com/gogpu/planeshift/render"
)

func Example() {
	conn := planeshift.Connection{Window: gpucontext.NullWindowProvider{W: 200, H: 200}}
	ctx, err := planeshift.NewLayerContext(conn)
	if err != nil {
		panic(err)
	}
	defer ctx.Close()

	gl, err := ctx.CreateGLContext(0)
	if err != nil {
		panic(err)
	}
	fill := func(layer planeshift.LayerID, c color.RGBA) {
		binding, err := ctx.BindLayerToGLContext(layer, gl)
		if err != nil {
			panic(err)
		}
		dev := gl.(*software.GLContext).Device()
		_ = dev.BindFramebuffer(binding.Framebuffer)
		dev.Clear(render.ClearColor, render.ClearValues{Color: c})
		_ = ctx.PresentGLContext(binding, planeshift.Rect{Size: ctx.LayerBounds(layer).Size})
	}

	ctx.BeginTransaction()
	root := ctx.AddContainerLayer()
	ctx.SetLayerBounds(root, planeshift.R(0, 0, 200, 200))
	if err := ctx.HostLayerInWindow(root); err != nil {
		panic(err)
	}

	a := ctx.AddSurfaceLayer()
	ctx.SetLayerBounds(a, planeshift.R(0, 0, 100, 100))
	ctx.SetLayerSurfaceOptions(a, planeshift.SurfaceOpaque)
	ctx.AppendChild(root, a)
	fill(a, color.RGBA{0, 0, 255, 255})

	b := ctx.AddSurfaceLayer()
	ctx.SetLayerBounds(b, planeshift.R(50, 50, 100, 100))
	ctx.AppendChild(root, b)
	fill(b, color.RGBA{128, 0, 0, 128})

	shot := ctx.ScreenshotHostedLayer(root)
	ctx.EndTransaction()

	img, err := shot.Value()
	if err != nil {
		panic(err)
	}
	fmt.Println(img.RGBAAt(10, 10))
	fmt.Println(img.RGBAAt(75, 75))
	// Output:
	// {0 0 255 255}
	// {128 0 127 255}
}

func ExamplePromise() {
	p := planeshift.NewPromise[string]()
	p.Then(func(v string) { fmt.Println("resolved:", v) })
	p.Resolve("frame 1")

	// Late subscribers run immediately.
	p.Then(func(v string) { fmt.Println("late:", v) })
	// Output:
	// resolved: frame 1
	// late: frame 1
}

func ExampleLayerContext_BeginTransaction() {
	ctx, err := planeshift.NewLayerContext(planeshift.Connection{
		Window: gpucontext.NullWindowProvider{W: 64, H: 64},
	}, planeshift.WithBackendName(planeshift.BackendSoftware))
	if err != nil {
		panic(err)
	}
	defer ctx.Close()

	ctx.BeginTransaction()
	ctx.BeginTransaction() // nested: only the outermost commits
	l := ctx.AddContainerLayer()
	ctx.EndTransaction()
	fmt.Println("level:", ctx.TransactionLevel())
	p := ctx.EndTransaction()
	fmt.Println("layer:", l, "state:", p.State())
	// Output:
	// level: 1
	// layer: 1 state: resolved
}
