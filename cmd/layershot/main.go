// Command layershot composites a sample layer tree with the software
// backend and saves a screenshot of it.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/backend/software"
	"github.com/gogpu/planeshift/render"
	"golang.org/x/image/draw"
)

func main() {
	var (
		width   = flag.Int("width", 400, "window width in points")
		height  = flag.Int("height", 300, "window height in points")
		scale   = flag.Float64("scale", 1, "window scale factor")
		zoom    = flag.Int("zoom", 1, "nearest-neighbor zoom of the saved image")
		output  = flag.String("output", "layers.png", "output file")
		verbose = flag.Bool("v", false, "log compositor activity")
	)
	flag.Parse()

	if *verbose {
		planeshift.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	err := run(*width, *height, *scale, *zoom, *output)
	if err != nil {
		log.Fatalf("layershot: %v", err)
	}
}

// run composites the sample scene in a width x height window and saves
// the screenshot to output.
func run(width, height int, scale float64, zoom int, output string) error {
	conn := planeshift.Connection{
		Window: gpucontext.NullWindowProvider{W: width, H: height, SF: scale},
	}
	ctx, err := planeshift.NewLayerContext(conn, planeshift.WithBackendName(planeshift.BackendSoftware))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer ctx.Close()

	gl, err := ctx.CreateGLContext(0)
	if err != nil {
		return err
	}

	ctx.BeginTransaction()
	root, err := buildScene(ctx, gl, float32(width), float32(height))
	if err != nil {
		ctx.EndTransaction()
		return fmt.Errorf("build scene: %w", err)
	}
	shot := ctx.ScreenshotHostedLayer(root)
	if _, err := ctx.EndTransaction().Value(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	img, err := shot.Value()
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := savePNG(output, zoomImage(img, zoom)); err != nil {
		return err
	}

	log.Printf("Layers saved to %s (%dx%d)\n", output, img.Bounds().Dx()*max(zoom, 1), img.Bounds().Dy()*max(zoom, 1))
	return nil
}

// buildScene hosts a background, a row of overlapping translucent cards
// and an opaque badge nested in a container.
func buildScene(ctx *planeshift.LayerContext, gl planeshift.GLContext, w, h float32) (planeshift.LayerID, error) {
	root := ctx.AddContainerLayer()
	ctx.SetLayerBounds(root, planeshift.R(0, 0, w, h))
	if err := ctx.HostLayerInWindow(root); err != nil {
		return 0, err
	}

	bg := ctx.AddSurfaceLayer()
	ctx.SetLayerBounds(bg, planeshift.R(0, 0, w, h))
	ctx.SetLayerSurfaceOptions(bg, planeshift.SurfaceOpaque)
	ctx.AppendChild(root, bg)
	if err := paint(ctx, gl, bg, checker(color.RGBA{40, 44, 52, 255}, color.RGBA{52, 56, 64, 255}, 16)); err != nil {
		return 0, err
	}

	cards := []color.RGBA{
		{160, 32, 32, 160},
		{32, 160, 32, 160},
		{32, 32, 160, 160},
	}
	cw, ch := w/3, h/2
	for i, c := range cards {
		card := ctx.AddSurfaceLayer()
		ctx.SetLayerBounds(card, planeshift.R(w/8+float32(i)*cw/2, h/4, cw, ch))
		ctx.AppendChild(root, card)
		if err := paint(ctx, gl, card, solid(c)); err != nil {
			return 0, err
		}
	}

	group := ctx.AddContainerLayer()
	ctx.SetLayerBounds(group, planeshift.R(w-w/4, h-h/4, w/4, h/4))
	ctx.AppendChild(root, group)
	badge := ctx.AddSurfaceLayer()
	ctx.SetLayerBounds(badge, planeshift.R(8, 8, w/4-16, h/4-16))
	ctx.SetLayerSurfaceOptions(badge, planeshift.SurfaceOpaque)
	ctx.AppendChild(group, badge)
	if err := paint(ctx, gl, badge, solid(color.RGBA{230, 180, 40, 255})); err != nil {
		return 0, err
	}
	return root, nil
}

// painter draws layer content into the bound framebuffer of the given size.
type painter func(dev render.Device, size image.Point)

func solid(c color.RGBA) painter {
	return func(dev render.Device, _ image.Point) {
		dev.Clear(render.ClearColor, render.ClearValues{Color: c})
	}
}

func checker(a, b color.RGBA, cell int) painter {
	return func(dev render.Device, size image.Point) {
		dev.Clear(render.ClearColor, render.ClearValues{Color: a})
		for y := 0; y < size.Y; y += cell {
			for x := (y / cell % 2) * cell; x < size.X; x += 2 * cell {
				dev.Scissor(image.Rect(x, y, x+cell, y+cell))
				dev.Clear(render.ClearColor, render.ClearValues{Color: b})
			}
		}
		dev.Scissor(image.Rectangle{})
	}
}

func paint(ctx *planeshift.LayerContext, gl planeshift.GLContext, layer planeshift.LayerID, p painter) error {
	binding, err := ctx.BindLayerToGLContext(layer, gl)
	if err != nil {
		return err
	}
	dev := gl.(*software.GLContext).Device()
	if err := dev.BindFramebuffer(binding.Framebuffer); err != nil {
		return err
	}
	p(dev, dev.FramebufferSize())
	return ctx.PresentGLContext(binding, planeshift.Rect{Size: ctx.LayerBounds(layer).Size})
}

func zoomImage(img *image.RGBA, zoom int) image.Image {
	if zoom <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
