// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/planeshift"
	"github.com/gogpu/planeshift/render"
)

// ScreenshotHostedLayer implements planeshift.Backend.
//
// The layer's window box is computed now; the pixels are read once
// transaction resolves, so the image shows that transaction's frame. The
// image is top-down with one pixel per physical window pixel.
func (b *Backend) ScreenshotHostedLayer(layer planeshift.LayerID, transaction *planeshift.Promise[struct{}], c planeshift.Components) *planeshift.Promise[*image.RGBA] {
	result := planeshift.NewPromise[*image.RGBA]()
	box := planeshift.Rect{
		Origin: c.ScreenOrigin(layer),
		Size:   c.Geometry.Must(layer).Bounds.Size,
	}

	transaction.Then(func(struct{}) {
		img, err := b.capture(box)
		if err != nil {
			b.logger.Warn("software: screenshot failed", "layer", layer, "err", err)
			result.Reject(err)
			return
		}
		result.Resolve(img)
	})
	transaction.Catch(result.Reject)
	return result
}

func (b *Backend) capture(box planeshift.Rect) (*image.RGBA, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if err := b.dev.BindFramebuffer(render.DefaultFramebuffer); err != nil {
		return nil, err
	}
	size := b.dev.FramebufferSize()
	scale := float32(b.iface.ScaleFactor())
	r := windowRect(box.Scale(scale).Round(), 1, size.Y)
	if r.Empty() || !r.In(image.Rectangle{Max: size}) {
		return nil, fmt.Errorf("%w: %v in %v", ErrScreenshotBounds, box, size)
	}
	return readImage(b.dev, r)
}

// readImage reads r, a bottom-up framebuffer rectangle, into a top-down
// RGBA image.
func readImage(dev render.Device, r image.Rectangle) (*image.RGBA, error) {
	px, err := dev.ReadPixels(r)
	if err != nil {
		return nil, err
	}
	w, h := r.Dx(), r.Dy()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rowBytes := w * 4
	for y := 0; y < h; y++ {
		src := px[(h-1-y)*rowBytes : (h-y)*rowBytes]
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], src)
	}
	if dev.Format() == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return img, nil
}
