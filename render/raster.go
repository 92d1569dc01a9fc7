// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// div255 divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8 (Alvy Ray Smith).
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// factor returns the blend factor f as a 0-255 weight.
func factor(f BlendFactor, srcA, dstA byte) uint16 {
	switch f {
	case BlendOne:
		return 255
	case BlendSrcAlpha:
		return uint16(srcA)
	case BlendOneMinusSrcAlpha:
		return uint16(255 - srcA)
	case BlendDstAlpha:
		return uint16(dstA)
	case BlendOneMinusDstAlpha:
		return uint16(255 - dstA)
	default:
		return 0
	}
}

// blendPixel applies src*fs + dst*fd per channel on premultiplied values.
func blendPixel(dst, src []byte, s State) {
	fs := factor(s.BlendSrc, src[3], dst[3])
	fd := factor(s.BlendDst, src[3], dst[3])
	for i := 0; i < 4; i++ {
		v := div255(uint16(src[i])*fs) + div255(uint16(dst[i])*fd)
		if v > 255 {
			v = 255
		}
		dst[i] = byte(v)
	}
}

func depthPasses(fn CompareFunc, fragment, stored float32) bool {
	switch fn {
	case CompareNever:
		return false
	case CompareLess:
		return fragment < stored
	case CompareLessEqual:
		return fragment <= stored
	case CompareGreater:
		return fragment > stored
	case CompareGreaterEqual:
		return fragment >= stored
	default:
		return true
	}
}

// quadSpan is a quad mapped into framebuffer pixel space:
// P(u, v) = origin + u*ex + v*ey.
type quadSpan struct {
	origin, ex, ey f32.Vec2
	det            float32
}

// mapQuad maps the unit quad through m (unit quad -> NDC) and the viewport
// (NDC -> pixels).
func mapQuad(m f32.Aff3, viewport image.Rectangle) quadSpan {
	hw := float32(viewport.Dx()) / 2
	hh := float32(viewport.Dy()) / 2
	q := quadSpan{
		origin: f32.Vec2{
			float32(viewport.Min.X) + (m[2]+1)*hw,
			float32(viewport.Min.Y) + (m[5]+1)*hh,
		},
		ex: f32.Vec2{m[0] * hw, m[3] * hh},
		ey: f32.Vec2{m[1] * hw, m[4] * hh},
	}
	q.det = q.ex[0]*q.ey[1] - q.ey[0]*q.ex[1]
	return q
}

// pixelBounds returns the pixels whose centers may be covered.
func (q quadSpan) pixelBounds() image.Rectangle {
	minX, minY := q.origin[0], q.origin[1]
	maxX, maxY := minX, minY
	for _, c := range []f32.Vec2{
		{q.origin[0] + q.ex[0], q.origin[1] + q.ex[1]},
		{q.origin[0] + q.ey[0], q.origin[1] + q.ey[1]},
		{q.origin[0] + q.ex[0] + q.ey[0], q.origin[1] + q.ex[1] + q.ey[1]},
	} {
		minX, maxX = math32.Min(minX, c[0]), math32.Max(maxX, c[0])
		minY, maxY = math32.Min(minY, c[1]), math32.Max(maxY, c[1])
	}
	return image.Rect(
		int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)),
	)
}

// unit inverts the mapping for the pixel center (x+0.5, y+0.5).
func (q quadSpan) unit(x, y int) (u, v float32) {
	px := float32(x) + 0.5 - q.origin[0]
	py := float32(y) + 0.5 - q.origin[1]
	u = (px*q.ey[1] - py*q.ey[0]) / q.det
	v = (py*q.ex[0] - px*q.ex[1]) / q.det
	return u, v
}

// rasterQuad draws q into fb with nearest-texel sampling.
func rasterQuad(fb *framebuffer, tex *Texture, q Quad, viewport, clip image.Rectangle, s State) {
	span := mapQuad(q.Transform, viewport)
	if span.det == 0 {
		return
	}
	area := span.pixelBounds().Intersect(clip)
	if area.Empty() {
		return
	}

	dst := fb.color.img
	src := tex.img
	tw, th := src.Bounds().Dx(), src.Bounds().Dy()
	if tw == 0 || th == 0 {
		return
	}
	ds := fb.depthStencil
	testDepth := s.DepthTest && ds != nil

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			u, v := span.unit(x, y)
			if u < 0 || u >= 1 || v < 0 || v >= 1 {
				continue
			}
			if testDepth {
				i := y*ds.width + x
				if !depthPasses(s.DepthFunc, q.Depth, ds.depth[i]) {
					continue
				}
				if s.DepthWrite {
					ds.depth[i] = q.Depth
				}
			}

			tx := min(int(u*float32(tw)), tw-1)
			ty := min(int(v*float32(th)), th-1)
			so := src.PixOffset(tx, ty)
			do := dst.PixOffset(x, y)
			texel := src.Pix[so : so+4 : so+4]
			out := dst.Pix[do : do+4 : do+4]
			if s.Blend {
				blendPixel(out, texel, s)
			} else {
				copy(out, texel)
			}
		}
	}
}
