package planeshift

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// Point is a position in logical pixels. The origin is the top-left corner
// and y grows downward.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Size is a width and height in logical pixels.
type Size struct {
	Width, Height float32
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle: an origin plus a size.
type Rect struct {
	Origin Point
	Size   Size
}

// R is a convenience function to create a Rect from origin and size.
func R(x, y, w, h float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// MinX returns the left edge.
func (r Rect) MinX() float32 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float32 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Origin.Y + r.Size.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// fromEdges builds a rectangle from its edges.
func fromEdges(minX, minY, maxX, maxY float32) Rect {
	return R(minX, minY, maxX-minX, maxY-minY)
}

// Union returns the smallest rectangle containing r and s.
// An empty rectangle contributes nothing, so Union is commutative and
// the zero Rect is its identity.
func (r Rect) Union(s Rect) Rect {
	switch {
	case r.IsEmpty():
		return s
	case s.IsEmpty():
		return r
	}
	return fromEdges(
		math32.Min(r.MinX(), s.MinX()), math32.Min(r.MinY(), s.MinY()),
		math32.Max(r.MaxX(), s.MaxX()), math32.Max(r.MaxY(), s.MaxY()),
	)
}

// Intersect returns the overlap of r and s, or the zero Rect if they do
// not overlap.
func (r Rect) Intersect(s Rect) Rect {
	minX, minY := math32.Max(r.MinX(), s.MinX()), math32.Max(r.MinY(), s.MinY())
	maxX, maxY := math32.Min(r.MaxX(), s.MaxX()), math32.Min(r.MaxY(), s.MaxY())
	if maxX <= minX || maxY <= minY {
		return Rect{}
	}
	return fromEdges(minX, minY, maxX, maxY)
}

// Translate returns r moved by p.
func (r Rect) Translate(p Point) Rect {
	r.Origin = r.Origin.Add(p)
	return r
}

// Scale returns r with all edges multiplied by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{Origin: r.Origin.Mul(s), Size: Size{Width: r.Size.Width * s, Height: r.Size.Height * s}}
}

// RoundOut returns the smallest integer-aligned rectangle containing r.
func (r Rect) RoundOut() Rect {
	return fromEdges(
		math32.Floor(r.MinX()), math32.Floor(r.MinY()),
		math32.Ceil(r.MaxX()), math32.Ceil(r.MaxY()),
	)
}

// Round returns r with every edge rounded to the nearest integer.
func (r Rect) Round() Rect {
	return fromEdges(
		math32.Round(r.MinX()), math32.Round(r.MinY()),
		math32.Round(r.MaxX()), math32.Round(r.MaxY()),
	)
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// ImageRect converts the rounded-out rectangle to integer coordinates.
func (r Rect) ImageRect() image.Rectangle {
	o := r.RoundOut()
	return image.Rect(int(o.MinX()), int(o.MinY()), int(o.MaxX()), int(o.MaxY()))
}

// String returns a readable form such as "(0,0 100x100)".
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}
