// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"image"

	"github.com/chewxy/math32"
)

// Rect is an axis-aligned rectangle in layer coordinates.
// A rectangle with zero or negative width or height is empty.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// RectXYWH returns the rectangle with the given origin and size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Y + r.Height }

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsDegenerate reports whether r has a zero width or a zero height.
func (r Rect) IsDegenerate() bool {
	return r.Width == 0 || r.Height == 0
}

// Contains reports whether other lies entirely inside r.
// Edges are inclusive, so a rectangle contains itself.
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		r.MaxX() >= other.MaxX() && r.MaxY() >= other.MaxY()
}

// ContainsPoint reports whether p lies inside r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersect returns the largest rectangle contained by both r and other.
// The result is the zero Rect if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math32.Max(r.X, other.X)
	y0 := math32.Max(r.Y, other.Y)
	x1 := math32.Min(r.MaxX(), other.MaxX())
	y1 := math32.Min(r.MaxY(), other.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest rectangle containing both r and other.
// Empty rectangles do not contribute.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := math32.Min(r.X, other.X)
	y0 := math32.Min(r.Y, other.Y)
	x1 := math32.Max(r.MaxX(), other.MaxX())
	y1 := math32.Max(r.MaxY(), other.MaxY())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Scale returns r with origin and size multiplied by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

// EnclosingIntRect returns the smallest integer rectangle that contains r.
func (r Rect) EnclosingIntRect() IntRect {
	if r.IsEmpty() {
		return IntRect{}
	}
	x0 := int(math32.Floor(r.X))
	y0 := int(math32.Floor(r.Y))
	x1 := int(math32.Ceil(r.MaxX()))
	y1 := int(math32.Ceil(r.MaxY()))
	return IntRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// IntRect is an axis-aligned rectangle on the pixel grid.
type IntRect struct {
	X, Y          int
	Width, Height int
}

// IntRectXYWH returns the integer rectangle with the given origin and size.
func IntRectXYWH(x, y, w, h int) IntRect {
	return IntRect{X: x, Y: y, Width: w, Height: h}
}

// IsEmpty reports whether r covers no pixels.
func (r IntRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies entirely inside r.
func (r IntRect) Contains(other IntRect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		r.X+r.Width >= other.X+other.Width && r.Y+r.Height >= other.Y+other.Height
}

// Translate returns r moved by (dx, dy).
func (r IntRect) Translate(dx, dy int) IntRect {
	return IntRect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Rect converts r to a float rectangle.
func (r IntRect) Rect() Rect {
	return Rect{X: float32(r.X), Y: float32(r.Y), Width: float32(r.Width), Height: float32(r.Height)}
}

// Image converts r to an image.Rectangle.
func (r IntRect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromImage converts an image.Rectangle to an IntRect.
func FromImage(r image.Rectangle) IntRect {
	return IntRect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}
