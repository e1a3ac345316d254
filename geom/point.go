// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "github.com/chewxy/math32"

// Point is a position in layer coordinates.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Point3 is a point with a depth component, used for anchor points.
type Point3 struct {
	X, Y, Z float32
}

// IntPoint is a position on the pixel grid.
type IntPoint struct {
	X, Y int
}

// Point converts p to a float point.
func (p IntPoint) Point() Point { return Point{X: float32(p.X), Y: float32(p.Y)} }

// Size is a float width and height.
type Size struct {
	Width, Height float32
}

// IsEmpty reports whether s has no area.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// Bounds returns the rectangle at the origin with size s.
func (s Size) Bounds() Rect { return Rect{Width: s.Width, Height: s.Height} }

// Ceil rounds both dimensions up to the pixel grid.
func (s Size) Ceil() IntSize {
	return IntSize{Width: int(math32.Ceil(s.Width)), Height: int(math32.Ceil(s.Height))}
}

// IntSize is an integer width and height.
type IntSize struct {
	Width, Height int
}

// IsZero reports whether both dimensions are zero.
func (s IntSize) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Area returns Width*Height.
func (s IntSize) Area() int { return s.Width * s.Height }

// Matrix4 is a 4x4 transform in row-major order (m11, m12, ... m44).
type Matrix4 [16]float64

// Identity4 returns the identity transform.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
