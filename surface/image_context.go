// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// ImageContext is a DrawContext over an *image.RGBA.
//
// Logical coordinates map to pixels as (p + translation) * zoom.
// Drawing outside the current clip is discarded.
type ImageContext struct {
	dst    *image.RGBA
	state  contextState
	saved  []contextState
	layers []transparencyLayer
}

type contextState struct {
	clip   image.Rectangle
	tx, ty float32
	zoom   float32
}

type transparencyLayer struct {
	parent  *image.RGBA
	clip    image.Rectangle
	opacity float32
}

var _ DrawContext = (*ImageContext)(nil)

// NewImageContext returns a context drawing into dst at zoom 1.
func NewImageContext(dst *image.RGBA) *ImageContext {
	return &ImageContext{
		dst:   dst,
		state: contextState{clip: dst.Bounds(), zoom: 1},
	}
}

// Save pushes the clip, translation and zoom.
func (c *ImageContext) Save() {
	c.saved = append(c.saved, c.state)
}

// Restore pops the state pushed by the matching Save.
// An unbalanced Restore is ignored.
func (c *ImageContext) Restore() {
	n := len(c.saved)
	if n == 0 {
		return
	}
	c.state = c.saved[n-1]
	c.saved = c.saved[:n-1]
}

// Clip implements DrawContext.
func (c *ImageContext) Clip(r geom.Rect) {
	c.state.clip = c.state.clip.Intersect(c.device(r))
}

// Translate implements DrawContext.
func (c *ImageContext) Translate(dx, dy float32) {
	c.state.tx += dx
	c.state.ty += dy
}

// SetOpticalZoom implements DrawContext. Non-positive values are ignored.
func (c *ImageContext) SetOpticalZoom(zoom float32) {
	if zoom > 0 {
		c.state.zoom = zoom
	}
}

// BeginTransparencyLayer implements DrawContext.
func (c *ImageContext) BeginTransparencyLayer(opacity float32) {
	c.layers = append(c.layers, transparencyLayer{
		parent:  c.dst,
		clip:    c.state.clip,
		opacity: opacity,
	})
	c.dst = image.NewRGBA(c.dst.Bounds())
}

// EndTransparencyLayer implements DrawContext.
func (c *ImageContext) EndTransparencyLayer() {
	n := len(c.layers)
	if n == 0 {
		return
	}
	l := c.layers[n-1]
	c.layers = c.layers[:n-1]

	src := c.dst
	c.dst = l.parent
	mask := image.NewUniform(color.Alpha16{A: unit16(float64(l.opacity))})
	draw.DrawMask(c.dst, l.clip, src, l.clip.Min, mask, image.Point{}, draw.Over)
}

// Flush closes any transparency layers left open.
func (c *ImageContext) Flush() {
	for len(c.layers) > 0 {
		c.EndTransparencyLayer()
	}
}

// ClearRect implements DrawContext.
func (c *ImageContext) ClearRect(r geom.Rect) {
	area := c.device(r).Intersect(c.state.clip)
	if area.Empty() {
		return
	}
	draw.Draw(c.dst, area, image.Transparent, image.Point{}, draw.Src)
}

// FillRect implements DrawContext.
func (c *ImageContext) FillRect(r geom.Rect, col gputypes.Color) {
	area := c.device(r).Intersect(c.state.clip)
	if area.Empty() {
		return
	}
	draw.Draw(c.dst, area, image.NewUniform(ColorToRGBA64(col)), image.Point{}, draw.Over)
}

// DrawImage implements DrawContext.
func (c *ImageContext) DrawImage(img image.Image, at geom.Point) {
	sr := img.Bounds()
	dr := c.device(geom.RectXYWH(at.X, at.Y, float32(sr.Dx()), float32(sr.Dy())))
	if dr.Intersect(c.state.clip).Empty() {
		return
	}
	dst, ok := c.dst.SubImage(c.state.clip).(*image.RGBA)
	if !ok {
		return
	}
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() {
		draw.Draw(dst, dr, img, sr.Min, draw.Over)
		return
	}
	draw.ApproxBiLinear.Scale(dst, dr, img, sr, draw.Over, nil)
}

// device maps a logical rectangle to the pixel grid.
func (c *ImageContext) device(r geom.Rect) image.Rectangle {
	return r.Translate(c.state.tx, c.state.ty).Scale(c.state.zoom).EnclosingIntRect().Image()
}

// ColorToRGBA64 converts c to a premultiplied color, clamping each
// component to [0, 1].
func ColorToRGBA64(c gputypes.Color) color.RGBA64 {
	p := gputypes.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}.Premultiplied()
	return color.RGBA64{R: unit16(p.R), G: unit16(p.G), B: unit16(p.B), A: unit16(p.A)}
}

func unit16(v float64) uint16 {
	return uint16(clamp01(v)*0xffff + 0.5)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
