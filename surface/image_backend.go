// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/compositor/cache"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"golang.org/x/image/draw"
)

// ImageBackend is a CPU Backend whose surfaces are *image.RGBA buffers.
//
// Resizing keeps the pixels of the overlapping region. Changing the optical
// zoom resamples the existing pixels bilinearly, so a surface stays
// presentable until the compositor repaints it.
//
// Example:
//
//	b := surface.NewImageBackend(surface.Options{})
//	h, err := b.CreateSurface(surface.KindOffscreen, geom.IntSize{Width: 256, Height: 256}, 1)
//	if err != nil {
//	    return err
//	}
//	defer b.DeleteSurface(h)
type ImageBackend struct {
	opts  Options
	live  int
	bytes int64
	pool  *cache.Pool[image.Point, *image.RGBA]
}

// NewImageBackend creates a CPU backend. Released buffers are recycled up
// to opts.PoolBytes.
func NewImageBackend(opts Options) *ImageBackend {
	return &ImageBackend{
		opts: opts.Normalized(),
		pool: cache.NewPool[image.Point, *image.RGBA](opts.PoolBytes,
			func(img *image.RGBA) int64 { return int64(len(img.Pix)) }, nil),
	}
}

// ImageSurface is the Handle type of ImageBackend.
type ImageSurface struct {
	owner *ImageBackend
	kind  Kind
	size  geom.IntSize
	zoom  float32
	img   *image.RGBA
}

// Kind implements Handle.
func (s *ImageSurface) Kind() Kind { return s.kind }

// Size implements Handle.
func (s *ImageSurface) Size() geom.IntSize { return s.size }

// Zoom implements Handle.
func (s *ImageSurface) Zoom() float32 { return s.zoom }

// Image returns the backing buffer, or nil once the surface is released.
// The buffer is replaced by resize and zoom changes.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Released reports whether the surface has been released.
func (s *ImageSurface) Released() bool { return s.img == nil }

// Snapshot returns a copy of the surface pixels, or nil once released.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.img == nil {
		return nil
	}
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// LiveSurfaces returns the number of surfaces not yet released.
func (b *ImageBackend) LiveSurfaces() int { return b.live }

// Bytes returns the pixel storage held by live surfaces.
func (b *ImageBackend) Bytes() int64 { return b.bytes }

// PoolStats reports on the recycled buffers.
func (b *ImageBackend) PoolStats() cache.Stats { return b.pool.Stats() }

// Purge drops every recycled buffer.
func (b *ImageBackend) Purge() { b.pool.Clear() }

// CreateSurface implements Backend.
func (b *ImageBackend) CreateSurface(kind Kind, size geom.IntSize, zoom float32) (Handle, error) {
	px, err := b.pixelSize(size, zoom)
	if err != nil {
		return nil, err
	}
	s := &ImageSurface{owner: b, kind: kind, size: size, zoom: zoom}
	b.attach(s, b.newImage(px))
	logging.Logger().Debug("surface: image created", "kind", kind, "w", px.X, "h", px.Y)
	return s, nil
}

// ResizeSurface implements Backend.
func (b *ImageBackend) ResizeSurface(h Handle, size geom.IntSize) error {
	s, err := b.own(h)
	if err != nil {
		return err
	}
	px, err := b.pixelSize(size, s.zoom)
	if err != nil {
		b.release(s)
		return err
	}
	img := b.newImage(px)
	draw.Copy(img, image.Point{}, s.img, s.img.Bounds(), draw.Src, nil)
	b.detach(s)
	b.attach(s, img)
	s.size = size
	return nil
}

// SetZoom implements Backend.
func (b *ImageBackend) SetZoom(h Handle, zoom float32) error {
	s, err := b.own(h)
	if err != nil {
		return err
	}
	px, err := b.pixelSize(s.size, zoom)
	if err != nil {
		b.release(s)
		return err
	}
	img := b.newImage(px)
	draw.ApproxBiLinear.Scale(img, img.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	b.detach(s)
	b.attach(s, img)
	s.zoom = zoom
	return nil
}

// DeleteSurface implements Backend.
func (b *ImageBackend) DeleteSurface(h Handle) {
	s, err := b.own(h)
	if err != nil {
		return
	}
	b.release(s)
}

// DrawContext implements Backend.
func (b *ImageBackend) DrawContext(h Handle) (DrawContext, error) {
	s, err := b.own(h)
	if err != nil {
		return nil, err
	}
	dc := NewImageContext(s.img)
	dc.SetOpticalZoom(s.zoom)
	return dc, nil
}

// ReleaseDrawContext implements Backend.
// Transparency layers left open by the caller are composited.
func (b *ImageBackend) ReleaseDrawContext(_ Handle, dc DrawContext) {
	if c, ok := dc.(*ImageContext); ok {
		c.Flush()
	}
}

func (b *ImageBackend) own(h Handle) (*ImageSurface, error) {
	s, ok := h.(*ImageSurface)
	if !ok || s == nil || s.owner != b {
		return nil, ErrForeignHandle
	}
	if s.img == nil {
		return nil, ErrReleased
	}
	return s, nil
}

func (b *ImageBackend) pixelSize(size geom.IntSize, zoom float32) (image.Point, error) {
	return PixelSize(size, zoom, b.opts.MaxDimension)
}

// newImage returns a cleared buffer of px pixels, recycled when possible.
func (b *ImageBackend) newImage(px image.Point) *image.RGBA {
	if img, ok := b.pool.Take(px); ok {
		clear(img.Pix)
		return img
	}
	return image.NewRGBA(image.Rectangle{Max: px})
}

func (b *ImageBackend) attach(s *ImageSurface, img *image.RGBA) {
	s.img = img
	b.live++
	b.bytes += int64(len(img.Pix))
}

func (b *ImageBackend) detach(s *ImageSurface) {
	b.live--
	b.bytes -= int64(len(s.img.Pix))
	b.pool.Put(s.img.Rect.Size(), s.img)
	s.img = nil
}

func (b *ImageBackend) release(s *ImageSurface) {
	b.detach(s)
	logging.Logger().Debug("surface: image released", "kind", s.kind)
}
