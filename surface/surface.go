// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// Handle is an opaque reference to a raster surface owned by a Backend.
//
// A Handle is only meaningful to the Backend that created it. After
// DeleteSurface, or after a failed ResizeSurface or SetZoom, the handle
// is released and must not be used again.
type Handle interface {
	// Kind returns the kind the surface was created with.
	Kind() Kind

	// Size returns the logical size of the surface.
	Size() geom.IntSize

	// Zoom returns the optical zoom the surface is rasterized at.
	Zoom() float32
}

// Backend creates, resizes, and destroys raster surfaces and hands out
// draw contexts for them.
//
// Backends are used from a single goroutine (the compositor thread).
//
// Failure contract: when ResizeSurface or SetZoom returns an error, the
// backend has already released the surface. Callers drop the handle
// without calling DeleteSurface.
type Backend interface {
	// CreateSurface allocates a surface of the given kind and logical size,
	// rasterized at zoom.
	CreateSurface(kind Kind, size geom.IntSize, zoom float32) (Handle, error)

	// ResizeSurface changes the logical size of h.
	ResizeSurface(h Handle, size geom.IntSize) error

	// SetZoom rescales h to a new optical zoom.
	SetZoom(h Handle, zoom float32) error

	// DeleteSurface releases h. Deleting a released handle is a no-op.
	DeleteSurface(h Handle)

	// DrawContext returns a context drawing into h.
	// Every successful call must be paired with ReleaseDrawContext.
	DrawContext(h Handle) (DrawContext, error)

	// ReleaseDrawContext finishes drawing into h and publishes the result.
	ReleaseDrawContext(h Handle, dc DrawContext)
}

// DrawContext is the small graphics-context surface the compositor uses to
// clear and paint layer contents. Coordinates are logical; the context maps
// them to surface pixels through its optical zoom and translation.
//
// Save and Restore bracket the clip, translation and zoom state.
type DrawContext interface {
	Save()
	Restore()

	// Clip intersects the current clip with r.
	Clip(r geom.Rect)

	// Translate moves the origin by (dx, dy).
	Translate(dx, dy float32)

	// SetOpticalZoom sets the logical-to-pixel scale.
	SetOpticalZoom(zoom float32)

	// BeginTransparencyLayer redirects drawing into a temporary layer that is
	// composited with the given opacity by EndTransparencyLayer.
	BeginTransparencyLayer(opacity float32)
	EndTransparencyLayer()

	// ClearRect sets every pixel of r inside the clip to transparent.
	ClearRect(r geom.Rect)

	// FillRect blends c over r inside the clip.
	FillRect(r geom.Rect, c gputypes.Color)

	// DrawImage draws img with its top-left corner at at.
	DrawImage(img image.Image, at geom.Point)
}

// TreeObserver is implemented by backends that want to know when the layer
// owning a surface joins or leaves the visible layer tree.
type TreeObserver interface {
	DidAttachToTree(h Handle)
	DidDetachFromTree(h Handle)
}

// DisplayObserver is implemented by backends whose surfaces need a
// notification after the compositor has displayed them, such as 3D canvases
// with swap chains.
type DisplayObserver interface {
	DidDisplay(h Handle)
}

// Snapshotter is implemented by handles whose pixels can be read back.
type Snapshotter interface {
	// Snapshot returns a copy of the surface pixels.
	Snapshot() *image.RGBA
}
