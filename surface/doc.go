// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the raster-surface backend consumed by the
// compositor.
//
// A Backend owns layer backing stores. The compositor only ever holds an
// opaque Handle and asks the backend to create, resize, rescale and delete
// it, or to hand out a DrawContext for painting.
//
//   - ImageBackend: CPU surfaces backed by *image.RGBA
//   - backend/native: GPU textures through the wgpu HAL
//   - Third-party backends via the registry
//
// # Failure contract
//
// Allocation failures are ordinary errors. When ResizeSurface or SetZoom
// fails, the backend has already released the surface and the caller only
// drops its handle. This lets the compositor fall back to "no surface"
// without a second round-trip into a backend that is out of memory.
//
// # Registry
//
// Backends register themselves by name and priority:
//
//	func init() {
//	    surface.Register("native", 100, nativeFactory, nativeAvailable)
//	}
//
//	// Later:
//	b, err := surface.NewBackendByName("native", surface.Options{})
//
// The CPU backend is always registered as "image".
//
// # Usage
//
//	b := surface.NewImageBackend(surface.Options{})
//	h, _ := b.CreateSurface(surface.KindOffscreen, geom.IntSize{Width: 64, Height: 64}, 1)
//
//	dc, _ := b.DrawContext(h)
//	dc.Save()
//	dc.Clip(geom.RectXYWH(0, 0, 32, 32))
//	dc.FillRect(geom.RectXYWH(0, 0, 64, 64), gputypes.ColorRed)
//	dc.Restore()
//	b.ReleaseDrawContext(h, dc)
//
//	img := h.(*surface.ImageSurface).Snapshot()
package surface
