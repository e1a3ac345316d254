// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"image"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
)

// EnsureOffscreen makes sure the layer has a backing store of exactly
// w×h logical pixels. An existing store is resized in place.
//
// On failure the layer is left without a backing store, the memory-pressure
// handler is told how much memory was needed, and false is returned.
func (l *Layer) EnsureOffscreen(w, h int) bool {
	if l.destroyed {
		return false
	}
	size := geom.IntSize{Width: w, Height: h}
	if l.handle != nil && l.surfaceSize == size {
		return true
	}

	b := l.c.backend
	if l.handle != nil {
		if err := b.ResizeSurface(l.handle, size); err != nil {
			// The backend released the surface with the failed resize.
			l.handle = nil
			l.allocFailed(size, err)
			return false
		}
	} else {
		handle, err := b.CreateSurface(surface.KindOffscreen, size, l.zoom)
		if err != nil {
			l.allocFailed(size, err)
			return false
		}
		l.handle = handle
	}
	l.surfaceSize = size
	return true
}

// DisposeOffscreen releases the backing store. It is safe to call when the
// layer has none.
func (l *Layer) DisposeOffscreen() {
	l.surfaceSize = geom.IntSize{}
	l.lastPainted = geom.Rect{}
	l.isImage = false
	if l.handle != nil {
		l.c.backend.DeleteSurface(l.handle)
		l.handle = nil
	}
}

// SetOpticalZoom changes the backing-store pixel density.
//
// Without a backing store the value is only remembered for the next
// EnsureOffscreen. With one, the backend rescales it in place and the whole
// layer becomes dirty; if that fails the store is dropped and the failure
// is reported like any other allocation failure. A zoom that is not
// positive is ignored.
func (l *Layer) SetOpticalZoom(zoom float32) {
	if !(zoom > 0) || l.zoom == zoom {
		return
	}
	l.zoom = zoom
	if l.handle == nil {
		return
	}
	if err := l.c.backend.SetZoom(l.handle, zoom); err != nil {
		// The backend released the surface with the failed rescale.
		size := l.surfaceSize
		l.handle = nil
		l.allocFailed(size, err)
		return
	}
	l.AddFullInvalidate()
}

// OpticalZoom returns the layer's optical zoom.
func (l *Layer) OpticalZoom() float32 { return l.zoom }

// HasOffscreen reports whether the layer currently has a backing store.
func (l *Layer) HasOffscreen() bool { return l.handle != nil }

// OffscreenSize returns the backing-store size, or zero without one.
func (l *Layer) OffscreenSize() geom.IntSize { return l.surfaceSize }

// Offscreen returns the backing-store handle, or nil.
func (l *Layer) Offscreen() surface.Handle { return l.handle }

// IsImage reports whether the backing store holds an image set by
// SetContentsToImage.
func (l *Layer) IsImage() bool { return l.isImage }

// SetContentsToImage makes the layer image-backed: the backing store is
// sized to img, cleared, and filled with it. Paint and Clear are ignored
// for image-backed layers until the backing store is disposed. An empty
// image is ignored and reports false.
func (l *Layer) SetContentsToImage(img image.Image) bool {
	b := img.Bounds()
	if b.Empty() {
		return false
	}
	if !l.EnsureOffscreen(b.Dx(), b.Dy()) {
		return false
	}
	dc, err := l.c.backend.DrawContext(l.handle)
	if err != nil {
		Logger().Debug("compositor: no draw context for image contents", "layer", l.id, "err", err)
		return false
	}
	full := geom.RectXYWH(0, 0, float32(b.Dx()), float32(b.Dy()))
	dc.Save()
	dc.SetOpticalZoom(l.zoom)
	dc.Clip(full)
	dc.ClearRect(full)
	dc.DrawImage(img, geom.Point{})
	dc.Restore()
	l.c.backend.ReleaseDrawContext(l.handle, dc)
	l.isImage = true
	return true
}

// DidAttachToTree tells the backend the layer joined the visible tree.
func (l *Layer) DidAttachToTree() {
	if l.handle == nil {
		return
	}
	if o, ok := l.c.backend.(surface.TreeObserver); ok {
		o.DidAttachToTree(l.handle)
	}
}

// DidDetachFromTree tells the backend the layer left the visible tree.
func (l *Layer) DidDetachFromTree() {
	if l.handle == nil {
		return
	}
	if o, ok := l.c.backend.(surface.TreeObserver); ok {
		o.DidDetachFromTree(l.handle)
	}
}

// DidDisplay is called after the host presented the layer. It forgets the
// dirty rects and, for 3D canvas platform layers, notifies the backend.
func (l *Layer) DidDisplay() {
	if pl := l.node.PlatformLayer(); pl != nil && pl.Kind() == surface.KindCanvas3D {
		if o, ok := l.c.backend.(surface.DisplayObserver); ok {
			o.DidDisplay(pl)
		}
	}
	l.dirty.Reset()
}

func (l *Layer) allocFailed(size geom.IntSize, err error) {
	l.DisposeOffscreen()
	bytes := backingStoreBytes(size, l.zoom)
	Logger().Warn("compositor: backing store allocation failed",
		"layer", l.id, "name", l.node.Name(),
		"w", size.Width, "h", size.Height, "zoom", l.zoom,
		"bytes", bytes, "err", err)
	l.c.reportAllocFailure(bytes, AllocLayer)
}
