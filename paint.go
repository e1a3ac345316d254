// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
)

// Clear makes rect transparent in the layer's backing store, or in dc when
// dc is not nil.
//
// The request is silently ignored when there is nowhere to draw, rect is
// empty, the layer holds an image or a solid color, the node's platform
// layer is not an offscreen surface, or no draw context can be obtained.
func (l *Layer) Clear(rect geom.Rect, dc surface.DrawContext) {
	if dc == nil && l.handle == nil {
		return
	}
	if rect.IsEmpty() {
		return
	}
	if !l.hasRasterContents() || !l.offscreenPlatformLayer() {
		return
	}

	var handle surface.Handle
	if dc == nil {
		handle = l.handle
		var err error
		if dc, err = l.c.backend.DrawContext(handle); err != nil {
			Logger().Debug("compositor: clear skipped, no draw context", "layer", l.id, "err", err)
			return
		}
	}
	if dc == nil {
		return
	}

	dc.Save()
	dc.SetOpticalZoom(l.zoom)
	dc.Clip(rect)
	dc.ClearRect(rect)
	dc.Restore()

	if handle != nil {
		l.c.backend.ReleaseDrawContext(handle, dc)
	}
	l.needsDisplay = false
}

// Paint rasterizes the node's contents inside rect into the layer's own
// backing store.
func (l *Layer) Paint(rect geom.Rect) {
	l.PaintWith(rect, geom.Point{}, 1, nil, nil)
}

// PaintWith rasterizes the node's contents inside rect.
//
// The destination is target's backing store when target is not nil, dc when
// dc is not nil, and the layer's own backing store otherwise. Contents are
// shifted by -offset, and composited through a transparency layer when
// opacity is below 1.
//
// The request is silently ignored when both target and dc are given, there
// is nowhere to draw, the layer holds an image or a solid color, the node's
// platform layer is not an offscreen surface, rect is empty, or no draw
// context can be obtained.
func (l *Layer) PaintWith(rect geom.Rect, offset geom.Point, opacity float32, target *Layer, dc surface.DrawContext) {
	if target != nil && dc != nil {
		Logger().Debug("compositor: paint skipped, both target and context given", "layer", l.id)
		return
	}
	switch {
	case target != nil && target.handle == nil:
		return
	case target == nil && dc == nil && l.handle == nil:
		return
	}
	if !l.hasRasterContents() || !l.offscreenPlatformLayer() {
		return
	}
	if rect.IsEmpty() {
		return
	}

	var (
		handle  surface.Handle
		backend surface.Backend
	)
	switch {
	case target != nil:
		handle, backend = target.handle, target.c.backend
	case dc == nil:
		handle, backend = l.handle, l.c.backend
	}
	if handle != nil {
		var err error
		if dc, err = backend.DrawContext(handle); err != nil {
			Logger().Debug("compositor: paint skipped, no draw context", "layer", l.id, "err", err)
			return
		}
	}
	if dc == nil {
		return
	}

	dc.Save()
	dc.SetOpticalZoom(l.zoom)
	dc.Clip(rect.Translate(-offset.X, -offset.Y))
	dc.Translate(-offset.X, -offset.Y)
	if opacity < 1 {
		dc.BeginTransparencyLayer(opacity)
	}
	l.node.PaintContents(dc, rect)
	if opacity < 1 {
		dc.EndTransparencyLayer()
	}
	dc.Restore()

	if handle != nil {
		backend.ReleaseDrawContext(handle, dc)
	}
	l.lastPainted = rect
	l.needsDisplay = false
}

// hasRasterContents reports whether the layer is painted by its node rather
// than showing an image or a solid color.
func (l *Layer) hasRasterContents() bool {
	return !l.isImage && !l.hasSolidColor
}

// offscreenPlatformLayer reports whether the node is presented through an
// offscreen surface. Nodes without a platform layer qualify.
func (l *Layer) offscreenPlatformLayer() bool {
	pl := l.node.PlatformLayer()
	return pl == nil || pl.Kind() == surface.KindOffscreen
}
