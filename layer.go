// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"github.com/gogpu/compositor/dirty"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gputypes"
)

// Layer is the compositor's record for one host Node.
//
// It owns at most one backing store at a time and tracks which parts of it
// are stale, the position constraints needed to scroll it without a
// relayout, and a little content state. The Node itself stays owned by
// the host.
type Layer struct {
	c    *Compositor
	id   LayerID
	node Node

	handle      surface.Handle
	surfaceSize geom.IntSize
	zoom        float32
	isImage     bool

	dirty        dirty.Tracker
	needsDisplay bool
	lastPainted  geom.Rect

	pos positionState

	solidColor    gputypes.Color
	hasSolidColor bool

	marked    bool
	flushGen  uint64
	destroyed bool
}

// ID returns the layer's identifier.
func (l *Layer) ID() LayerID { return l.id }

// Node returns the host node the layer belongs to.
func (l *Layer) Node() Node { return l.node }

// Compositor returns the compositor the layer is registered with.
func (l *Layer) Compositor() *Compositor { return l.c }

// Destroy releases the backing store and removes the layer from its
// compositor. The layer must not be used afterwards.
func (l *Layer) Destroy() {
	if l.destroyed {
		return
	}
	l.DisposeOffscreen()
	l.c.unregister(l)
	l.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (l *Layer) Destroyed() bool { return l.destroyed }

// AddDirtyRect marks r as needing repaint. It returns false when r is
// degenerate or already covered by a dirty rect.
func (l *Layer) AddDirtyRect(r geom.Rect) bool {
	return l.dirty.Add(r)
}

// AddFullInvalidate replaces all dirty rects with the full layer bounds.
func (l *Layer) AddFullInvalidate() {
	l.dirty.Invalidate(l.Bounds())
}

// ResetDirtyRects forgets all dirty rects.
func (l *Layer) ResetDirtyRects() { l.dirty.Reset() }

// DirtyRectCount returns the number of dirty rects.
func (l *Layer) DirtyRectCount() int { return l.dirty.Len() }

// DirtyRectAt returns the i-th dirty rect, or an empty rect when i is out
// of range.
func (l *Layer) DirtyRectAt(i int) geom.Rect { return l.dirty.At(i) }

// DirtyRects returns a copy of all dirty rects.
func (l *Layer) DirtyRects() []geom.Rect { return l.dirty.Rects() }

// Bounds returns the layer's full logical bounds at the origin.
func (l *Layer) Bounds() geom.Rect { return l.node.Size().Bounds() }

// SetNeedsDisplay flags the layer for repaint.
func (l *Layer) SetNeedsDisplay() { l.needsDisplay = true }

// NeedsDisplay reports whether the layer is waiting for a paint.
func (l *Layer) NeedsDisplay() bool { return l.needsDisplay }

// LastPaintedRect returns the rect of the last successful paint, or an
// empty rect when the backing store was disposed since.
func (l *Layer) LastPaintedRect() geom.Rect { return l.lastPainted }

// SetContentsToSolidColor makes the layer a solid-color layer. Paint and
// Clear are ignored for such layers; the compositor fills them itself.
func (l *Layer) SetContentsToSolidColor(c gputypes.Color) {
	l.solidColor = c
	l.hasSolidColor = true
}

// ClearSolidColor returns the layer to raster contents.
func (l *Layer) ClearSolidColor() {
	l.solidColor = gputypes.Color{}
	l.hasSolidColor = false
}

// ContentsSolidColor returns the solid color and whether one is set.
func (l *Layer) ContentsSolidColor() (gputypes.Color, bool) {
	return l.solidColor, l.hasSolidColor
}

// MaskLayer returns the layer registered for the node's mask, or nil.
// The mask layer is looked up on every call and never owned.
func (l *Layer) MaskLayer() *Layer {
	return l.c.LayerFor(l.node.MaskLayer())
}

// Parent returns the layer registered for the node's parent, or nil.
func (l *Layer) Parent() *Layer {
	return l.c.LayerFor(l.node.Parent())
}

// Children returns the layers registered for the node's children, in host
// order. Children without a layer are skipped.
func (l *Layer) Children() []*Layer {
	nodes := l.node.Children()
	out := make([]*Layer, 0, len(nodes))
	for _, n := range nodes {
		if cl := l.c.LayerFor(n); cl != nil {
			out = append(out, cl)
		}
	}
	return out
}

// Name returns the node's debugging name.
func (l *Layer) Name() string { return l.node.Name() }

// Size returns the node's logical size.
func (l *Layer) Size() geom.Size { return l.node.Size() }

// Position returns the node's position in its parent.
func (l *Layer) Position() geom.Point { return l.node.Position() }

// AnchorPoint returns the node's anchor point.
func (l *Layer) AnchorPoint() geom.Point3 { return l.node.AnchorPoint() }

// Transform returns the node's transform.
func (l *Layer) Transform() geom.Matrix4 { return l.node.Transform() }

// ChildrenTransform returns the transform applied to the node's children.
func (l *Layer) ChildrenTransform() geom.Matrix4 { return l.node.ChildrenTransform() }

// Opacity returns the node's opacity.
func (l *Layer) Opacity() float32 { return l.node.Opacity() }

// BlendMode returns the node's blend mode.
func (l *Layer) BlendMode() BlendMode { return l.node.BlendMode() }

// Flags returns the node's content flags.
func (l *Layer) Flags() ContentFlags { return l.node.Flags() }

// DrawsContent reports whether the node has contents of its own.
func (l *Layer) DrawsContent() bool { return l.node.Flags().Has(DrawsContent) }

// ContentsOpaque reports whether the node's contents cover every pixel.
func (l *Layer) ContentsOpaque() bool { return l.node.Flags().Has(ContentsOpaque) }

// MasksToBounds reports whether the node clips its children.
func (l *Layer) MasksToBounds() bool { return l.node.Flags().Has(MasksToBounds) }

// IsRootClippingLayer reports whether the node is the root clipping layer.
func (l *Layer) IsRootClippingLayer() bool { return l.node.Flags().Has(RootClipping) }

// IsVideo reports whether the node presents media.
func (l *Layer) IsVideo() bool {
	v, ok := l.node.(VideoNode)
	return ok && v.IsVideo()
}

// ZIndex returns the owner's stacking order, or 0 without one.
func (l *Layer) ZIndex() int {
	if z, ok := l.node.Owner().(ZIndexProvider); ok {
		return z.ZIndex()
	}
	return 0
}

// PlatformLayer returns the node's presentation surface, if any.
func (l *Layer) PlatformLayer() surface.Handle { return l.node.PlatformLayer() }
