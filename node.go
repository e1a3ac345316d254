// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
)

// Node is a compositable layer of the host's layer tree.
//
// The compositor never owns nodes. It reads them, walks their children and
// asks them to paint, but parent/child wiring and lifetime stay with the
// host. Node values are used as map keys, so implementations must be
// comparable; pointer types are the usual choice.
//
// Node methods must not call back into the Compositor that is invoking them.
type Node interface {
	// Parent returns the parent node, or nil for a root.
	Parent() Node

	// Children returns the child nodes in paint order.
	Children() []Node

	Size() geom.Size
	Position() geom.Point
	AnchorPoint() geom.Point3
	Transform() geom.Matrix4
	ChildrenTransform() geom.Matrix4
	Opacity() float32
	BlendMode() BlendMode
	Flags() ContentFlags

	// PlatformLayer returns the surface the host presents this node with,
	// or nil. Paint and Clear only run for offscreen platform layers.
	PlatformLayer() surface.Handle

	// PaintContents rasterizes the node's contents inside clip.
	PaintContents(dc surface.DrawContext, clip geom.Rect)

	// Owner returns the render node whose style drives positioning,
	// or nil when the node has none.
	Owner() RenderNode

	// MaskLayer returns the node used as this node's mask, or nil.
	MaskLayer() Node

	// Name returns a debugging name.
	Name() string
}

// LayerFlusher is implemented by nodes that have per-layer state to push
// before their subtree is flushed.
type LayerFlusher interface {
	FlushLayerOnly(clip geom.Rect)
}

// CommitNotifier is implemented by nodes that want to hear that a flush
// committed their compositing changes.
type CommitNotifier interface {
	DidCommitChanges()
}

// VideoNode is implemented by nodes whose contents come from a media player.
type VideoNode interface {
	IsVideo() bool
}

// ContentFlags describes a node's contents.
type ContentFlags uint32

// Content flags.
const (
	ContentsOpaque ContentFlags = 1 << iota
	DrawsContent
	MasksToBounds
	RootClipping
	ContentsVisible
	Preserves3D
	BackfaceVisible
)

// Has reports whether all bits of f are set.
func (c ContentFlags) Has(f ContentFlags) bool { return c&f == f }

// BlendMode is the compositing operator applied when a layer is blended
// onto its backdrop.
type BlendMode int

// Blend modes.
const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = [...]string{
	"normal", "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light", "difference",
	"exclusion", "hue", "saturation", "color", "luminosity",
}

// String returns the CSS name of the blend mode.
func (b BlendMode) String() string {
	if b >= 0 && int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return "unknown"
}

// Positioning is the resolved CSS position scheme of a render node.
type Positioning int

// Position schemes.
const (
	PositionStatic Positioning = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// String returns the CSS keyword.
func (p Positioning) String() string {
	switch p {
	case PositionStatic:
		return "static"
	case PositionRelative:
		return "relative"
	case PositionAbsolute:
		return "absolute"
	case PositionFixed:
		return "fixed"
	case PositionSticky:
		return "sticky"
	default:
		return "unknown"
	}
}

// RenderNode is the host layout object that owns a layer. It supplies the
// inputs of position-constraint resolution.
type RenderNode interface {
	Positioning() Positioning
}

// StyleEdgeProvider is implemented by render nodes that expose the resolved
// top/right/bottom/left style lengths.
type StyleEdgeProvider interface {
	Edge(e Edge) Length
}

// MarginProvider is implemented by render nodes that expose resolved margins.
type MarginProvider interface {
	Margin(e Edge) Length
}

// StickyConstraintProvider is implemented by render nodes that can compute
// their sticky viewport constraints for the current scroll position.
// It returns false when the node has no box to constrain.
type StickyConstraintProvider interface {
	StickyConstraints() (StickyConstraints, bool)
}

// ZIndexProvider is implemented by render nodes with a stacking order.
type ZIndexProvider interface {
	ZIndex() int
}

// StickyConstraints are the viewport constraints of a sticky-positioned box.
type StickyConstraints struct {
	BoxRect             geom.Rect
	ContainingBlockRect geom.Rect
	Offset              geom.Size
}
