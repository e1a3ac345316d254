// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import "github.com/gogpu/compositor/geom"

// positionState is what position-constraint resolution stores per layer.
// The zero value means "neither fixed nor sticky".
type positionState struct {
	fixed  bool
	sticky bool

	stickyBox             geom.Rect
	stickyContainingBlock geom.Rect
	stickyOffset          geom.Size

	edges   [4]EdgeValue
	margins [4]EdgeValue
}

// resolvePosition computes the position state of a layer owned by owner.
//
// Sticky layers take their constraints verbatim from the owner; fixed
// layers classify the owner's edge and margin lengths. Everything else is
// left cleared.
func resolvePosition(owner RenderNode) positionState {
	var s positionState
	if owner == nil {
		return s
	}

	switch owner.Positioning() {
	case PositionFixed:
		s.fixed = true
	case PositionSticky:
		s.sticky = true
	default:
		return s
	}

	if s.sticky {
		if p, ok := owner.(StickyConstraintProvider); ok {
			if sc, ok := p.StickyConstraints(); ok {
				s.stickyBox = sc.BoxRect
				s.stickyContainingBlock = sc.ContainingBlockRect
				s.stickyOffset = sc.Offset
			}
		}
		return s
	}

	if p, ok := owner.(StyleEdgeProvider); ok {
		for _, e := range Edges {
			s.edges[e] = Classify(p.Edge(e))
		}
	}
	if p, ok := owner.(MarginProvider); ok {
		for _, e := range Edges {
			s.margins[e] = Classify(p.Margin(e))
		}
	}
	return s
}

// UpdatePosition recomputes the layer's fixed/sticky constraints from its
// owning render node and reports whether anything changed.
//
// It is normally driven by FlushCompositingState, once per layer per flush.
func (l *Layer) UpdatePosition() bool {
	next := resolvePosition(l.node.Owner())
	changed := next != l.pos
	l.pos = next
	return changed
}

// IsFixedPositioned reports whether the layer's owner is position: fixed.
func (l *Layer) IsFixedPositioned() bool { return l.pos.fixed }

// IsStickilyPositioned reports whether the layer's owner is position: sticky.
func (l *Layer) IsStickilyPositioned() bool { return l.pos.sticky }

// IsEdgeDefined reports whether the fixed-position edge e has a value.
func (l *Layer) IsEdgeDefined(e Edge) bool {
	return e.valid() && l.pos.edges[e].Defined()
}

// EdgeValue returns the classified fixed-position edge e.
func (l *Layer) EdgeValue(e Edge) EdgeValue {
	if !e.valid() {
		return EdgeValue{}
	}
	return l.pos.edges[e]
}

// IsMarginDefined reports whether the fixed-position margin e has a value.
func (l *Layer) IsMarginDefined(e Edge) bool {
	return e.valid() && l.pos.margins[e].Defined()
}

// MarginValue returns the classified fixed-position margin e.
func (l *Layer) MarginValue(e Edge) EdgeValue {
	if !e.valid() {
		return EdgeValue{}
	}
	return l.pos.margins[e]
}

// StickyBoxRect returns the sticky box rect. Empty unless sticky.
func (l *Layer) StickyBoxRect() geom.Rect { return l.pos.stickyBox }

// StickyContainingBlockRect returns the sticky containing block. Empty unless sticky.
func (l *Layer) StickyContainingBlockRect() geom.Rect { return l.pos.stickyContainingBlock }

// StickyOffset returns the current sticky offset. Zero unless sticky.
func (l *Layer) StickyOffset() geom.Size { return l.pos.stickyOffset }
