// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dirty tracks the stale sub-rectangles of a layer's backing store.
//
// A Tracker holds an unordered set of rectangles that must be repainted.
// A new rectangle is checked against every entry for containment, but it can
// only replace the most recently added entry. Overlapping rectangles are kept
// as-is rather than merged into an exact region, so a wide invalidation that
// arrives after unrelated ones may leave older, covered entries behind.
//
// Example:
//
//	var t dirty.Tracker
//	t.Add(geom.RectXYWH(0, 0, 5, 5))   // true
//	t.Add(geom.RectXYWH(0, 0, 10, 10)) // true, replaces the first rect
//	t.Add(geom.RectXYWH(2, 2, 3, 3))   // false, already covered
package dirty

import "github.com/gogpu/compositor/geom"

// Tracker is an ordered list of dirty rectangles for one surface.
// The zero value is an empty tracker ready for use.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	rects []geom.Rect
}

// Add records r as dirty.
//
// It returns false without changing the tracker when r has a zero width or
// height, or when an existing rectangle already contains r. When r contains
// the most recently added rectangle, that entry is replaced in place.
// Otherwise r is appended.
func (t *Tracker) Add(r geom.Rect) bool {
	if r.IsDegenerate() {
		return false
	}
	for _, d := range t.rects {
		if d.Contains(r) {
			return false
		}
	}
	if n := len(t.rects); n > 0 && r.Contains(t.rects[n-1]) {
		t.rects[n-1] = r
		return true
	}
	t.rects = append(t.rects, r)
	return true
}

// Invalidate replaces all entries with the single rectangle bounds.
func (t *Tracker) Invalidate(bounds geom.Rect) {
	t.rects = append(t.rects[:0], bounds)
}

// Reset removes all entries.
func (t *Tracker) Reset() {
	t.rects = t.rects[:0]
}

// Len returns the number of dirty rectangles.
func (t *Tracker) Len() int {
	return len(t.rects)
}

// At returns the i-th dirty rectangle, or the empty rectangle when i is out of range.
func (t *Tracker) At(i int) geom.Rect {
	if i < 0 || i >= len(t.rects) {
		return geom.Rect{}
	}
	return t.rects[i]
}

// Rects returns a copy of the dirty rectangles.
func (t *Tracker) Rects() []geom.Rect {
	if len(t.rects) == 0 {
		return nil
	}
	out := make([]geom.Rect, len(t.rects))
	copy(out, t.rects)
	return out
}

// Bounds returns the union of all dirty rectangles.
func (t *Tracker) Bounds() geom.Rect {
	var u geom.Rect
	for _, r := range t.rects {
		u = u.Union(r)
	}
	return u
}
