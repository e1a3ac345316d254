// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layercanvas

import (
	"cmp"
	"errors"
	"image"
	"slices"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gpucontext"
)

// Common errors returned by Presenter operations.
var (
	// ErrPresenterClosed is returned when operations are attempted on a closed presenter.
	ErrPresenterClosed = errors.New("layercanvas: presenter is closed")

	// ErrNilWindow is returned when a nil WindowProvider is passed.
	ErrNilWindow = errors.New("layercanvas: nil WindowProvider")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// entry is the GPU side of one layer.
type entry struct {
	layer  *compositor.Layer
	handle surface.Handle
	tex    gpucontext.Texture
	width  int
	height int
	stale  bool // committed since the last upload
	full   bool // the whole texture must be uploaded
}

// Presenter uploads committed layers to GPU textures and draws them.
type Presenter struct {
	window  gpucontext.WindowProvider
	root    *compositor.Layer
	entries map[compositor.LayerID]*entry
	closed  bool
}

// New creates a presenter that requests redraws from window.
func New(window gpucontext.WindowProvider) (*Presenter, error) {
	if window == nil {
		return nil, ErrNilWindow
	}
	return &Presenter{
		window:  window,
		entries: make(map[compositor.LayerID]*entry),
	}, nil
}

// LayerCommitted implements compositor.CommitObserver.
func (p *Presenter) LayerCommitted(l *compositor.Layer) {
	if p.closed || l == nil || !l.HasOffscreen() {
		return
	}
	e := p.entries[l.ID()]
	if e == nil {
		e = &entry{layer: l}
		p.entries[l.ID()] = e
	}
	if h := l.Offscreen(); h != e.handle {
		e.handle = h
		e.full = true
	}
	e.stale = true
	p.window.RequestRedraw()
}

// SetRoot sets the layer drawn first. Its descendants are drawn after it in
// z-index order. Without a root, layers are drawn in creation order at
// their own positions.
func (p *Presenter) SetRoot(l *compositor.Layer) { p.root = l }

// Textures returns the number of layer textures held.
func (p *Presenter) Textures() int {
	n := 0
	for _, e := range p.entries {
		if e.tex != nil {
			n++
		}
	}
	return n
}

// Texture returns the texture presenting l, or nil.
func (p *Presenter) Texture(l *compositor.Layer) gpucontext.Texture {
	if l == nil {
		return nil
	}
	if e := p.entries[l.ID()]; e != nil {
		return e.tex
	}
	return nil
}

// Close destroys all textures. Further calls to RenderTo fail with
// ErrPresenterClosed. Close is idempotent.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	for id, e := range p.entries {
		destroyTexture(e.tex)
		delete(p.entries, id)
	}
	p.root = nil
	p.closed = true
}

// prune drops the textures of layers that were destroyed or lost their
// backing store.
func (p *Presenter) prune() {
	for id, e := range p.entries {
		if e.layer.Destroyed() || !e.layer.HasOffscreen() {
			destroyTexture(e.tex)
			delete(p.entries, id)
		}
	}
}

// sorted returns the entries in layer ID order.
func (p *Presenter) sorted() []*entry {
	out := make([]*entry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *entry) int { return cmp.Compare(a.layer.ID(), b.layer.ID()) })
	return out
}

func destroyTexture(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

func snapshotOf(l *compositor.Layer) *image.RGBA {
	s, ok := l.Offscreen().(surface.Snapshotter)
	if !ok {
		return nil
	}
	return s.Snapshot()
}

// dirtyRegion returns the pixel bounds of the layer's dirty rects, clipped
// to the texture.
func dirtyRegion(l *compositor.Layer, bounds image.Rectangle) image.Rectangle {
	var u geom.Rect
	for _, r := range l.DirtyRects() {
		u = u.Union(r)
	}
	if u.IsEmpty() {
		return image.Rectangle{}
	}
	return u.Scale(l.OpticalZoom()).EnclosingIntRect().Image().Intersect(bounds)
}

// packed returns the pixels of r as densely packed RGBA rows.
func packed(img *image.RGBA, r image.Rectangle) []byte {
	row := r.Dx() * 4
	if r == img.Rect && img.Stride == row {
		return img.Pix
	}
	out := make([]byte, 0, row*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		out = append(out, img.Pix[off:off+row]...)
	}
	return out
}
