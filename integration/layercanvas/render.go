// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layercanvas

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when RenderTo is given a nil drawer.
	ErrInvalidDrawContext = errors.New("layercanvas: dc must implement gpucontext.TextureDrawer")

	// ErrInvalidRenderer is returned when the drawer has no texture creator.
	ErrInvalidRenderer = errors.New("layercanvas: renderer must implement gpucontext.TextureCreator")
)

// RenderTo uploads the layers committed since the last call and draws the
// layer tree to dc. Layer positions are in logical points and are scaled
// by the window's ScaleFactor.
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    presenter.RenderTo(dc.AsTextureDrawer())
//	})
func (p *Presenter) RenderTo(dc gpucontext.TextureDrawer) error {
	if p.closed {
		return ErrPresenterClosed
	}
	if dc == nil {
		return ErrInvalidDrawContext
	}
	p.prune()
	for _, e := range p.sorted() {
		if !e.stale {
			continue
		}
		if err := p.upload(dc, e); err != nil {
			return err
		}
	}

	scale := float32(p.window.ScaleFactor())
	if p.root == nil {
		for _, e := range p.sorted() {
			if err := draw(dc, e, e.layer.Position(), scale); err != nil {
				return err
			}
		}
		return nil
	}
	return p.drawTree(dc, p.root, geom.Point{}, scale)
}

func (p *Presenter) drawTree(dc gpucontext.TextureDrawer, l *compositor.Layer, origin geom.Point, scale float32) error {
	at := origin.Add(l.Position())
	if e := p.entries[l.ID()]; e != nil {
		if err := draw(dc, e, at, scale); err != nil {
			return err
		}
	}
	children := l.Children()
	slices.SortStableFunc(children, func(a, b *compositor.Layer) int {
		return cmp.Compare(a.ZIndex(), b.ZIndex())
	})
	for _, child := range children {
		if err := p.drawTree(dc, child, at, scale); err != nil {
			return err
		}
	}
	return nil
}

func draw(dc gpucontext.TextureDrawer, e *entry, at geom.Point, scale float32) error {
	if e.tex == nil {
		return nil
	}
	if err := dc.DrawTexture(e.tex, at.X*scale, at.Y*scale); err != nil {
		return fmt.Errorf("layercanvas: draw layer %d: %w", e.layer.ID(), err)
	}
	return nil
}

// upload brings the texture of e up to date with its backing store and
// tells the layer it has been displayed.
func (p *Presenter) upload(dc gpucontext.TextureDrawer, e *entry) error {
	img := snapshotOf(e.layer)
	if img == nil {
		e.stale = false
		return nil
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()

	if e.tex == nil || e.width != w || e.height != h || !updatable(e.tex) {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(w, h, packed(img, img.Rect))
		if err != nil {
			return fmt.Errorf("layercanvas: NewTextureFromRGBA failed: %w", err)
		}
		// image.RGBA is premultiplied.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		// The old texture is destroyed only after its replacement exists.
		destroyTexture(e.tex)
		e.tex, e.width, e.height = tex, w, h
		logging.Logger().Debug("layercanvas: texture created", "layer", e.layer.ID(), "w", w, "h", h)
	} else {
		r := img.Rect
		if !e.full {
			r = dirtyRegion(e.layer, img.Rect)
		}
		if !r.Empty() {
			if err := updateRegion(e.tex, img, r); err != nil {
				return fmt.Errorf("layercanvas: update layer %d: %w", e.layer.ID(), err)
			}
		}
	}

	e.stale, e.full = false, false
	e.layer.DidDisplay()
	return nil
}

func updatable(tex gpucontext.Texture) bool {
	switch tex.(type) {
	case gpucontext.TextureRegionUpdater, gpucontext.TextureUpdater:
		return true
	}
	return false
}

// updateRegion uploads r, falling back to a whole-texture update when the
// texture cannot take sub-rectangles.
func updateRegion(tex gpucontext.Texture, img *image.RGBA, r image.Rectangle) error {
	if ru, ok := tex.(gpucontext.TextureRegionUpdater); ok {
		return ru.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), packed(img, r))
	}
	return tex.(gpucontext.TextureUpdater).UpdateData(packed(img, img.Rect))
}
