// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layercanvas presents compositor backing stores in a gogpu window.
//
// A Presenter is installed as the compositor's commit observer. Every
// committed layer is scheduled for upload and the window is asked to redraw.
// RenderTo then uploads the scheduled layers through the host's
// gpucontext.TextureCreator, sending only the dirty region when the texture
// supports gpucontext.TextureRegionUpdater, and draws the layer tree back
// to front.
//
// Basic usage:
//
//	p, _ := layercanvas.New(app) // gpucontext.WindowProvider
//	c, _ := compositor.New(compositor.WithCommitObserver(p))
//	p.SetRoot(c.NewLayer(rootNode))
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    root.FlushCompositingState(clip)
//	    _ = p.RenderTo(dc.AsTextureDrawer())
//	})
//
// Backing stores are read back through surface.Snapshotter. Layers whose
// backend cannot be read back are skipped.
//
// Presenter is not safe for concurrent use. Call RenderTo from the
// goroutine that flushes the compositor.
package layercanvas
