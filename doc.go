// Package compositor manages per-layer backing stores for a retained
// layer tree.
//
// # Overview
//
// A host (a browser engine, a UI toolkit) owns a tree of compositable
// layers. For each of them the compositor keeps a Layer record that:
//
//   - owns an optional offscreen backing store, created lazily and resized
//     or rescaled in place
//   - tracks the stale sub-rectangles of that store
//   - resolves CSS fixed and sticky position constraints so the host can
//     scroll the layer without a relayout
//
// The Compositor itself is the index of all layer records. It offers a
// mark-and-sweep pass that releases the backing stores of layers that
// dropped out of the visible tree without destroying the records.
//
// # Quick Start
//
//	c, err := compositor.New()
//	if err != nil {
//	    return err
//	}
//	l := c.NewLayer(node)
//
//	if l.EnsureOffscreen(256, 256) {
//	    l.AddDirtyRect(geom.RectXYWH(0, 0, 16, 16))
//	    l.Paint(l.DirtyRectAt(0))
//	    l.ResetDirtyRects()
//	}
//
//	root.FlushCompositingState(viewport)
//	c.DisposeAllButDescendantsOf(root)
//
// # Surfaces
//
// Backing stores live in a surface.Backend. The CPU backend ("image") is
// always available; importing backend/native adds GPU textures through the
// wgpu HAL. Backends are chosen with WithBackend, WithBackendName, or a
// configuration file loaded with LoadConfig.
//
// # Failures
//
// Layer operations never return errors. Allocation failures leave the layer
// without a backing store and are reported through the handler installed
// with WithMemoryPressureHandler; invalid paint requests are ignored.
//
// # Threading
//
// Layer operations are meant to run on one compositor goroutine. Layer
// registration and lookup are guarded by a mutex and may be called from
// other goroutines.
//
// # Logging
//
// The compositor is silent by default. See SetLogger.
package compositor
