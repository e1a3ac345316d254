// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

// DisposeAllButDescendantsOf releases the backing store of every layer that
// is neither root nor reachable from root through the host's children.
// Layer records themselves are kept. It returns the number of backing stores
// released.
//
// A nil root releases every backing store. Host nodes without a layer are
// walked through, so layers below them are kept too.
func (c *Compositor) DisposeAllButDescendantsOf(root *Layer) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.layers) == 0 {
		return 0
	}

	if root != nil {
		c.markLocked(root.node)
	}

	disposed, kept := 0, 0
	for _, l := range c.layers {
		if !l.marked {
			if l.handle != nil {
				disposed++
			}
			l.DisposeOffscreen()
		} else if l.handle != nil {
			kept++
		}
		l.marked = false
	}

	Logger().Debug("compositor: swept backing stores",
		"layers", len(c.layers), "disposed", disposed, "kept", kept)
	return disposed
}

func (c *Compositor) markLocked(n Node) {
	if l := c.lookupLocked(n); l != nil {
		if l.marked {
			return
		}
		l.marked = true
	}
	for _, child := range n.Children() {
		c.markLocked(child)
	}
}

// Marked reports whether the layer is marked by a sweep in progress. Outside
// DisposeAllButDescendantsOf it is always false.
func (l *Layer) Marked() bool { return l.marked }
