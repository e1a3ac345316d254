// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import "github.com/gogpu/compositor/geom"

// FlushCompositingState pushes the compositing state of the layer's subtree.
//
// For every registered layer, in post-order, it:
//
//  1. calls the node's FlushLayerOnly hook (LayerFlusher), before descending
//  2. flushes the children in host order
//  3. recomputes position constraints (UpdatePosition)
//  4. notifies the node (CommitNotifier) and every CommitObserver
//
// A layer reachable twice is visited once. Host nodes without a layer are
// walked through but otherwise ignored.
func (l *Layer) FlushCompositingState(clip geom.Rect) {
	l.c.flushGen++
	l.c.flushNode(l.node, clip, l.c.flushGen)
}

func (c *Compositor) flushNode(n Node, clip geom.Rect, gen uint64) {
	l := c.LayerFor(n)
	if l != nil {
		if l.flushGen == gen {
			return
		}
		l.flushGen = gen
		if f, ok := n.(LayerFlusher); ok {
			f.FlushLayerOnly(clip)
		}
	}

	for _, child := range n.Children() {
		c.flushNode(child, clip, gen)
	}

	if l == nil {
		return
	}
	l.UpdatePosition()
	if cn, ok := n.(CommitNotifier); ok {
		cn.DidCommitChanges()
	}
	for _, o := range c.observers {
		o.LayerCommitted(l)
	}
}
