// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/compositor/surface"
)

// LayerID identifies a Layer within its Compositor. IDs are never reused.
type LayerID uint64

// CommitObserver is notified after a flush commits a layer's compositing
// changes.
type CommitObserver interface {
	LayerCommitted(l *Layer)
}

// CommitObserverFunc adapts a function to CommitObserver.
type CommitObserverFunc func(l *Layer)

// LayerCommitted calls f.
func (f CommitObserverFunc) LayerCommitted(l *Layer) { f(l) }

// Compositor owns the layer records of one host layer tree and the surface
// backend their backing stores live in.
//
// Layers are kept in an index table keyed by LayerID, with a second index
// from host Node to LayerID. Lookups and registration are guarded by a
// mutex; everything else is meant to run on a single compositor goroutine.
type Compositor struct {
	mu     sync.RWMutex
	layers map[LayerID]*Layer
	byNode map[Node]LayerID
	nextID LayerID

	backend    surface.Backend
	zoom       float32
	onPressure MemoryPressureHandler
	observers  []CommitObserver

	flushGen uint64
}

// New creates a Compositor.
//
// Without WithBackend the backend comes from the surface registry: the entry
// named by WithBackendName, or else the best available one.
func New(opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := o.backend
	if b == nil {
		var err error
		if o.backendName != "" {
			b, err = surface.NewBackendByName(o.backendName, o.surfaceOptions)
		} else {
			b, err = surface.NewBackend(o.surfaceOptions)
		}
		if err != nil {
			return nil, fmt.Errorf("compositor: select backend: %w", err)
		}
	}
	if o.zoom < 0 {
		return nil, fmt.Errorf("compositor: optical zoom %g is negative", o.zoom)
	}

	return &Compositor{
		layers:     make(map[LayerID]*Layer),
		byNode:     make(map[Node]LayerID),
		backend:    b,
		zoom:       o.zoom,
		onPressure: o.onPressure,
		observers:  o.observers,
	}, nil
}

// Backend returns the surface backend.
func (c *Compositor) Backend() surface.Backend { return c.backend }

// NewLayer registers a layer record for node and returns it. Registering a
// node twice returns the existing record.
func (c *Compositor) NewLayer(node Node) *Layer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.byNode[node]; ok {
		return c.layers[id]
	}
	c.nextID++
	l := &Layer{
		c:    c,
		id:   c.nextID,
		node: node,
		zoom: c.zoom,
	}
	c.layers[l.id] = l
	c.byNode[node] = l.id
	return l
}

// LayerFor returns the layer registered for node, or nil.
func (c *Compositor) LayerFor(node Node) *Layer {
	if node == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookupLocked(node)
}

// Layer returns the layer with the given ID, or nil.
func (c *Compositor) Layer(id LayerID) *Layer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers[id]
}

// Len returns the number of registered layers.
func (c *Compositor) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.layers)
}

// Layers returns all registered layers ordered by ID.
func (c *Compositor) Layers() []*Layer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedLocked()
}

// Close releases every backing store. Layer records stay registered.
func (c *Compositor) Close() {
	c.DisposeAllButDescendantsOf(nil)
}

func (c *Compositor) lookupLocked(node Node) *Layer {
	id, ok := c.byNode[node]
	if !ok {
		return nil
	}
	return c.layers[id]
}

func (c *Compositor) sortedLocked() []*Layer {
	out := make([]*Layer, 0, len(c.layers))
	for _, l := range c.layers {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b *Layer) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return 0
		}
	})
	return out
}

func (c *Compositor) unregister(l *Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.layers, l.id)
	if id, ok := c.byNode[l.node]; ok && id == l.id {
		delete(c.byNode, l.node)
	}
}

func (c *Compositor) reportAllocFailure(bytes int64, reason AllocReason) {
	if c.onPressure != nil {
		c.onPressure(bytes, reason)
	}
}
