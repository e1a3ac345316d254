// Package cache provides the recycling pool surface backends keep released
// surfaces in.
//
// A Pool holds values under a comparable key (a pixel size, for backing
// stores) and evicts the least recently returned ones once the total cost
// exceeds its budget. Several values may share a key.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// Pool is a cost-bounded LRU pool. It is safe for concurrent use.
//
// Example:
//
//	p := cache.NewPool[image.Point, *image.RGBA](64<<20,
//	    func(img *image.RGBA) int64 { return int64(len(img.Pix)) }, nil)
//	p.Put(img.Rect.Size(), img)
//	img, ok := p.Take(image.Pt(256, 256))
type Pool[K comparable, V any] struct {
	mu       sync.Mutex
	lru      *list.List // of *entry[K, V], most recent first
	byKey    map[K][]*list.Element
	bytes    int64
	maxBytes int64
	cost     func(V) int64
	onEvict  func(V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type entry[K comparable, V any] struct {
	key   K
	value V
	cost  int64
}

// Stats describes pool usage.
type Stats struct {
	Len       int
	Bytes     int64
	MaxBytes  int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// NewPool creates a pool holding at most maxBytes worth of values, as
// measured by cost. onEvict, if not nil, is called for every value the pool
// drops. A pool with maxBytes <= 0 keeps nothing.
func NewPool[K comparable, V any](maxBytes int64, cost func(V) int64, onEvict func(V)) *Pool[K, V] {
	return &Pool[K, V]{
		lru:      list.New(),
		byKey:    make(map[K][]*list.Element),
		maxBytes: maxBytes,
		cost:     cost,
		onEvict:  onEvict,
	}
}

// Take removes and returns the most recently returned value under key.
func (p *Pool[K, V]) Take(key K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elems := p.byKey[key]
	if len(elems) == 0 {
		p.misses.Add(1)
		var zero V
		return zero, false
	}
	e := p.removeLocked(elems[len(elems)-1])
	p.hits.Add(1)
	return e.value, true
}

// Put returns v to the pool under key, evicting the least recently
// returned values until the pool fits its budget again. A value costing
// more than the whole budget is evicted at once.
func (p *Pool[K, V]) Put(key K, v V) {
	c := p.cost(v)

	p.mu.Lock()
	if c > p.maxBytes {
		p.mu.Unlock()
		p.evict(v)
		return
	}
	p.byKey[key] = append(p.byKey[key], p.lru.PushFront(&entry[K, V]{key: key, value: v, cost: c}))
	p.bytes += c

	var dropped []V
	for p.bytes > p.maxBytes {
		dropped = append(dropped, p.removeLocked(p.lru.Back()).value)
	}
	p.mu.Unlock()

	for _, d := range dropped {
		p.evict(d)
	}
}

// Clear evicts every value.
func (p *Pool[K, V]) Clear() {
	p.mu.Lock()
	var dropped []V
	for el := p.lru.Back(); el != nil; el = p.lru.Back() {
		dropped = append(dropped, p.removeLocked(el).value)
	}
	p.mu.Unlock()

	for _, d := range dropped {
		p.evict(d)
	}
}

// Len returns the number of pooled values.
func (p *Pool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lru.Len()
}

// Bytes returns the total cost of pooled values.
func (p *Pool[K, V]) Bytes() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bytes
}

// Stats returns current pool statistics.
func (p *Pool[K, V]) Stats() Stats {
	p.mu.Lock()
	n, bytes := p.lru.Len(), p.bytes
	p.mu.Unlock()

	hits, misses := p.hits.Load(), p.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       n,
		Bytes:     bytes,
		MaxBytes:  p.maxBytes,
		Hits:      hits,
		Misses:    misses,
		Evictions: p.evictions.Load(),
		HitRate:   rate,
	}
}

func (p *Pool[K, V]) removeLocked(el *list.Element) *entry[K, V] {
	e := p.lru.Remove(el).(*entry[K, V])
	elems := p.byKey[e.key]
	for i, x := range elems {
		if x == el {
			elems = append(elems[:i], elems[i+1:]...)
			break
		}
	}
	if len(elems) == 0 {
		delete(p.byKey, e.key)
	} else {
		p.byKey[e.key] = elems
	}
	p.bytes -= e.cost
	return e
}

func (p *Pool[K, V]) evict(v V) {
	p.evictions.Add(1)
	if p.onEvict != nil {
		p.onEvict(v)
	}
}
