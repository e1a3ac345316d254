// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/gogpu/compositor/internal/logging"
)

// BackendFactory builds a backend for already normalized options.
type BackendFactory func(opts Options) (Backend, error)

// RegistryEntry describes one selectable backend.
type RegistryEntry struct {
	// Name selects the entry in NewBackendByName and in configuration files.
	Name string

	// Priority orders automatic selection; the highest available entry is
	// tried first. The CPU image backend uses 10 and backend/native 100.
	Priority int

	// Factory builds the backend.
	Factory BackendFactory

	// Available probes whether Factory can succeed at all, for example
	// whether a GPU device has been installed.
	Available func() bool
}

// Registry picks the backend that holds layer backing stores.
//
// Entries are kept ordered by descending priority, then name. Automatic
// selection walks that order, skips entries whose probe fails, and falls
// through to the next entry when a factory returns an error, so a missing
// GPU degrades to the CPU backend instead of failing the compositor.
//
// The zero value is an empty registry ready for use.
type Registry struct {
	mu      sync.RWMutex
	entries []RegistryEntry
}

// NewRegistry returns an empty registry. The package-level functions use a
// shared registry that already holds the "image" backend.
func NewRegistry() *Registry { return &Registry{} }

var defaultRegistry = NewRegistry()

// Register adds or replaces an entry of the shared registry.
func Register(name string, priority int, factory BackendFactory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes an entry from the shared registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// List returns the names in the shared registry in selection order.
func List() []string { return defaultRegistry.List() }

// Available returns the names in the shared registry whose probe succeeds.
func Available() []string { return defaultRegistry.Available() }

// Get returns a copy of a shared registry entry.
func Get(name string) (*RegistryEntry, bool) { return defaultRegistry.Get(name) }

// NewBackend selects a backend from the shared registry.
func NewBackend(opts Options) (Backend, error) { return defaultRegistry.NewBackend(opts) }

// NewBackendByName builds the named backend from the shared registry.
func NewBackendByName(name string, opts Options) (Backend, error) {
	return defaultRegistry.NewBackendByName(name, opts)
}

// Register adds an entry, replacing any entry of the same name. A nil
// probe means the backend is always available.
func (r *Registry) Register(name string, priority int, factory BackendFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	e := RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = slices.DeleteFunc(r.entries, func(x RegistryEntry) bool { return x.Name == name })
	i, _ := slices.BinarySearchFunc(r.entries, e, compareEntries)
	r.entries = slices.Insert(r.entries, i, e)
}

// compareEntries orders entries by descending priority, then by name.
func compareEntries(a, b RegistryEntry) int {
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Unregister removes the named entry, if any.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = slices.DeleteFunc(r.entries, func(x RegistryEntry) bool { return x.Name == name })
}

// List returns every entry name in selection order.
func (r *Registry) List() []string { return r.names(false) }

// Available returns, in selection order, the names whose probe succeeds.
func (r *Registry) Available() []string { return r.names(true) }

func (r *Registry) names(onlyAvailable bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return &e, true
}

func (r *Registry) lookup(name string) (RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := slices.IndexFunc(r.entries, func(x RegistryEntry) bool { return x.Name == name })
	if i < 0 {
		return RegistryEntry{}, false
	}
	return r.entries[i], true
}

// NewBackend builds the highest-priority available backend. When a factory
// fails the next candidate is tried; the last factory error is returned if
// none succeeds.
func (r *Registry) NewBackend(opts Options) (Backend, error) {
	candidates := r.Available()
	if len(candidates) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var err error
	for _, name := range candidates {
		var b Backend
		if b, err = r.NewBackendByName(name, opts); err == nil {
			logging.Logger().Info("surface: backend selected", "name", name)
			return b, nil
		}
		logging.Logger().Warn("surface: backend failed, trying next", "name", name, "err", err)
	}
	return nil, err
}

// NewBackendByName builds the named backend with normalized options.
func (r *Registry) NewBackendByName(name string, opts Options) (Backend, error) {
	e, ok := r.lookup(name)
	switch {
	case !ok:
		return nil, &BackendNotFoundError{Name: name}
	case !e.Available():
		return nil, &BackendUnavailableError{Name: name}
	}
	return e.Factory(opts.Normalized())
}

// ErrNoBackendAvailable is returned by NewBackend when no entry passes its
// availability probe.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError reports a name with no registry entry.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string { return "surface: backend not found: " + e.Name }

// BackendUnavailableError reports an entry whose availability probe failed.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string { return "surface: backend unavailable: " + e.Name }

func init() {
	Register("image", 10, func(opts Options) (Backend, error) {
		return NewImageBackend(opts), nil
	}, nil)
}
