// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func imageFactory(opts Options) (Backend, error) {
	return NewImageBackend(opts), nil
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, imageFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, imageFactory, nil)
	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests priority ordering.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, imageFactory, nil)
	r.Register("high", 100, imageFactory, nil)
	r.Register("mid", 50, imageFactory, nil)
	r.Register("also-mid", 50, imageFactory, nil)

	list := r.List()
	want := []string{"high", "also-mid", "mid", "low"}
	if len(list) != len(want) {
		t.Fatalf("List() = %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, list[i], want[i])
		}
	}
}

// TestRegistryReplace tests that registering a name again moves the entry.
func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 10, imageFactory, nil)
	r.Register("b", 50, imageFactory, nil)
	r.Register("a", 100, imageFactory, nil)

	list := r.List()
	if len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("List() = %v, want [a b]", list)
	}
	if e, _ := r.Get("a"); e.Priority != 100 {
		t.Errorf("Priority = %d, want 100", e.Priority)
	}
}

// TestRegistryAvailable tests filtering by availability.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()
	r.Register("available", 100, imageFactory, func() bool { return true })
	r.Register("unavailable", 200, imageFactory, func() bool { return false })

	available := r.Available()
	if len(available) != 1 || available[0] != "available" {
		t.Errorf("Available() = %v, want [available]", available)
	}
}

// TestRegistryNewBackendByNameErrors tests lookup failures.
func TestRegistryNewBackendByNameErrors(t *testing.T) {
	r := NewRegistry()
	r.Register("unavailable", 50, imageFactory, func() bool { return false })

	_, err := r.NewBackendByName("nonexistent", Options{})
	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected BackendNotFoundError, got %T", err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("error name = %s, want nonexistent", notFound.Name)
	}

	_, err = r.NewBackendByName("unavailable", Options{})
	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected BackendUnavailableError, got %T", err)
	}
}

// TestRegistryNoBackend tests error when no backends available.
func TestRegistryNoBackend(t *testing.T) {
	_, err := NewRegistry().NewBackend(Options{})
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("expected ErrNoBackendAvailable, got %v", err)
	}
}

// TestRegistryFallsBackOnFactoryError tests that a failing factory is skipped.
func TestRegistryFallsBackOnFactoryError(t *testing.T) {
	r := NewRegistry()
	factoryErr := errors.New("creation failed")
	r.Register("failing", 100, func(Options) (Backend, error) {
		return nil, factoryErr
	}, nil)

	if _, err := r.NewBackendByName("failing", Options{}); !errors.Is(err, factoryErr) {
		t.Errorf("expected factory error, got %v", err)
	}

	r.Register("image", 10, imageFactory, nil)
	b, err := r.NewBackend(Options{})
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	if _, ok := b.(*ImageBackend); !ok {
		t.Errorf("NewBackend() = %T, want *ImageBackend", b)
	}
}

// TestRegistryPassesNormalizedOptions tests that factories see defaults.
func TestRegistryPassesNormalizedOptions(t *testing.T) {
	r := NewRegistry()
	var got Options
	r.Register("probe", 10, func(opts Options) (Backend, error) {
		got = opts
		return NewImageBackend(opts), nil
	}, nil)

	if _, err := r.NewBackend(Options{}); err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	if got.MaxDimension != DefaultMaxDimension {
		t.Errorf("MaxDimension = %d, want %d", got.MaxDimension, DefaultMaxDimension)
	}
}

// TestGlobalRegistry tests the built-in image backend.
func TestGlobalRegistry(t *testing.T) {
	if _, ok := Get("image"); !ok {
		t.Fatal("'image' backend should be in global registry")
	}

	b, err := NewBackendByName("image", Options{})
	if err != nil {
		t.Fatalf("NewBackendByName failed: %v", err)
	}
	if _, ok := b.(*ImageBackend); !ok {
		t.Errorf("got %T, want *ImageBackend", b)
	}
}

// TestBackendErrorMessages tests error message formatting.
func TestBackendErrorMessages(t *testing.T) {
	if msg := (&BackendNotFoundError{Name: "vulkan"}).Error(); msg != "surface: backend not found: vulkan" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
	if msg := (&BackendUnavailableError{Name: "metal"}).Error(); msg != "surface: backend unavailable: metal" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}
