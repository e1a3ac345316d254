package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoDevice is returned when no device provider has been installed.
	ErrNoDevice = errors.New("native: no GPU device")

	// ErrNotHAL is returned when a device provider does not expose a
	// gogpu/wgpu HAL device and queue.
	ErrNotHAL = errors.New("native: device provider is not HAL-backed")

	// ErrUnsupportedFormat is returned for surface formats the backend
	// cannot upload to.
	ErrUnsupportedFormat = errors.New("native: unsupported surface format")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("native: texture has been destroyed")
)
