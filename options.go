package compositor

import (
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gputypes"
)

// Option configures a Compositor during creation.
//
// Example:
//
//	// CPU surfaces, default settings
//	c, err := compositor.New()
//
//	// GPU surfaces and a memory-pressure hook
//	c, err := compositor.New(
//	    compositor.WithBackendName("native"),
//	    compositor.WithMemoryPressureHandler(purgeCaches),
//	)
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	backend        surface.Backend
	backendName    string
	surfaceOptions surface.Options
	zoom           float32
	onPressure     MemoryPressureHandler
	observers      []CommitObserver
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		zoom: 1,
	}
}

// WithBackend sets the surface backend directly.
// It takes precedence over WithBackendName.
func WithBackend(b surface.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithBackendName selects a backend from the surface registry by name.
// Without it (and without WithBackend) the best available backend is used.
//
// Example:
//
//	import _ "github.com/gogpu/compositor/backend/native"
//
//	c, err := compositor.New(compositor.WithBackendName("native"))
func WithBackendName(name string) Option {
	return func(o *options) {
		o.backendName = name
	}
}

// WithMaxSurfaceDimension caps the pixel width and height of backing stores
// created through the registry.
func WithMaxSurfaceDimension(n int) Option {
	return func(o *options) {
		o.surfaceOptions.MaxDimension = n
	}
}

// WithSurfacePool lets backends created through the registry keep up to
// bytes of released backing stores for reuse.
func WithSurfacePool(bytes int64) Option {
	return func(o *options) {
		o.surfaceOptions.PoolBytes = bytes
	}
}

// WithSurfaceFormat sets the texture format of GPU backing stores created
// through the registry.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.surfaceOptions.Format = f
	}
}

// WithOpticalZoom sets the optical zoom new layers start with. A zoom that
// is not positive leaves the default of 1.
func WithOpticalZoom(zoom float32) Option {
	return func(o *options) {
		if zoom > 0 {
			o.zoom = zoom
		}
	}
}

// WithMemoryPressureHandler installs the callback invoked when a backing
// store cannot be allocated. The handler runs synchronously on the
// compositor thread.
func WithMemoryPressureHandler(h MemoryPressureHandler) Option {
	return func(o *options) {
		o.onPressure = h
	}
}

// WithCommitObserver adds an observer notified after each layer's
// compositing changes are committed by a flush. It may be given several times.
func WithCommitObserver(obs CommitObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithConfig applies the settings of a loaded configuration file.
// Options given after WithConfig override it.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.Backend != "" {
			o.backendName = cfg.Backend
		}
		if cfg.OpticalZoom > 0 {
			o.zoom = cfg.OpticalZoom
		}
		if cfg.MaxSurfaceDimension > 0 {
			o.surfaceOptions.MaxDimension = cfg.MaxSurfaceDimension
		}
		if cfg.SurfacePoolBytes > 0 {
			o.surfaceOptions.PoolBytes = cfg.SurfacePoolBytes
		}
		if f, err := cfg.Format(); err == nil {
			o.surfaceOptions.Format = f
		}
	}
}
