// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// Kind identifies what a platform surface is used for.
type Kind int

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota

	// KindOffscreen is a compositing backing store the compositor paints into.
	KindOffscreen

	// KindCanvas3D is a surface presented by a 3D canvas.
	KindCanvas3D

	// KindVideo is a surface fed by a media player.
	KindVideo

	// KindPlugin is a surface owned by an embedded plugin.
	KindPlugin
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOffscreen:
		return "offscreen"
	case KindCanvas3D:
		return "canvas3d"
	case KindVideo:
		return "video"
	case KindPlugin:
		return "plugin"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Options configures a Backend created through the Registry.
type Options struct {
	// MaxDimension caps the pixel width and height of any surface.
	// Zero means DefaultMaxDimension.
	MaxDimension int

	// Format is the pixel format of GPU-backed surfaces.
	// Undefined means gputypes.TextureFormatRGBA8Unorm.
	Format gputypes.TextureFormat

	// PoolBytes is how much released surface storage a backend keeps for
	// reuse. Zero disables recycling.
	PoolBytes int64
}

// DefaultMaxDimension is the surface size limit used when Options.MaxDimension is zero.
const DefaultMaxDimension = 8192

// BytesPerPixel is the storage cost of one surface pixel.
const BytesPerPixel = 4

// Normalized returns o with defaults filled in.
func (o Options) Normalized() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Format == gputypes.TextureFormatUndefined {
		o.Format = gputypes.TextureFormatRGBA8Unorm
	}
	return o
}

// Errors returned by backends.
var (
	// ErrInvalidSize is returned for surfaces with a non-positive dimension
	// or a non-positive zoom.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrTooLarge is returned when the pixel size exceeds Options.MaxDimension.
	ErrTooLarge = errors.New("surface: exceeds maximum dimension")

	// ErrReleased is returned when a released handle is used.
	ErrReleased = errors.New("surface: handle released")

	// ErrForeignHandle is returned when a handle from another backend is used.
	ErrForeignHandle = errors.New("surface: handle not owned by backend")
)

// PixelSize returns the pixel dimensions of a surface of logical size size
// rasterized at zoom, rounding up. It fails with ErrInvalidSize for empty
// sizes or a zoom that is not positive, and with ErrTooLarge when either
// dimension exceeds maxDim.
func PixelSize(size geom.IntSize, zoom float32, maxDim int) (image.Point, error) {
	if size.Width <= 0 || size.Height <= 0 || !(zoom > 0) {
		return image.Point{}, fmt.Errorf("%w: %dx%d at zoom %g", ErrInvalidSize, size.Width, size.Height, zoom)
	}
	w := int(math32.Ceil(float32(size.Width) * zoom))
	h := int(math32.Ceil(float32(size.Height) * zoom))
	if w > maxDim || h > maxDim {
		return image.Point{}, fmt.Errorf("%w: %dx%d pixels, limit %d", ErrTooLarge, w, h, maxDim)
	}
	return image.Pt(w, h), nil
}
