package compositor

import (
	"fmt"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
)

// AllocReason tags what a failed allocation was for.
type AllocReason int

// Allocation reasons.
const (
	// AllocLayer is a layer backing store: creation, resize or zoom change.
	AllocLayer AllocReason = iota + 1
)

func (r AllocReason) String() string {
	switch r {
	case AllocLayer:
		return "layer"
	default:
		return fmt.Sprintf("AllocReason(%d)", int(r))
	}
}

// MemoryPressureHandler is told how many bytes an allocation that just
// failed would have needed. Hosts typically react by purging caches.
type MemoryPressureHandler func(bytes int64, reason AllocReason)

// backingStoreBytes estimates the size of a backing store of size s
// rasterized at zoom.
func backingStoreBytes(s geom.IntSize, zoom float32) int64 {
	return int64(float64(s.Width*s.Height*surface.BytesPerPixel) * float64(zoom))
}
