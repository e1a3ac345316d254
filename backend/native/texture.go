package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// texture is a HAL texture backing one surface.
//
// The default view is created lazily on first use, as hosts that only read
// surfaces back through Snapshot never need one. Destroy is idempotent.
type texture struct {
	mu sync.RWMutex

	raw    hal.Texture
	device hal.Device
	width  uint32
	height uint32
	format gputypes.TextureFormat

	viewOnce sync.Once
	view     hal.TextureView
	viewErr  error

	destroyed bool
}

// textureUsage lets a surface be uploaded, sampled by the host compositor,
// and read back.
const textureUsage = gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageTextureBinding

func createTexture(device hal.Device, label string, w, h uint32, format gputypes.TextureFormat) (*texture, error) {
	raw, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         textureUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create %dx%d texture: %w", w, h, err)
	}
	return &texture{raw: raw, device: device, width: w, height: h, format: format}, nil
}

// Raw returns the HAL texture, or nil once destroyed.
func (t *texture) Raw() hal.Texture {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.destroyed {
		return nil
	}
	return t.raw
}

// DefaultView returns the full-texture view, creating it on first call.
func (t *texture) DefaultView() (hal.TextureView, error) {
	t.mu.RLock()
	if t.destroyed {
		t.mu.RUnlock()
		return nil, ErrTextureDestroyed
	}
	t.mu.RUnlock()

	t.viewOnce.Do(func() {
		t.view, t.viewErr = t.device.CreateTextureView(t.raw, &hal.TextureViewDescriptor{
			Label:     "compositor surface (default view)",
			Format:    gputypes.TextureFormatUndefined,
			Dimension: gputypes.TextureViewDimensionUndefined,
			Aspect:    gputypes.TextureAspectAll,
		})
	})
	if t.viewErr != nil {
		return nil, fmt.Errorf("native: default view: %w", t.viewErr)
	}
	return t.view, nil
}

// upload writes tightly packed pixels covering the whole texture.
func (t *texture) upload(queue hal.Queue, pix []byte) error {
	raw := t.Raw()
	if raw == nil {
		return ErrTextureDestroyed
	}
	return queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: raw, Aspect: gputypes.TextureAspectAll},
		pix,
		&hal.ImageDataLayout{BytesPerRow: t.width * 4, RowsPerImage: t.height},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
}

// Destroy releases the view and the texture.
func (t *texture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	raw, view := t.raw, t.view
	t.raw, t.view = nil, nil
	t.mu.Unlock()

	if view != nil {
		t.device.DestroyTextureView(view)
	}
	if raw != nil {
		t.device.DestroyTexture(raw)
	}
}
