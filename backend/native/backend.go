package native

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/compositor/cache"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// Backend is a surface.Backend whose surfaces are GPU textures.
//
// Drawing goes to a CPU staging image (see surface.ImageContext); the
// staging image is uploaded to the texture when the draw context is
// released. Resizing and zooming create a new texture and carry the old
// pixels over, so the host can keep presenting a surface until it is
// repainted.
//
// Backend is not safe for concurrent use; the compositor drives it from a
// single goroutine.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	opts   surface.Options

	live    int
	bytes   int64
	uploads int
	pool    *cache.Pool[image.Point, *texture]

	shaderOnce sync.Once
	shader     hal.ShaderModule
	shaderErr  error
}

// Surface is the surface.Handle type of Backend.
type Surface struct {
	owner   *Backend
	kind    surface.Kind
	size    geom.IntSize
	zoom    float32
	tex     *texture
	staging *image.RGBA
}

// Kind implements surface.Handle.
func (s *Surface) Kind() surface.Kind { return s.kind }

// Size implements surface.Handle.
func (s *Surface) Size() geom.IntSize { return s.size }

// Zoom implements surface.Handle.
func (s *Surface) Zoom() float32 { return s.zoom }

// Released reports whether the surface has been released.
func (s *Surface) Released() bool { return s.tex == nil }

// Texture returns the GPU texture, or nil once released. The texture is
// replaced by resize and zoom changes.
func (s *Surface) Texture() hal.Texture {
	if s.tex == nil {
		return nil
	}
	return s.tex.Raw()
}

// View returns the default view of the GPU texture, for binding it in the
// host's composite pass.
func (s *Surface) View() (hal.TextureView, error) {
	if s.tex == nil {
		return nil, surface.ErrReleased
	}
	return s.tex.DefaultView()
}

// PixelSize returns the texture dimensions.
func (s *Surface) PixelSize() image.Point {
	if s.staging == nil {
		return image.Point{}
	}
	return s.staging.Bounds().Size()
}

// Snapshot implements surface.Snapshotter. It returns the last uploaded
// pixels, or nil once released.
func (s *Surface) Snapshot() *image.RGBA {
	if s.staging == nil {
		return nil
	}
	out := image.NewRGBA(s.staging.Bounds())
	copy(out.Pix, s.staging.Pix)
	return out
}

// NewBackend creates a backend on an opened HAL device.
func NewBackend(device hal.Device, queue hal.Queue, opts surface.Options) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	opts = opts.Normalized()
	if !supportedFormat(opts.Format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, opts.Format)
	}
	pool := cache.NewPool[image.Point, *texture](opts.PoolBytes,
		func(t *texture) int64 { return int64(t.width) * int64(t.height) * surface.BytesPerPixel },
		(*texture).Destroy)
	return &Backend{device: device, queue: queue, opts: opts, pool: pool}, nil
}

// NewFromProvider creates a backend on the device of a gpucontext host
// (a gogpu window, for example). The provider's surface format is used
// when opts leaves the format unset and the backend can upload to it.
func NewFromProvider(p gpucontext.DeviceProvider, opts surface.Options) (*Backend, error) {
	if p == nil {
		return nil, ErrNoDevice
	}
	device, ok := p.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: device is %T", ErrNotHAL, p.Device())
	}
	queue, ok := p.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: queue is %T", ErrNotHAL, p.Queue())
	}
	if opts.Format == gputypes.TextureFormatUndefined && supportedFormat(p.SurfaceFormat()) {
		opts.Format = p.SurfaceFormat()
	}
	info := p.AdapterInfo()
	logging.Logger().Info("native: using GPU adapter", "name", info.Name, "type", info.Type)
	return NewBackend(device, queue, opts)
}

func supportedFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8Unorm || f == gputypes.TextureFormatBGRA8Unorm
}

// Format returns the texture format of new surfaces.
func (b *Backend) Format() gputypes.TextureFormat { return b.opts.Format }

// LiveSurfaces returns the number of surfaces not yet released.
func (b *Backend) LiveSurfaces() int { return b.live }

// Bytes returns the texture memory held by live surfaces.
func (b *Backend) Bytes() int64 { return b.bytes }

// Uploads returns the number of texture uploads performed.
func (b *Backend) Uploads() int { return b.uploads }

// PoolStats reports on the textures kept for reuse.
func (b *Backend) PoolStats() cache.Stats { return b.pool.Stats() }

// Purge destroys every texture kept for reuse.
func (b *Backend) Purge() { b.pool.Clear() }

// CompositeShader returns the shader module hosts use to draw layer
// textures (see CompositeShaderSource). It is compiled on first call.
func (b *Backend) CompositeShader() (hal.ShaderModule, error) {
	b.shaderOnce.Do(func() {
		spirv, err := compileSPIRV(compositeShaderWGSL)
		if err != nil {
			b.shaderErr = err
			return
		}
		b.shader, b.shaderErr = createShaderModule(b.device, "compositor layer composite", spirv)
	})
	return b.shader, b.shaderErr
}

// Destroy releases the backend's own GPU resources. Surfaces must be
// deleted first.
func (b *Backend) Destroy() {
	b.pool.Clear()
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
	if b.live > 0 {
		logging.Logger().Warn("native: backend destroyed with live surfaces", "live", b.live)
	}
}

// CreateSurface implements surface.Backend.
func (b *Backend) CreateSurface(kind surface.Kind, size geom.IntSize, zoom float32) (surface.Handle, error) {
	px, err := surface.PixelSize(size, zoom, b.opts.MaxDimension)
	if err != nil {
		return nil, err
	}
	tex, err := b.texture(kind, px)
	if err != nil {
		return nil, err
	}
	s := &Surface{owner: b, kind: kind, size: size, zoom: zoom}
	b.attach(s, tex, image.NewRGBA(image.Rectangle{Max: px}))
	if err := b.upload(s); err != nil {
		b.release(s)
		return nil, err
	}
	logging.Logger().Debug("native: surface created", "kind", kind, "w", px.X, "h", px.Y)
	return s, nil
}

// ResizeSurface implements surface.Backend. The overlapping pixels are kept.
func (b *Backend) ResizeSurface(h surface.Handle, size geom.IntSize) error {
	s, err := b.own(h)
	if err != nil {
		return err
	}
	return b.replace(s, size, s.zoom, func(dst, src *image.RGBA) {
		draw.Copy(dst, image.Point{}, src, src.Bounds(), draw.Src, nil)
	})
}

// SetZoom implements surface.Backend. The existing pixels are resampled.
func (b *Backend) SetZoom(h surface.Handle, zoom float32) error {
	s, err := b.own(h)
	if err != nil {
		return err
	}
	return b.replace(s, s.size, zoom, func(dst, src *image.RGBA) {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	})
}

// replace moves s to a new texture of the given logical size and zoom.
// On failure s is released.
func (b *Backend) replace(s *Surface, size geom.IntSize, zoom float32, carry func(dst, src *image.RGBA)) error {
	px, err := surface.PixelSize(size, zoom, b.opts.MaxDimension)
	if err != nil {
		b.release(s)
		return err
	}
	tex, err := b.texture(s.kind, px)
	if err != nil {
		b.release(s)
		return err
	}
	staging := image.NewRGBA(image.Rectangle{Max: px})
	carry(staging, s.staging)
	b.release(s)
	b.attach(s, tex, staging)
	s.size, s.zoom = size, zoom
	if err := b.upload(s); err != nil {
		b.release(s)
		return err
	}
	return nil
}

// DeleteSurface implements surface.Backend.
func (b *Backend) DeleteSurface(h surface.Handle) {
	s, err := b.own(h)
	if err != nil {
		return
	}
	b.release(s)
	logging.Logger().Debug("native: surface deleted", "kind", s.kind)
}

// DrawContext implements surface.Backend.
func (b *Backend) DrawContext(h surface.Handle) (surface.DrawContext, error) {
	s, err := b.own(h)
	if err != nil {
		return nil, err
	}
	dc := surface.NewImageContext(s.staging)
	dc.SetOpticalZoom(s.zoom)
	return dc, nil
}

// ReleaseDrawContext implements surface.Backend. It uploads the staging
// image to the texture.
func (b *Backend) ReleaseDrawContext(h surface.Handle, dc surface.DrawContext) {
	if c, ok := dc.(*surface.ImageContext); ok {
		c.Flush()
	}
	s, err := b.own(h)
	if err != nil {
		return
	}
	if err := b.upload(s); err != nil {
		logging.Logger().Warn("native: surface upload failed", "kind", s.kind, "err", err)
	}
}

// texture returns a texture of px pixels, recycled when possible.
func (b *Backend) texture(kind surface.Kind, px image.Point) (*texture, error) {
	if tex, ok := b.pool.Take(px); ok {
		return tex, nil
	}
	return createTexture(b.device, kind.String(), uint32(px.X), uint32(px.Y), b.opts.Format)
}

func (b *Backend) own(h surface.Handle) (*Surface, error) {
	s, ok := h.(*Surface)
	if !ok || s == nil || s.owner != b {
		return nil, surface.ErrForeignHandle
	}
	if s.tex == nil {
		return nil, surface.ErrReleased
	}
	return s, nil
}

func (b *Backend) upload(s *Surface) error {
	pix := s.staging.Pix
	if b.opts.Format == gputypes.TextureFormatBGRA8Unorm {
		pix = swizzleRB(pix)
	}
	if err := s.tex.upload(b.queue, pix); err != nil {
		return fmt.Errorf("native: upload: %w", err)
	}
	b.uploads++
	return nil
}

// swizzleRB returns a copy of RGBA pixels in BGRA order.
func swizzleRB(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i+3 < len(pix); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = pix[i+2], pix[i+1], pix[i], pix[i+3]
	}
	return out
}

func (b *Backend) attach(s *Surface, tex *texture, staging *image.RGBA) {
	s.tex = tex
	s.staging = staging
	b.live++
	b.bytes += int64(len(staging.Pix))
}

func (b *Backend) release(s *Surface) {
	if s.tex == nil {
		return
	}
	b.live--
	b.bytes -= int64(len(s.staging.Pix))
	b.pool.Put(s.staging.Rect.Size(), s.tex)
	s.tex = nil
	s.staging = nil
}
