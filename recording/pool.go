package recording

import "image"

// ResourcePool stores the images a recording refers to.
type ResourcePool struct {
	images []image.Image
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{images: make([]image.Image, 0, 8)}
}

// AddImage stores img and returns its reference. Images are not copied;
// callers must not modify them afterwards.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	ref := ImageRef(len(p.images))
	p.images = append(p.images, img)
	return ref
}

// GetImage returns the image for ref, or nil for an invalid reference.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if !ref.IsValid() || int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of stored images.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Clone returns a pool sharing the same images.
func (p *ResourcePool) Clone() *ResourcePool {
	return &ResourcePool{images: append(make([]image.Image, 0, len(p.images)), p.images...)}
}
