package main

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gputypes"
)

// box is a rectangle of one color in the demo page.
type box struct {
	name     string
	parent   *box
	children []*box
	rect     geom.Rect
	color    gputypes.Color
	style    *style
}

func (b *box) add(c *box) *box {
	c.parent = b
	b.children = append(b.children, c)
	return c
}

func (b *box) remove(c *box) {
	for i, x := range b.children {
		if x == c {
			b.children = append(b.children[:i], b.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (b *box) Parent() compositor.Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *box) Children() []compositor.Node {
	out := make([]compositor.Node, len(b.children))
	for i, c := range b.children {
		out[i] = c
	}
	return out
}

func (b *box) Size() geom.Size                 { return geom.Size{Width: b.rect.Width, Height: b.rect.Height} }
func (b *box) Position() geom.Point            { return geom.Pt(b.rect.X, b.rect.Y) }
func (b *box) AnchorPoint() geom.Point3        { return geom.Point3{X: 0.5, Y: 0.5} }
func (b *box) Transform() geom.Matrix4         { return geom.Identity4() }
func (b *box) ChildrenTransform() geom.Matrix4 { return geom.Identity4() }
func (b *box) Opacity() float32                { return float32(b.color.A) }
func (b *box) BlendMode() compositor.BlendMode { return compositor.BlendNormal }
func (b *box) PlatformLayer() surface.Handle   { return nil }
func (b *box) MaskLayer() compositor.Node      { return nil }
func (b *box) Name() string                    { return b.name }

func (b *box) Flags() compositor.ContentFlags {
	f := compositor.DrawsContent | compositor.ContentsVisible
	if b.color.A == 1 {
		f |= compositor.ContentsOpaque
	}
	if b.parent == nil {
		f |= compositor.RootClipping | compositor.MasksToBounds
	}
	return f
}

func (b *box) PaintContents(dc surface.DrawContext, clip geom.Rect) {
	dc.FillRect(clip.Intersect(b.Size().Bounds()), b.color)
}

func (b *box) Owner() compositor.RenderNode {
	if b.style == nil {
		return nil
	}
	return b.style
}

// style is the positioning style of a box.
type style struct {
	position compositor.Positioning
	edges    [4]compositor.Length
	margins  [4]compositor.Length
	z        int
	sticky   *compositor.StickyConstraints
}

func (s *style) Positioning() compositor.Positioning        { return s.position }
func (s *style) Edge(e compositor.Edge) compositor.Length   { return s.edges[e] }
func (s *style) Margin(e compositor.Edge) compositor.Length { return s.margins[e] }
func (s *style) ZIndex() int                                { return s.z }

func (s *style) StickyConstraints() (compositor.StickyConstraints, bool) {
	if s.sticky == nil {
		return compositor.StickyConstraints{}, false
	}
	return *s.sticky, true
}

// page is the demo layer tree.
type page struct {
	root   *box
	banner *box
	boxes  []*box
}

func newPage(w, h float32) *page {
	p := &page{root: &box{
		name:  "page",
		rect:  geom.RectXYWH(0, 0, w, h),
		color: gputypes.Color{R: 1, G: 1, B: 1, A: 1},
	}}

	full := compositor.Calculated(compositor.CalculationFunc(func(limit float32) float32 { return limit }))
	header := p.root.add(&box{
		name:  "header",
		rect:  geom.RectXYWH(0, 0, w, 48),
		color: gputypes.Color{R: 0.16, G: 0.33, B: 0.62, A: 1},
		style: &style{
			position: compositor.PositionFixed,
			edges:    [4]compositor.Length{compositor.Fixed(0), full, compositor.Auto(), compositor.Percent(0)},
			z:        10,
		},
	})

	sidebar := p.root.add(&box{
		name:  "sidebar",
		rect:  geom.RectXYWH(0, 48, 160, h-48),
		color: gputypes.Color{R: 0.85, G: 0.85, B: 0.88, A: 1},
		style: &style{
			position: compositor.PositionSticky,
			sticky:   &compositor.StickyConstraints{
				BoxRect:             geom.RectXYWH(0, 48, 160, h-48),
				ContainingBlockRect: geom.RectXYWH(0, 0, w, h),
				Offset:              geom.Size{Height: 48},
			},
		},
	})

	content := p.root.add(&box{
		name:  "content",
		rect:  geom.RectXYWH(160, 48, w-160, h-48),
		color: gputypes.Color{R: 0.97, G: 0.97, B: 0.95, A: 1},
	})
	card := content.add(&box{
		name:  "card",
		rect:  geom.RectXYWH(24, 24, 240, 120),
		color: gputypes.Color{R: 0.95, G: 0.6, B: 0.2, A: 0.9},
		style: &style{
			position: compositor.PositionRelative,
			margins:  [4]compositor.Length{compositor.Fixed(8), compositor.Auto(), compositor.Fixed(8), compositor.Auto()},
		},
	})

	p.banner = p.root.add(&box{
		name:  "banner",
		rect:  geom.RectXYWH(w-220, h-80, 200, 60),
		color: gputypes.Color{R: 0.8, G: 0.1, B: 0.1, A: 1},
		style: &style{position: compositor.PositionAbsolute, z: 20},
	})

	p.boxes = []*box{p.root, header, sidebar, content, card, p.banner}
	return p
}

// register creates a layer with a painted backing store for every box and
// returns the root layer.
func (p *page) register(c *compositor.Compositor) *compositor.Layer {
	for _, b := range p.boxes {
		l := c.NewLayer(b)
		size := b.Size().Ceil()
		if !l.EnsureOffscreen(size.Width, size.Height) {
			continue
		}
		l.AddFullInvalidate()
		l.Paint(l.Bounds())
		l.DidAttachToTree()
	}
	return c.LayerFor(p.root)
}

// dismissBanner takes the banner out of the page. Its layer stays
// registered until the compositor sweeps it.
func (p *page) dismissBanner(c *compositor.Compositor) {
	if l := c.LayerFor(p.banner); l != nil {
		l.DidDetachFromTree()
	}
	p.root.remove(p.banner)
}
