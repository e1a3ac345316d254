package compositor

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gputypes"
)

var errFakeOOM = errors.New("fake: out of memory")

// fakeHandle is the handle type of fakeBackend.
type fakeHandle struct {
	kind     surface.Kind
	size     geom.IntSize
	zoom     float32
	released bool
}

func (h *fakeHandle) Kind() surface.Kind      { return h.kind }
func (h *fakeHandle) Size() geom.IntSize      { return h.size }
func (h *fakeHandle) Zoom() float32           { return h.zoom }
func platformLayer(k surface.Kind) *fakeHandle { return &fakeHandle{kind: k} }

// fakeBackend records every call and can be told to fail.
type fakeBackend struct {
	calls []string
	live  map[*fakeHandle]bool

	failCreate bool
	failResize bool
	failZoom   bool
	failDC     bool

	contexts  []*recordingDC
	attached  int
	detached  int
	displayed []surface.Handle
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{live: make(map[*fakeHandle]bool)}
}

func (b *fakeBackend) count(op string) int {
	n := 0
	for _, c := range b.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (b *fakeBackend) CreateSurface(kind surface.Kind, size geom.IntSize, zoom float32) (surface.Handle, error) {
	b.calls = append(b.calls, "create")
	if b.failCreate {
		return nil, errFakeOOM
	}
	h := &fakeHandle{kind: kind, size: size, zoom: zoom}
	b.live[h] = true
	return h, nil
}

func (b *fakeBackend) ResizeSurface(h surface.Handle, size geom.IntSize) error {
	b.calls = append(b.calls, "resize")
	fh := h.(*fakeHandle)
	if b.failResize {
		b.release(fh)
		return errFakeOOM
	}
	fh.size = size
	return nil
}

func (b *fakeBackend) SetZoom(h surface.Handle, zoom float32) error {
	b.calls = append(b.calls, "zoom")
	fh := h.(*fakeHandle)
	if b.failZoom {
		b.release(fh)
		return errFakeOOM
	}
	fh.zoom = zoom
	return nil
}

func (b *fakeBackend) DeleteSurface(h surface.Handle) {
	b.calls = append(b.calls, "delete")
	fh := h.(*fakeHandle)
	if fh.released {
		panic("fake: double delete")
	}
	b.release(fh)
}

func (b *fakeBackend) release(h *fakeHandle) {
	h.released = true
	delete(b.live, h)
}

func (b *fakeBackend) DrawContext(h surface.Handle) (surface.DrawContext, error) {
	b.calls = append(b.calls, "dc")
	if b.failDC {
		return nil, errFakeOOM
	}
	if h.(*fakeHandle).released {
		panic("fake: draw into released surface")
	}
	dc := &recordingDC{}
	b.contexts = append(b.contexts, dc)
	return dc, nil
}

func (b *fakeBackend) ReleaseDrawContext(surface.Handle, surface.DrawContext) {
	b.calls = append(b.calls, "release")
}

func (b *fakeBackend) DidAttachToTree(surface.Handle)   { b.attached++ }
func (b *fakeBackend) DidDetachFromTree(surface.Handle) { b.detached++ }
func (b *fakeBackend) DidDisplay(h surface.Handle)      { b.displayed = append(b.displayed, h) }

// recordingDC records draw operations as strings.
type recordingDC struct {
	ops []string
}

func (d *recordingDC) rec(format string, args ...any) {
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
}

func (d *recordingDC) Save()                      { d.rec("save") }
func (d *recordingDC) Restore()                   { d.rec("restore") }
func (d *recordingDC) Clip(r geom.Rect)           { d.rec("clip %g,%g %gx%g", r.X, r.Y, r.Width, r.Height) }
func (d *recordingDC) Translate(dx, dy float32)   { d.rec("translate %g,%g", dx, dy) }
func (d *recordingDC) SetOpticalZoom(z float32)   { d.rec("zoom %g", z) }
func (d *recordingDC) BeginTransparencyLayer(o float32) {
	d.rec("begin %g", o)
}
func (d *recordingDC) EndTransparencyLayer()     { d.rec("end") }
func (d *recordingDC) ClearRect(r geom.Rect)     { d.rec("clear %g,%g %gx%g", r.X, r.Y, r.Width, r.Height) }
func (d *recordingDC) FillRect(r geom.Rect, _ gputypes.Color) {
	d.rec("fill %g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}
func (d *recordingDC) DrawImage(img image.Image, at geom.Point) {
	d.rec("image %dx%d at %g,%g", img.Bounds().Dx(), img.Bounds().Dy(), at.X, at.Y)
}

// fakeNode is a minimal host layer-tree node.
type fakeNode struct {
	name     string
	parent   *fakeNode
	children []*fakeNode
	size     geom.Size
	flags    ContentFlags
	owner    RenderNode
	platform surface.Handle
	mask     *fakeNode
	video    bool

	painted []geom.Rect
	log     *[]string
}

func newFakeNode(name string, size geom.Size) *fakeNode {
	return &fakeNode{name: name, size: size, flags: DrawsContent}
}

func (n *fakeNode) add(children ...*fakeNode) *fakeNode {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// record appends to the log of the tree's root.
func (n *fakeNode) record(s string) {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	if root.log != nil {
		*root.log = append(*root.log, s)
	}
}

func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *fakeNode) Size() geom.Size                 { return n.size }
func (n *fakeNode) Position() geom.Point            { return geom.Point{} }
func (n *fakeNode) AnchorPoint() geom.Point3        { return geom.Point3{X: 0.5, Y: 0.5} }
func (n *fakeNode) Transform() geom.Matrix4         { return geom.Identity4() }
func (n *fakeNode) ChildrenTransform() geom.Matrix4 { return geom.Identity4() }
func (n *fakeNode) Opacity() float32                { return 1 }
func (n *fakeNode) BlendMode() BlendMode            { return BlendNormal }
func (n *fakeNode) Flags() ContentFlags             { return n.flags }
func (n *fakeNode) PlatformLayer() surface.Handle   { return n.platform }
func (n *fakeNode) Owner() RenderNode               { return n.owner }
func (n *fakeNode) Name() string                    { return n.name }
func (n *fakeNode) IsVideo() bool                   { return n.video }

func (n *fakeNode) MaskLayer() Node {
	if n.mask == nil {
		return nil
	}
	return n.mask
}

func (n *fakeNode) PaintContents(dc surface.DrawContext, clip geom.Rect) {
	n.painted = append(n.painted, clip)
	dc.FillRect(clip, gputypes.ColorRed)
}

func (n *fakeNode) FlushLayerOnly(geom.Rect) { n.record("enter " + n.name) }
func (n *fakeNode) DidCommitChanges()        { n.record("commit " + n.name) }

// fakeRenderNode supplies positioning inputs.
type fakeRenderNode struct {
	positioning Positioning
	edges       [4]Length
	sticky      StickyConstraints
	hasSticky   bool
	z           int
	stickyCalls int
}

func (r *fakeRenderNode) Positioning() Positioning { return r.positioning }
func (r *fakeRenderNode) Edge(e Edge) Length       { return r.edges[e] }
func (r *fakeRenderNode) ZIndex() int              { return r.z }

func (r *fakeRenderNode) StickyConstraints() (StickyConstraints, bool) {
	r.stickyCalls++
	return r.sticky, r.hasSticky
}

// marginRenderNode adds margins to fakeRenderNode.
type marginRenderNode struct {
	fakeRenderNode
	margins [4]Length
}

func (r *marginRenderNode) Margin(e Edge) Length { return r.margins[e] }

// positionOnly is a render node with no optional capabilities.
type positionOnly Positioning

func (p positionOnly) Positioning() Positioning { return Positioning(p) }

func newTestCompositor(t *testing.T, opts ...Option) *Compositor {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func sz(w, h float32) geom.Size { return geom.Size{Width: w, Height: h} }
