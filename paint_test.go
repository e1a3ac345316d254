package compositor

import (
	"testing"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaintableLayer(t *testing.T, b *fakeBackend) (*Layer, *fakeNode) {
	t.Helper()
	c := newTestCompositor(t, WithBackend(b))
	n := newFakeNode("box", sz(20, 20))
	l := c.NewLayer(n)
	require.True(t, l.EnsureOffscreen(20, 20))
	return l, n
}

func TestPaintOperationOrder(t *testing.T) {
	b := newFakeBackend()
	l, n := newPaintableLayer(t, b)
	l.SetNeedsDisplay()

	l.PaintWith(geom.RectXYWH(2, 2, 5, 5), geom.Pt(1, 1), 0.5, nil, nil)

	require.Len(t, b.contexts, 1)
	assert.Equal(t, []string{
		"save",
		"zoom 1",
		"clip 1,1 5x5",
		"translate -1,-1",
		"begin 0.5",
		"fill 2,2 5x5",
		"end",
		"restore",
	}, b.contexts[0].ops)
	assert.Equal(t, []string{"create", "dc", "release"}, b.calls)
	assert.Equal(t, []geom.Rect{geom.RectXYWH(2, 2, 5, 5)}, n.painted)
	assert.Equal(t, geom.RectXYWH(2, 2, 5, 5), l.LastPaintedRect())
	assert.False(t, l.NeedsDisplay())
}

func TestPaintOpaqueSkipsTransparencyLayer(t *testing.T) {
	b := newFakeBackend()
	l, _ := newPaintableLayer(t, b)
	l.SetOpticalZoom(2)

	l.Paint(geom.RectXYWH(0, 0, 4, 4))

	require.Len(t, b.contexts, 1)
	ops := b.contexts[0].ops
	assert.Equal(t, []string{"save", "zoom 2", "clip 0,0 4x4"}, ops[:3])
	assert.NotContains(t, ops, "begin 1")
	assert.NotContains(t, ops, "end")
	assert.Equal(t, "restore", ops[len(ops)-1])
}

func TestPaintIntoCallerContext(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	l := c.NewLayer(newFakeNode("box", sz(20, 20)))
	dc := &recordingDC{}

	l.PaintWith(geom.RectXYWH(0, 0, 3, 3), geom.Point{}, 1, nil, dc)

	assert.Empty(t, b.calls, "caller context needs no backing store")
	assert.Contains(t, dc.ops, "fill 0,0 3x3")
	assert.Equal(t, geom.RectXYWH(0, 0, 3, 3), l.LastPaintedRect())
}

func TestPaintIntoTargetLayer(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	src := c.NewLayer(newFakeNode("src", sz(10, 10)))
	dst := c.NewLayer(newFakeNode("dst", sz(10, 10)))
	require.True(t, dst.EnsureOffscreen(10, 10))

	src.PaintWith(geom.RectXYWH(0, 0, 3, 3), geom.Point{}, 1, dst, nil)

	require.Len(t, b.contexts, 1)
	assert.Contains(t, b.contexts[0].ops, "fill 0,0 3x3")
	assert.Equal(t, geom.RectXYWH(0, 0, 3, 3), src.LastPaintedRect())
	assert.True(t, dst.LastPaintedRect().IsEmpty())
}

func TestPaintPreconditions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *fakeBackend) (*Layer, func(l *Layer))
	}{
		{
			name: "no backing store",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				c := newTestCompositor(t, WithBackend(b))
				l := c.NewLayer(newFakeNode("box", sz(10, 10)))
				return l, func(l *Layer) { l.Paint(geom.RectXYWH(0, 0, 5, 5)) }
			},
		},
		{
			name: "empty rect",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				l, _ := newPaintableLayer(t, b)
				return l, func(l *Layer) { l.Paint(geom.RectXYWH(1, 1, 0, 5)) }
			},
		},
		{
			name: "solid color layer",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				l, _ := newPaintableLayer(t, b)
				l.SetContentsToSolidColor(gputypes.ColorBlack)
				return l, func(l *Layer) { l.Paint(geom.RectXYWH(0, 0, 5, 5)) }
			},
		},
		{
			name: "video platform layer",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				l, n := newPaintableLayer(t, b)
				n.platform = platformLayer(surface.KindVideo)
				return l, func(l *Layer) { l.Paint(geom.RectXYWH(0, 0, 5, 5)) }
			},
		},
		{
			name: "target and context together",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				l, _ := newPaintableLayer(t, b)
				return l, func(l *Layer) {
					l.PaintWith(geom.RectXYWH(0, 0, 5, 5), geom.Point{}, 1, l, &recordingDC{})
				}
			},
		},
		{
			name: "target without backing store",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				l, _ := newPaintableLayer(t, b)
				target := l.Compositor().NewLayer(newFakeNode("target", sz(10, 10)))
				return l, func(l *Layer) {
					l.PaintWith(geom.RectXYWH(0, 0, 5, 5), geom.Point{}, 1, target, nil)
				}
			},
		},
		{
			name: "no draw context",
			setup: func(t *testing.T, b *fakeBackend) (*Layer, func(*Layer)) {
				l, _ := newPaintableLayer(t, b)
				b.failDC = true
				return l, func(l *Layer) { l.Paint(geom.RectXYWH(0, 0, 5, 5)) }
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			l, paint := tt.setup(t, b)
			l.SetNeedsDisplay()

			paint(l)

			assert.Empty(t, b.contexts)
			assert.True(t, l.LastPaintedRect().IsEmpty())
			assert.True(t, l.NeedsDisplay())
		})
	}
}

func TestClear(t *testing.T) {
	b := newFakeBackend()
	l, _ := newPaintableLayer(t, b)
	l.SetOpticalZoom(2)
	l.SetNeedsDisplay()

	l.Clear(geom.RectXYWH(1, 2, 3, 4), nil)

	require.Len(t, b.contexts, 1)
	assert.Equal(t, []string{
		"save", "zoom 2", "clip 1,2 3x4", "clear 1,2 3x4", "restore",
	}, b.contexts[0].ops)
	assert.Equal(t, 1, b.count("release"))
	assert.False(t, l.NeedsDisplay())
}

func TestClearCallerContext(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	l := c.NewLayer(newFakeNode("box", sz(10, 10)))
	dc := &recordingDC{}

	l.Clear(geom.RectXYWH(0, 0, 2, 2), dc)

	assert.Equal(t, []string{"save", "zoom 1", "clip 0,0 2x2", "clear 0,0 2x2", "restore"}, dc.ops)
	assert.Empty(t, b.calls)
}

func TestClearPreconditions(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	l := c.NewLayer(newFakeNode("box", sz(10, 10)))

	l.Clear(geom.RectXYWH(0, 0, 2, 2), nil)
	require.True(t, l.EnsureOffscreen(10, 10))
	l.Clear(geom.Rect{}, nil)
	l.SetContentsToSolidColor(gputypes.ColorBlack)
	l.Clear(geom.RectXYWH(0, 0, 2, 2), nil)

	assert.Empty(t, b.contexts)
}

func TestSolidColor(t *testing.T) {
	c := newTestCompositor(t, WithBackend(newFakeBackend()))
	l := c.NewLayer(newFakeNode("box", sz(10, 10)))

	_, ok := l.ContentsSolidColor()
	assert.False(t, ok)

	l.SetContentsToSolidColor(gputypes.ColorRed)
	got, ok := l.ContentsSolidColor()
	assert.True(t, ok)
	assert.Equal(t, gputypes.ColorRed, got)

	l.ClearSolidColor()
	_, ok = l.ContentsSolidColor()
	assert.False(t, ok)
}
