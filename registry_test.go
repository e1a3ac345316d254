package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocAll(t *testing.T, layers ...*Layer) {
	t.Helper()
	for _, l := range layers {
		require.True(t, l.EnsureOffscreen(4, 4), "layer %s", l.Name())
	}
}

func TestDisposeAllButDescendantsOf(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	root, a, a1, bn, _ := buildTree()
	other := newFakeNode("other", sz(5, 5))
	otherChild := newFakeNode("other-child", sz(5, 5))
	other.add(otherChild)

	lr := c.NewLayer(root)
	la := c.NewLayer(a)
	la1 := c.NewLayer(a1)
	lb := c.NewLayer(bn)
	lo := c.NewLayer(other)
	loc := c.NewLayer(otherChild)
	allocAll(t, lr, la, la1, lb, lo, loc)

	disposed := c.DisposeAllButDescendantsOf(la)

	assert.Equal(t, 4, disposed)
	assert.True(t, la.HasOffscreen())
	assert.True(t, la1.HasOffscreen())
	for _, l := range []*Layer{lr, lb, lo, loc} {
		assert.False(t, l.HasOffscreen(), "layer %s", l.Name())
	}
	assert.Equal(t, 6, c.Len(), "layer records survive a sweep")
	for _, l := range c.Layers() {
		assert.False(t, l.Marked(), "layer %s still marked", l.Name())
	}
	assert.Equal(t, 4, b.count("delete"))
}

func TestDisposeKeepsLayersBelowUnregisteredNodes(t *testing.T) {
	c := newTestCompositor(t, WithBackend(newFakeBackend()))
	root, _, a1, bn, _ := buildTree()
	lr := c.NewLayer(root)
	la1 := c.NewLayer(a1)
	lb := c.NewLayer(bn)
	allocAll(t, lr, la1, lb)

	assert.Zero(t, c.DisposeAllButDescendantsOf(lr))
	assert.True(t, la1.HasOffscreen())
	assert.True(t, lb.HasOffscreen())
}

func TestDisposeNilRootReleasesEverything(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	root, a, _, _, _ := buildTree()
	lr := c.NewLayer(root)
	la := c.NewLayer(a)
	allocAll(t, lr, la)

	assert.Equal(t, 2, c.DisposeAllButDescendantsOf(nil))
	assert.Empty(t, b.live)

	// Layers without a backing store are not counted.
	assert.Zero(t, c.DisposeAllButDescendantsOf(nil))
}

func TestDisposeEmptyRegistry(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))

	assert.Zero(t, c.DisposeAllButDescendantsOf(nil))
	assert.Empty(t, b.calls)
}

func TestDisposeSurvivesCycles(t *testing.T) {
	c := newTestCompositor(t, WithBackend(newFakeBackend()))
	x := newFakeNode("x", sz(1, 1))
	y := newFakeNode("y", sz(1, 1))
	x.children = []*fakeNode{y}
	y.children = []*fakeNode{x}
	lx := c.NewLayer(x)
	ly := c.NewLayer(y)
	allocAll(t, lx, ly)

	assert.Zero(t, c.DisposeAllButDescendantsOf(lx))
	assert.False(t, lx.Marked())
	assert.False(t, ly.Marked())
}

func TestCompositorClose(t *testing.T) {
	b := newFakeBackend()
	c := newTestCompositor(t, WithBackend(b))
	l := c.NewLayer(newFakeNode("box", sz(4, 4)))
	allocAll(t, l)

	c.Close()

	assert.False(t, l.HasOffscreen())
	assert.Empty(t, b.live)
}
