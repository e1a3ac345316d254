package compositor

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DumpTree writes a human-readable description of the layer tree rooted at
// root: one line per layer with its backing store, dirty rects and
// positioning, followed by the total backing-store size. Byte counts are
// printed with digit grouping.
func DumpTree(w io.Writer, root *Layer) error {
	p := message.NewPrinter(language.English)
	d := dumper{p: p, w: w}
	if root != nil {
		d.node(root.c, root.node, 0)
	}
	if d.err != nil {
		return d.err
	}
	_, err := p.Fprintf(w, "total: %d bytes in %d backing stores\n", d.bytes, d.surfaces)
	return err
}

type dumper struct {
	p        *message.Printer
	w        io.Writer
	bytes    int64
	surfaces int
	err      error
}

func (d *dumper) node(c *Compositor, n Node, depth int) {
	if d.err != nil {
		return
	}
	l := c.LayerFor(n)
	if l != nil {
		d.line(l, depth)
		depth++
	}
	for _, child := range n.Children() {
		d.node(c, child, depth)
	}
}

func (d *dumper) line(l *Layer, depth int) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&sb, "#%d %q", l.id, l.Name())

	if l.handle != nil {
		bytes := backingStoreBytes(l.surfaceSize, l.zoom)
		d.bytes += bytes
		d.surfaces++
		fmt.Fprintf(&sb, " surface=%dx%d@%g", l.surfaceSize.Width, l.surfaceSize.Height, l.zoom)
		sb.WriteString(d.p.Sprintf(" (%d bytes)", bytes))
		if l.isImage {
			sb.WriteString(" image")
		}
	}
	if c, ok := l.ContentsSolidColor(); ok {
		fmt.Fprintf(&sb, " solid=rgba(%.2f,%.2f,%.2f,%.2f)", c.R, c.G, c.B, c.A)
	}
	if n := l.DirtyRectCount(); n > 0 {
		fmt.Fprintf(&sb, " dirty=%d", n)
	}
	switch {
	case l.IsFixedPositioned():
		sb.WriteString(" fixed[")
		for i, e := range Edges {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%s=%s", e, l.EdgeValue(e))
		}
		sb.WriteByte(']')
	case l.IsStickilyPositioned():
		b := l.StickyBoxRect()
		o := l.StickyOffset()
		fmt.Fprintf(&sb, " sticky[box=%g,%g %gx%g offset=%g,%g]", b.X, b.Y, b.Width, b.Height, o.Width, o.Height)
	}
	sb.WriteByte('\n')
	_, d.err = io.WriteString(d.w, sb.String())
}
