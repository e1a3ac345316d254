// Command layerdemo builds a small page of compositing layers, paints their
// backing stores and prints the resulting layer tree.
package main

import (
	"cmp"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"slices"

	"github.com/gogpu/compositor"
	_ "github.com/gogpu/compositor/backend/native"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/surface"
	"golang.org/x/image/draw"
)

func main() {
	var (
		width   = flag.Int("width", 800, "page width")
		height  = flag.Int("height", 600, "page height")
		zoom    = flag.Float64("zoom", 1, "optical zoom")
		config  = flag.String("config", "", "TOML or YAML config file")
		backend = flag.String("backend", "", "surface backend name")
		output  = flag.String("output", "", "write the composited page to this PNG file")
		trace   = flag.String("trace", "", "print the paint commands of the named layer")
	)
	flag.Parse()

	cfg := compositor.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = compositor.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "zoom":
			cfg.OpticalZoom = float32(*zoom)
		case "backend":
			cfg.Backend = *backend
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	level, _ := cfg.Level()
	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := compositor.New(
		compositor.WithConfig(cfg),
		compositor.WithMemoryPressureHandler(func(bytes int64, reason compositor.AllocReason) {
			log.Printf("Memory pressure: %d bytes needed for %s", bytes, reason)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create compositor: %v", err)
	}
	defer c.Close()

	p := newPage(float32(*width), float32(*height))
	root := p.register(c)
	root.FlushCompositingState(root.Bounds())

	p.dismissBanner(c)
	if n := c.DisposeAllButDescendantsOf(root); n > 0 {
		log.Printf("Disposed %d detached backing stores", n)
	}
	root.FlushCompositingState(root.Bounds())

	if err := compositor.DumpTree(os.Stdout, root); err != nil {
		log.Fatalf("Failed to dump layer tree: %v", err)
	}

	if *trace != "" {
		l := findLayer(root, *trace)
		if l == nil {
			log.Fatalf("No layer named %q", *trace)
		}
		fmt.Print(traceLayer(l))
	}

	if *output != "" {
		if err := savePNG(*output, root); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Page saved to %s (%dx%d @%gx)\n", *output, *width, *height, root.OpticalZoom())
	}
}

// savePNG composites the backing stores of root's subtree and writes the
// result as a PNG file.
func savePNG(path string, root *compositor.Layer) error {
	size := root.Size().Bounds().Scale(root.OpticalZoom()).EnclosingIntRect()
	dst := image.NewRGBA(size.Image())
	composite(dst, root, geom.Point{})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// composite draws l and its descendants back to front at their accumulated
// positions.
func composite(dst *image.RGBA, l *compositor.Layer, origin geom.Point) {
	at := origin.Add(l.Position())
	if s, ok := l.Offscreen().(surface.Snapshotter); ok {
		if img := s.Snapshot(); img != nil {
			zoom := l.OpticalZoom()
			pt := image.Pt(int(at.X*zoom), int(at.Y*zoom))
			draw.Draw(dst, img.Rect.Add(pt), img, image.Point{}, draw.Over)
		}
	}
	children := l.Children()
	slices.SortStableFunc(children, func(a, b *compositor.Layer) int {
		return cmp.Compare(a.ZIndex(), b.ZIndex())
	})
	for _, child := range children {
		composite(dst, child, at)
	}
}

// findLayer returns the layer named name in root's subtree.
func findLayer(root *compositor.Layer, name string) *compositor.Layer {
	if root.Name() == name {
		return root
	}
	for _, child := range root.Children() {
		if l := findLayer(child, name); l != nil {
			return l
		}
	}
	return nil
}

// traceLayer repaints l into a recorder and returns the command listing.
func traceLayer(l *compositor.Layer) *recording.Recording {
	rec := recording.NewRecorder()
	l.PaintWith(l.Bounds(), geom.Point{}, 1, nil, rec)
	return rec.FinishRecording()
}
