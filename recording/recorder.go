package recording

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gputypes"
)

// ErrUnbalanced is returned by Playback when a recording leaves a Save or
// a transparency layer open, or closes one it never opened.
var ErrUnbalanced = errors.New("recording: unbalanced save/restore or transparency layers")

// Recorder captures draw context calls as commands.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	commands  []Command
	resources *ResourcePool

	// Drawn area in the recording's logical coordinates.
	origin geom.Point
	stack  []geom.Point
	bounds geom.Rect
}

var _ surface.DrawContext = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands:  make([]Command, 0, 32),
		resources: NewResourcePool(),
	}
}

// FinishRecording returns the commands recorded so far. The Recorder
// should not be used afterwards.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{commands: r.commands, resources: r.resources, bounds: r.bounds}
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

func (r *Recorder) record(c Command) { r.commands = append(r.commands, c) }

func (r *Recorder) drew(rect geom.Rect) {
	r.bounds = r.bounds.Union(rect.Translate(r.origin.X, r.origin.Y))
}

// Save implements surface.DrawContext.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.origin)
	r.record(SaveCommand{})
}

// Restore implements surface.DrawContext.
func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.origin = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record(RestoreCommand{})
}

// Clip implements surface.DrawContext.
func (r *Recorder) Clip(rect geom.Rect) { r.record(ClipCommand{Rect: rect}) }

// Translate implements surface.DrawContext.
func (r *Recorder) Translate(dx, dy float32) {
	r.origin = r.origin.Add(geom.Pt(dx, dy))
	r.record(TranslateCommand{DX: dx, DY: dy})
}

// SetOpticalZoom implements surface.DrawContext.
func (r *Recorder) SetOpticalZoom(zoom float32) { r.record(SetOpticalZoomCommand{Zoom: zoom}) }

// BeginTransparencyLayer implements surface.DrawContext.
func (r *Recorder) BeginTransparencyLayer(opacity float32) {
	r.record(BeginTransparencyLayerCommand{Opacity: opacity})
}

// EndTransparencyLayer implements surface.DrawContext.
func (r *Recorder) EndTransparencyLayer() { r.record(EndTransparencyLayerCommand{}) }

// ClearRect implements surface.DrawContext.
func (r *Recorder) ClearRect(rect geom.Rect) {
	r.drew(rect)
	r.record(ClearRectCommand{Rect: rect})
}

// FillRect implements surface.DrawContext.
func (r *Recorder) FillRect(rect geom.Rect, c gputypes.Color) {
	r.drew(rect)
	r.record(FillRectCommand{Rect: rect, Color: c})
}

// DrawImage implements surface.DrawContext.
func (r *Recorder) DrawImage(img image.Image, at geom.Point) {
	b := img.Bounds()
	r.drew(geom.RectXYWH(at.X, at.Y, float32(b.Dx()), float32(b.Dy())))
	r.record(DrawImageCommand{Image: r.resources.AddImage(img), At: at})
}

// Recording is an immutable list of recorded commands.
type Recording struct {
	commands  []Command
	resources *ResourcePool
	bounds    geom.Rect
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// Bounds returns the union of all drawn rectangles in the coordinates of
// the recording's first command, ignoring clips.
func (r *Recording) Bounds() geom.Rect { return r.bounds }

// Playback replays the recording into dc. Every command is replayed; if
// saves or transparency layers do not balance, ErrUnbalanced is returned
// afterwards.
func (r *Recording) Playback(dc surface.DrawContext) error {
	saves, layers := 0, 0
	unbalanced := false
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			saves++
			dc.Save()
		case RestoreCommand:
			saves--
			unbalanced = unbalanced || saves < 0
			dc.Restore()
		case ClipCommand:
			dc.Clip(c.Rect)
		case TranslateCommand:
			dc.Translate(c.DX, c.DY)
		case SetOpticalZoomCommand:
			dc.SetOpticalZoom(c.Zoom)
		case BeginTransparencyLayerCommand:
			layers++
			dc.BeginTransparencyLayer(c.Opacity)
		case EndTransparencyLayerCommand:
			layers--
			unbalanced = unbalanced || layers < 0
			dc.EndTransparencyLayer()
		case ClearRectCommand:
			dc.ClearRect(c.Rect)
		case FillRectCommand:
			dc.FillRect(c.Rect, c.Color)
		case DrawImageCommand:
			if img := r.resources.GetImage(c.Image); img != nil {
				dc.DrawImage(img, c.At)
			}
		}
	}
	if unbalanced || saves != 0 || layers != 0 {
		return fmt.Errorf("%w: %d saves, %d layers open", ErrUnbalanced, saves, layers)
	}
	return nil
}

// String lists the commands one per line, indented by save depth.
func (r *Recording) String() string {
	var sb strings.Builder
	depth := 0
	for _, c := range r.commands {
		switch c.Type() {
		case CmdRestore, CmdEndTransparencyLayer:
			depth = max(depth-1, 0)
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(describe(c))
		sb.WriteByte('\n')
		switch c.Type() {
		case CmdSave, CmdBeginTransparencyLayer:
			depth++
		}
	}
	return sb.String()
}
