package recording

import (
	"fmt"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave           CommandType = iota // Save current state
	CmdRestore                           // Restore previous state
	CmdClip                              // Intersect the clip
	CmdTranslate                         // Move the origin
	CmdSetOpticalZoom                    // Set the logical-to-pixel scale

	// Layer commands
	CmdBeginTransparencyLayer
	CmdEndTransparencyLayer

	// Drawing commands
	CmdClearRect
	CmdFillRect
	CmdDrawImage
)

var commandTypeNames = [...]string{
	CmdSave:                   "Save",
	CmdRestore:                "Restore",
	CmdClip:                   "Clip",
	CmdTranslate:              "Translate",
	CmdSetOpticalZoom:         "SetOpticalZoom",
	CmdBeginTransparencyLayer: "BeginTransparencyLayer",
	CmdEndTransparencyLayer:   "EndTransparencyLayer",
	CmdClearRect:              "ClearRect",
	CmdFillRect:               "FillRect",
	CmdDrawImage:              "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all command types.
type Command interface {
	Type() CommandType
}

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ImageRef(^uint32(0))

// IsValid reports whether r can point to an image.
func (r ImageRef) IsValid() bool { return r != InvalidRef }

// SaveCommand pushes the clip, translation and zoom state.
type SaveCommand struct{}

// RestoreCommand pops the state pushed by the matching SaveCommand.
type RestoreCommand struct{}

// ClipCommand intersects the clip with Rect.
type ClipCommand struct {
	Rect geom.Rect
}

// TranslateCommand moves the origin.
type TranslateCommand struct {
	DX, DY float32
}

// SetOpticalZoomCommand sets the logical-to-pixel scale.
type SetOpticalZoomCommand struct {
	Zoom float32
}

// BeginTransparencyLayerCommand opens a layer composited with Opacity.
type BeginTransparencyLayerCommand struct {
	Opacity float32
}

// EndTransparencyLayerCommand closes the innermost transparency layer.
type EndTransparencyLayerCommand struct{}

// ClearRectCommand makes Rect transparent.
type ClearRectCommand struct {
	Rect geom.Rect
}

// FillRectCommand blends Color over Rect.
type FillRectCommand struct {
	Rect  geom.Rect
	Color gputypes.Color
}

// DrawImageCommand draws a pooled image with its top-left corner at At.
type DrawImageCommand struct {
	Image ImageRef
	At    geom.Point
}

func (SaveCommand) Type() CommandType                   { return CmdSave }
func (RestoreCommand) Type() CommandType                { return CmdRestore }
func (ClipCommand) Type() CommandType                   { return CmdClip }
func (TranslateCommand) Type() CommandType              { return CmdTranslate }
func (SetOpticalZoomCommand) Type() CommandType         { return CmdSetOpticalZoom }
func (BeginTransparencyLayerCommand) Type() CommandType { return CmdBeginTransparencyLayer }
func (EndTransparencyLayerCommand) Type() CommandType   { return CmdEndTransparencyLayer }
func (ClearRectCommand) Type() CommandType              { return CmdClearRect }
func (FillRectCommand) Type() CommandType               { return CmdFillRect }
func (DrawImageCommand) Type() CommandType              { return CmdDrawImage }

// describe formats c for Recording.String.
func describe(c Command) string {
	switch c := c.(type) {
	case ClipCommand:
		return fmt.Sprintf("Clip %s", rectString(c.Rect))
	case TranslateCommand:
		return fmt.Sprintf("Translate %g,%g", c.DX, c.DY)
	case SetOpticalZoomCommand:
		return fmt.Sprintf("SetOpticalZoom %g", c.Zoom)
	case BeginTransparencyLayerCommand:
		return fmt.Sprintf("BeginTransparencyLayer %g", c.Opacity)
	case ClearRectCommand:
		return fmt.Sprintf("ClearRect %s", rectString(c.Rect))
	case FillRectCommand:
		return fmt.Sprintf("FillRect %s rgba(%.2f,%.2f,%.2f,%.2f)",
			rectString(c.Rect), c.Color.R, c.Color.G, c.Color.B, c.Color.A)
	case DrawImageCommand:
		return fmt.Sprintf("DrawImage #%d at %g,%g", c.Image, c.At.X, c.At.Y)
	default:
		return c.Type().String()
	}
}

func rectString(r geom.Rect) string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}
