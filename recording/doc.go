// Package recording captures layer painting as a replayable display list.
//
// A Recorder is a surface.DrawContext that stores every call as a typed
// command instead of touching pixels. The finished Recording can be
// replayed into any other draw context, inspected, or printed for
// debugging:
//
//	rec := recording.NewRecorder()
//	layer.PaintWith(layer.Bounds(), geom.Point{}, 1, nil, rec)
//	r := rec.FinishRecording()
//
//	fmt.Print(r)           // one command per line
//	_ = r.Playback(dc)     // rasterize later, or elsewhere
//
// Commands are plain structs so tests and tools can switch on their type.
// Images are kept in a ResourcePool and referenced by ImageRef.
package recording
