// Package sink provides output format renderers for tilejar layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: the animated document (tile definition, stylesheet, instances)
//   - PNG: one frame rasterized by rsvg-convert
//   - PDF: one frame as a vector page (requires rsvg-convert)
//   - JSON: layout data export for external tools
//   - Preview: a small thumbnail drawn in process, used for preset lists
//
// # SVG Output
//
// [RenderSVG] produces a document with a reusable tile definition, a base
// stylesheet, the generated stylesheet and one <use> element per visible
// instance in draw order:
//
//	svg := sink.RenderSVG(l,
//	    sink.WithFrame(30),
//	    sink.WithState(playback.StatePaused),
//	)
//
// The root element carries the layout's custom properties plus the seek
// offset of the selected frame. The render state becomes the root class,
// which the base stylesheet uses to pause animations, so a paused document
// shows exactly the selected frame.
//
// # SVG Options
//
//   - [WithFrame]: Seek every animation to a 1-based frame
//   - [WithOffset]: Seek to an explicit time offset in seconds
//   - [WithState]: Root class (stopped, paused or playing)
//   - [WithoutBaseStyle]: Omit the base stylesheet
//
// # Preview Output
//
// [RenderPreview] rasterizes tile footprints with github.com/gogpu/gg,
// coloured by their variant fill and opacity, fitted and centred in the
// requested size. Tile paths are not interpreted; each instance is drawn as
// its bounding rectangle. [PreviewDataURL] wraps the PNG as a data URL.
package sink
