// Package render converts tilejar documents between output formats.
//
// # Overview
//
// Layouts are rendered to SVG by the [sink] subpackage. This package
// provides the generic conversions on top of it:
//
//   - SVG to PNG ([ToPNG]) with a scale factor
//   - SVG to PDF ([ToPDF])
//
// Both shell out to the external rsvg-convert tool (from librsvg), which
// honours the generated stylesheet and the seek offset, so a PNG captured
// at a given frame shows every animation at that instant.
//
//	svg := sink.RenderSVG(l, sink.WithFrame(12))
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Conversion failures are reported with the EXTERNAL error code.
//
// [sink]: github.com/la-jarre-a-son/tilejar/pkg/render/sink
package render
