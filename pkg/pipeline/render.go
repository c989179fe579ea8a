package pipeline

import (
	"context"
	"fmt"

	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
	"github.com/la-jarre-a-son/tilejar/pkg/render/sink"
)

// RenderFrame renders one format of l at frame.
func RenderFrame(ctx context.Context, l *layout.Layout, format string, frame int, opts Options) ([]byte, error) {
	svgOpts := []sink.SVGOption{
		sink.WithFrame(frame),
		sink.WithState(playback.State(opts.State)),
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONName(opts.Name), sink.WithJSONFrame(frame))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Render generates the requested formats of l at opts.Frame.
func Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFrame(ctx, l, format, opts.Frame, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
