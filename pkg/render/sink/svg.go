package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
)

// TileMargin pads the tile definition so strokes are not clipped.
const TileMargin = 4

// BaseCSS is the static stylesheet every document carries.
const BaseCSS = `
    #grid, #grid .tile { animation-fill-mode: both; }
    #grid .tile { transform-box: view-box; }
    #svg.paused #grid, #svg.paused #grid .tile,
    #svg.stopped #grid, #svg.stopped #grid .tile { animation-play-state: paused; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	offset    float64
	state     playback.State
	baseStyle bool
	clock     *timeline.Clock
	frame     int
}

// WithFrame seeks the document to the 1-based frame of the layout's clock.
func WithFrame(frame int) SVGOption { return func(r *svgRenderer) { r.frame = frame } }

// WithOffset seeks the document to an explicit offset in seconds.
// Offsets are negative for times after the start.
func WithOffset(seconds float64) SVGOption {
	return func(r *svgRenderer) { r.offset = seconds; r.frame = 0 }
}

// WithClock overrides the clock used by [WithFrame].
func WithClock(c timeline.Clock) SVGOption { return func(r *svgRenderer) { r.clock = &c } }

// WithState sets the render state class of the root element.
func WithState(s playback.State) SVGOption { return func(r *svgRenderer) { r.state = s } }

// WithoutBaseStyle omits [BaseCSS].
func WithoutBaseStyle() SVGOption { return func(r *svgRenderer) { r.baseStyle = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{state: playback.StatePaused, baseStyle: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders l as an SVG document.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	offset := r.offset
	if r.frame > 0 {
		clock := l.Clock()
		if r.clock != nil {
			clock = *r.clock
		}
		offset = clock.Offset(r.frame)
	}

	root := append([]stylesheet.Decl{
		stylesheet.D(timeline.CurrentTimeProperty, stylesheet.Seconds(offset)),
	}, l.Root...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" id="svg" class="%s" viewBox="0 0 %s %s" width="%s" height="%s" style="%s">`+"\n",
		attr(string(r.state)), num(l.Width), num(l.Height), num(l.Render.Width), num(l.Render.Height), attr(stylesheet.Inline(root)))

	renderDefs(&buf, l)
	if r.baseStyle {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", BaseCSS)
	}
	fmt.Fprintf(&buf, "  <style><![CDATA[\n%s]]></style>\n", l.Sheet.String())
	renderGrid(&buf, l)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, l *layout.Layout) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, "    <g id=\"%s\">\n", layout.TileDefinitionID)
	fmt.Fprintf(buf, "      <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"none\" stroke=\"none\"/>\n",
		num(-TileMargin), num(-TileMargin), num(l.TileWidth+TileMargin), num(l.TileHeight+TileMargin))
	fmt.Fprintf(buf, "      <path d=\"%s\"/>\n", attr(l.TilePath))
	buf.WriteString("    </g>\n")
	buf.WriteString("  </defs>\n")
}

func renderGrid(buf *bytes.Buffer, l *layout.Layout) {
	fmt.Fprintf(buf, "  <g id=\"grid\" style=\"transform: %s\">\n", attr(l.GridTransform))
	for _, inst := range l.Instances {
		fmt.Fprintf(buf, "    <use href=\"#%s\" xlink:href=\"#%s\" class=\"%s\" style=\"%s\" x=\"%s\" y=\"%s\"/>\n",
			layout.TileDefinitionID, layout.TileDefinitionID,
			inst.Classes(), attr(stylesheet.Inline(inst.Properties())), num(inst.X), num(inst.Y))
	}
	buf.WriteString("  </g>\n")
}

func attr(s string) string { return html.EscapeString(s) }

func num(f float64) string { return stylesheet.Number(f) }
