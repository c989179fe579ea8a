package layout

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/grid"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/rng"
	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
	"github.com/la-jarre-a-son/tilejar/pkg/variant"
)

// Selectors used by the generated stylesheet.
const (
	GridSelector     = "#grid"
	TileSelector     = "#grid .tile"
	TileClass        = "tile"
	TileDefinitionID = "tile"
)

// Layout is the result of [Compute].
type Layout struct {
	Width  float64       `json:"width" msgpack:"width"`
	Height float64       `json:"height" msgpack:"height"`
	Render preset.Render `json:"render" msgpack:"render"`

	TilePath   string  `json:"tilePath" msgpack:"tilePath"`
	TileWidth  float64 `json:"tileWidth" msgpack:"tileWidth"`
	TileHeight float64 `json:"tileHeight" msgpack:"tileHeight"`

	// GridTransform is the whole-grid transform, "none" when unset.
	GridTransform string  `json:"gridTransform" msgpack:"gridTransform"`
	GridRandomX   float64 `json:"gridRandomX" msgpack:"gridRandomX"`
	GridRandomY   float64 `json:"gridRandomY" msgpack:"gridRandomY"`

	Variants   []preset.Variant `json:"variants" msgpack:"variants"`
	Instances  []TileInstance   `json:"instances" msgpack:"instances"`
	Enumerated int              `json:"enumerated" msgpack:"enumerated"`

	Tile timeline.Compiled `json:"tileTimeline" msgpack:"tileTimeline"`
	Grid timeline.Compiled `json:"gridTimeline" msgpack:"gridTimeline"`

	Sheet stylesheet.Sheet `json:"sheet" msgpack:"sheet"`
	// Root holds the custom properties of the root element, excluding the
	// frame-dependent current time.
	Root []stylesheet.Decl `json:"root" msgpack:"root"`
}

// Clock returns the seek clock of the layout's render settings.
func (l *Layout) Clock() timeline.Clock { return timeline.ClockOf(l.Render) }

// Stats summarizes a layout.
type Stats struct {
	Enumerated int
	Visible    int
	Culled     int
	Variants   int
	Keyframes  int
	Rules      int
}

// Stats returns summary counts of l.
func (l *Layout) Stats() Stats {
	variants := map[int]bool{}
	for _, inst := range l.Instances {
		variants[inst.VariantIndex] = true
	}
	return Stats{
		Enumerated: l.Enumerated,
		Visible:    len(l.Instances),
		Culled:     l.Enumerated - len(l.Instances),
		Variants:   len(variants),
		Keyframes:  len(l.Tile.Keyframes) + len(l.Grid.Keyframes),
		Rules:      l.Sheet.Len(),
	}
}

// Compute lays out p.
//
// Compute rejects a grid that fails [preset.Grid.Validate] before
// enumerating it. It fails with a configuration error when a visible tile
// needs a class period or a variant the preset does not provide: see
// [grid.ErrZeroPeriod] and [variant.ErrNoVariants].
func Compute(p *preset.Preset) (*Layout, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidPreset, "preset is nil")
	}
	if err := p.Grid.Validate(); err != nil {
		return nil, err
	}

	stream := rng.New(p.Render.SeedBits())
	l := &Layout{
		Width:         p.Width,
		Height:        p.Height,
		Render:        p.Render,
		TilePath:      p.Tile.Path,
		TileWidth:     p.Tile.Width,
		TileHeight:    p.Tile.Height,
		GridTransform: "none",
		Variants:      slices.Clone(p.Variants),
	}
	if p.Grid.Transform != nil && *p.Grid.Transform != "" {
		l.GridTransform = *p.Grid.Transform
	}
	l.GridRandomX, l.GridRandomY = stream.Pair()
	l.Tile = timeline.CompileTile(p.TileAnimations)
	l.Grid = timeline.CompileGrid(p.GridAnimations)

	bounds := grid.BoundsOf(p)
	assign := variant.New(p)
	l.Enumerated = grid.Count(p.Grid)

	for c := range grid.Enumerate(p.Grid) {
		x, y := grid.Position(p, c)
		if !bounds.Visible(x, y) {
			continue
		}
		lineClass, columnClass, err := grid.Classes(p.Grid, c)
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", c, err)
		}
		v, err := assign.Assign(c)
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", c, err)
		}
		ox, oy := grid.TransformOrigin(p, x, y)
		rx, ry := stream.Pair()
		l.Instances = append(l.Instances, TileInstance{
			Index:            len(l.Instances),
			Line:             c.Line,
			Column:           c.Column,
			LineClass:        lineClass,
			ColumnClass:      columnClass,
			X:                x,
			Y:                y,
			TransformOriginX: ox,
			TransformOriginY: oy,
			VariantIndex:     v,
			RandomX:          rx,
			RandomY:          ry,
			Delays:           timeline.DelayTerms(l.Tile.Group, v, lineClass, columnClass),
		})
	}

	l.Sheet = buildSheet(p, l)
	l.Root = rootProperties(p, l)
	return l, nil
}

func buildSheet(p *preset.Preset, l *Layout) stylesheet.Sheet {
	var s stylesheet.Sheet
	animated := l.Tile.Group.Animated()
	for i, v := range p.Variants {
		decls := variantDecls(v)
		if animated {
			decls = append(decls, timeline.AxisDecls(l.Tile.Group, timeline.AxisTile, i)...)
		}
		s.AddStyle(VariantSelector(i), decls...)
	}
	for _, kf := range l.Tile.Keyframes {
		s.AddKeyframes(kf.Name, kf.Frames...)
	}
	for _, kf := range l.Grid.Keyframes {
		s.AddKeyframes(kf.Name, kf.Frames...)
	}

	iterations := timeline.IterationCount(p.Render.Loop)
	s.AddStyle(GridSelector, l.Grid.Group.Bindings(iterations)...)
	s.AddStyle(TileSelector, l.Tile.Group.Bindings(iterations)...)

	if !animated {
		return s
	}
	for _, k := range distinct(l.Instances, func(t TileInstance) int { return t.LineClass }) {
		s.AddStyle(LineSelector(k), timeline.AxisDecls(l.Tile.Group, timeline.AxisLine, k)...)
	}
	for _, k := range distinct(l.Instances, func(t TileInstance) int { return t.ColumnClass }) {
		s.AddStyle(ColumnSelector(k), timeline.AxisDecls(l.Tile.Group, timeline.AxisColumn, k)...)
	}
	return s
}

func variantDecls(v preset.Variant) []stylesheet.Decl {
	return []stylesheet.Decl{
		stylesheet.D("fill", orNone(v.Fill)),
		stylesheet.D("stroke", orNone(v.Stroke)),
		stylesheet.D("stroke-width", stylesheet.Px(orZero(v.StrokeWidth))),
		stylesheet.D("opacity", stylesheet.Number(orZero(v.Opacity))),
		stylesheet.D("transform", orNone(v.Transform)),
	}
}

func rootProperties(p *preset.Preset, l *Layout) []stylesheet.Decl {
	return []stylesheet.Decl{
		stylesheet.D(timeline.IterationCountProperty, timeline.IterationCount(p.Render.Loop)),
		stylesheet.D("--animation-duration", stylesheet.Seconds(p.Render.Duration)),
		stylesheet.D("--view-width", stylesheet.Px(p.Width)),
		stylesheet.D("--view-height", stylesheet.Px(p.Height)),
		stylesheet.D("--grid-random-x", stylesheet.Number(l.GridRandomX)),
		stylesheet.D("--grid-random-y", stylesheet.Number(l.GridRandomY)),
		stylesheet.D("--tile-width", stylesheet.Px(p.Tile.Width)),
		stylesheet.D("--tile-height", stylesheet.Px(p.Tile.Height)),
		stylesheet.D("--tile-columnDeltaX", stylesheet.Px(p.Tile.ColumnDeltaX)),
		stylesheet.D("--tile-columnDeltaY", stylesheet.Px(p.Tile.ColumnDeltaY)),
		stylesheet.D("--tile-lineDeltaX", stylesheet.Px(p.Tile.LineDeltaX)),
		stylesheet.D("--tile-lineDeltaY", stylesheet.Px(p.Tile.LineDeltaY)),
		stylesheet.D("--lines", strconv.Itoa(p.Grid.Lines)),
		stylesheet.D("--columns", strconv.Itoa(p.Grid.Columns)),
		stylesheet.D("--variants", strconv.Itoa(len(p.Variants))),
	}
}

func distinct(instances []TileInstance, key func(TileInstance) int) []int {
	seen := map[int]bool{}
	var out []int
	for _, inst := range instances {
		k := key(inst)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

func orNone(s *string) string {
	if s == nil {
		return "none"
	}
	return *s
}

// orZero maps NaN to 0, matching how unset numeric style fields render.
func orZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
