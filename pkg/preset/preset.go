package preset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

// CurrentVersion is the schema version written by this release.
const CurrentVersion = 1

// ExportSuffix is appended to a preset name when exporting it to a file.
const ExportSuffix = ".tile-jar-preset.json"

// =============================================================================
// Enumerations
// =============================================================================

// Order is the grid enumeration order. The first word is the line direction
// ("up" iterates lines from last to first), the second the column direction
// ("left" iterates columns from last to first).
type Order string

const (
	OrderUpRight   Order = "up-right"
	OrderUpLeft    Order = "up-left"
	OrderDownRight Order = "down-right"
	OrderDownLeft  Order = "down-left"
)

// Orders lists every valid [Order].
var Orders = []Order{OrderUpRight, OrderUpLeft, OrderDownRight, OrderDownLeft}

// LinesDescending reports whether lines are iterated from last to first.
func (o Order) LinesDescending() bool { return o == OrderUpRight || o == OrderUpLeft }

// ColumnsDescending reports whether columns are iterated from last to first.
func (o Order) ColumnsDescending() bool { return o == OrderUpLeft || o == OrderDownLeft }

// Valid reports whether o is a known order.
func (o Order) Valid() bool {
	switch o {
	case OrderUpRight, OrderUpLeft, OrderDownRight, OrderDownLeft:
		return true
	}
	return false
}

// ParseOrder converts s to an [Order].
func ParseOrder(s string) (Order, error) {
	o := Order(s)
	if !o.Valid() {
		return "", errors.New(errors.ErrCodeInvalidOrder, "unknown grid order %q (want up-right, up-left, down-right or down-left)", s)
	}
	return o, nil
}

// Composition is the CSS animation-composition of an animation.
type Composition string

const (
	CompositionReplace    Composition = "replace"
	CompositionAdd        Composition = "add"
	CompositionAccumulate Composition = "accumulate"
)

// Valid reports whether c is a known composition.
func (c Composition) Valid() bool {
	switch c {
	case CompositionReplace, CompositionAdd, CompositionAccumulate:
		return true
	}
	return false
}

// ParseComposition converts s to a [Composition].
func ParseComposition(s string) (Composition, error) {
	c := Composition(s)
	if !c.Valid() {
		return "", errors.New(errors.ErrCodeInvalidComposition, "unknown composition %q (want replace, add or accumulate)", s)
	}
	return c, nil
}

// =============================================================================
// Schema
// =============================================================================

// Preset is the root configuration of a tiling pattern.
//
// A Preset is treated as immutable for the duration of one computation.
// Use [Preset.Clone] before mutating a preset that may be shared.
type Preset struct {
	Version      int     `json:"version" toml:"version" yaml:"version" bson:"version"`
	Width        float64 `json:"width" toml:"width" yaml:"width" bson:"width"`
	Height       float64 `json:"height" toml:"height" yaml:"height" bson:"height"`
	SafeAreaSize float64 `json:"safeAreaSize" toml:"safeAreaSize" yaml:"safeAreaSize" bson:"safeAreaSize"`

	Render Render `json:"render" toml:"render" yaml:"render" bson:"render"`
	Tile   Tile   `json:"tile" toml:"tile" yaml:"tile" bson:"tile"`
	Grid   Grid   `json:"grid" toml:"grid" yaml:"grid" bson:"grid"`

	Variants           []Variant `json:"variants" toml:"variants" yaml:"variants" bson:"variants"`
	VariantLineShift   int       `json:"variantLineShift" toml:"variantLineShift" yaml:"variantLineShift" bson:"variantLineShift"`
	VariantColumnShift int       `json:"variantColumnShift" toml:"variantColumnShift" yaml:"variantColumnShift" bson:"variantColumnShift"`

	TileAnimations []TileAnimation `json:"tileAnimations" toml:"tileAnimations" yaml:"tileAnimations" bson:"tileAnimations"`
	GridAnimations []GridAnimation `json:"gridAnimations" toml:"gridAnimations" yaml:"gridAnimations" bson:"gridAnimations"`
}

// Render holds output and timing settings.
type Render struct {
	Width     float64 `json:"width" toml:"width" yaml:"width" bson:"width"`
	Height    float64 `json:"height" toml:"height" yaml:"height" bson:"height"`
	Duration  float64 `json:"duration" toml:"duration" yaml:"duration" bson:"duration"` // seconds
	FrameRate float64 `json:"frameRate" toml:"frameRate" yaml:"frameRate" bson:"frameRate"`
	Loop      bool    `json:"loop" toml:"loop" yaml:"loop" bson:"loop"`

	// Seed is any number. See [Render.SeedBits] for how it seeds the stream.
	Seed float64 `json:"seed" toml:"seed" yaml:"seed" bson:"seed"`
}

// SeedBits returns the random stream seed of r. Integral seeds map to their
// 64-bit two's complement value, so 1 and -1 are distinct seeds; any other
// value, fractional or beyond the int64 range, uses its IEEE 754 bits.
func (r Render) SeedBits() uint64 {
	s := r.Seed
	if s == math.Trunc(s) && s >= math.MinInt64 && s < math.MaxInt64 {
		return uint64(int64(s))
	}
	return math.Float64bits(s)
}

// Tile describes the tile shape and how instances are spaced.
type Tile struct {
	Path         string  `json:"path" toml:"path" yaml:"path" bson:"path"`
	Width        float64 `json:"width" toml:"width" yaml:"width" bson:"width"`
	Height       float64 `json:"height" toml:"height" yaml:"height" bson:"height"`
	LineDeltaX   float64 `json:"lineDeltaX" toml:"lineDeltaX" yaml:"lineDeltaX" bson:"lineDeltaX"`
	LineDeltaY   float64 `json:"lineDeltaY" toml:"lineDeltaY" yaml:"lineDeltaY" bson:"lineDeltaY"`
	ColumnDeltaX float64 `json:"columnDeltaX" toml:"columnDeltaX" yaml:"columnDeltaX" bson:"columnDeltaX"`
	ColumnDeltaY float64 `json:"columnDeltaY" toml:"columnDeltaY" yaml:"columnDeltaY" bson:"columnDeltaY"`

	// TransformOriginX and TransformOriginY are offsets from the tile
	// position. Nil means the tile center.
	TransformOriginX *float64 `json:"transformOriginX" toml:"transformOriginX" yaml:"transformOriginX" bson:"transformOriginX"`
	TransformOriginY *float64 `json:"transformOriginY" toml:"transformOriginY" yaml:"transformOriginY" bson:"transformOriginY"`
}

// Grid controls enumeration. CountX and CountY are the tile totals, while
// Lines and Columns are the periods used to group tiles into classes.
type Grid struct {
	OriginX   float64 `json:"originX" toml:"originX" yaml:"originX" bson:"originX"`
	OriginY   float64 `json:"originY" toml:"originY" yaml:"originY" bson:"originY"`
	CountX    int     `json:"countX" toml:"countX" yaml:"countX" bson:"countX"`
	CountY    int     `json:"countY" toml:"countY" yaml:"countY" bson:"countY"`
	Lines     int     `json:"lines" toml:"lines" yaml:"lines" bson:"lines"`
	Columns   int     `json:"columns" toml:"columns" yaml:"columns" bson:"columns"`
	Order     Order   `json:"order" toml:"order" yaml:"order" bson:"order"`
	Transform *string `json:"transform" toml:"transform" yaml:"transform" bson:"transform"`
}

// MaxTiles bounds countX * countY. Layouts visit every enumerated tile, so
// larger grids are rejected rather than computed.
const MaxTiles = 1 << 22

// TileCount returns countX * countY. It fails with INVALID_PRESET when a count
// is negative or the product exceeds [MaxTiles].
func (g Grid) TileCount() (int, error) {
	if g.CountX < 0 || g.CountY < 0 {
		return 0, errors.New(errors.ErrCodeInvalidPreset, "grid.countX and grid.countY must not be negative, got %d x %d", g.CountX, g.CountY)
	}
	if g.CountX > 0 && g.CountY > MaxTiles/g.CountX {
		return 0, errors.New(errors.ErrCodeInvalidPreset, "grid of %d x %d tiles exceeds the maximum of %d", g.CountX, g.CountY, MaxTiles)
	}
	return g.CountX * g.CountY, nil
}

// Validate checks the grid's counts with [Grid.TileCount] and rejects
// negative class periods. A zero period is left to the layout, which fails
// only when a visible tile needs it.
func (g Grid) Validate() error {
	if _, err := g.TileCount(); err != nil {
		return err
	}
	if g.Lines < 0 || g.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "grid.lines and grid.columns must not be negative, got %d and %d", g.Lines, g.Columns)
	}
	return nil
}

// Variant is a static style applied to every tile assigned to it.
type Variant struct {
	Fill        *string `json:"fill" toml:"fill" yaml:"fill" bson:"fill"`
	Stroke      *string `json:"stroke" toml:"stroke" yaml:"stroke" bson:"stroke"`
	StrokeWidth float64 `json:"strokeWidth" toml:"strokeWidth" yaml:"strokeWidth" bson:"strokeWidth"`
	Opacity     float64 `json:"opacity" toml:"opacity" yaml:"opacity" bson:"opacity"`
	Transform   *string `json:"transform" toml:"transform" yaml:"transform" bson:"transform"`
}

// TileStep is one keyframe of a tile animation. Nil fields are not animated.
type TileStep struct {
	Progress    float64  `json:"progress" toml:"progress" yaml:"progress" bson:"progress"` // 0..1
	Fill        *string  `json:"fill" toml:"fill" yaml:"fill" bson:"fill"`
	Stroke      *string  `json:"stroke" toml:"stroke" yaml:"stroke" bson:"stroke"`
	StrokeWidth *float64 `json:"strokeWidth" toml:"strokeWidth" yaml:"strokeWidth" bson:"strokeWidth"`
	Opacity     *float64 `json:"opacity" toml:"opacity" yaml:"opacity" bson:"opacity"`
	Transform   *string  `json:"transform" toml:"transform" yaml:"transform" bson:"transform"`
}

// TileAnimation animates every tile instance with per-instance delays.
// Duration, Easing and the delay expressions are opaque CSS strings.
type TileAnimation struct {
	Enabled        bool        `json:"enabled" toml:"enabled" yaml:"enabled" bson:"enabled"`
	Duration       string      `json:"duration" toml:"duration" yaml:"duration" bson:"duration"`
	Easing         string      `json:"easing" toml:"easing" yaml:"easing" bson:"easing"`
	Composition    Composition `json:"composition" toml:"composition" yaml:"composition" bson:"composition"`
	DelayPerLine   string      `json:"delayPerLine" toml:"delayPerLine" yaml:"delayPerLine" bson:"delayPerLine"`
	DelayPerColumn string      `json:"delayPerColumn" toml:"delayPerColumn" yaml:"delayPerColumn" bson:"delayPerColumn"`
	DelayPerTile   string      `json:"delayPerTile" toml:"delayPerTile" yaml:"delayPerTile" bson:"delayPerTile"`
	Steps          []TileStep  `json:"steps" toml:"steps" yaml:"steps" bson:"steps"`
}

// GridStep is one keyframe of a grid animation.
type GridStep struct {
	Progress  float64 `json:"progress" toml:"progress" yaml:"progress" bson:"progress"`
	Transform *string `json:"transform" toml:"transform" yaml:"transform" bson:"transform"`
}

// GridAnimation animates the whole grid group.
type GridAnimation struct {
	Enabled     bool        `json:"enabled" toml:"enabled" yaml:"enabled" bson:"enabled"`
	Name        string      `json:"name" toml:"name" yaml:"name" bson:"name"`
	Duration    string      `json:"duration" toml:"duration" yaml:"duration" bson:"duration"`
	Easing      string      `json:"easing" toml:"easing" yaml:"easing" bson:"easing"`
	Composition Composition `json:"composition" toml:"composition" yaml:"composition" bson:"composition"`
	Steps       []GridStep  `json:"steps" toml:"steps" yaml:"steps" bson:"steps"`
}

// =============================================================================
// Helpers
// =============================================================================

// String returns a pointer to s, for building nullable fields.
func String(s string) *string { return &s }

// Float returns a pointer to f, for building nullable fields.
func Float(f float64) *float64 { return &f }

// TotalFrames returns the number of frames produced by an export:
// duration times frame rate, truncated toward zero.
func (p *Preset) TotalFrames() int {
	n := p.Render.Duration * p.Render.FrameRate
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// Clone returns a deep copy of p.
func (p *Preset) Clone() *Preset {
	if p == nil {
		return nil
	}
	out := *p
	out.Tile.TransformOriginX = cloneFloat(p.Tile.TransformOriginX)
	out.Tile.TransformOriginY = cloneFloat(p.Tile.TransformOriginY)
	out.Grid.Transform = cloneString(p.Grid.Transform)

	if p.Variants != nil {
		out.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			out.Variants[i] = Variant{
				Fill:        cloneString(v.Fill),
				Stroke:      cloneString(v.Stroke),
				StrokeWidth: v.StrokeWidth,
				Opacity:     v.Opacity,
				Transform:   cloneString(v.Transform),
			}
		}
	}
	if p.TileAnimations != nil {
		out.TileAnimations = make([]TileAnimation, len(p.TileAnimations))
		for i, a := range p.TileAnimations {
			a.Steps = cloneTileSteps(a.Steps)
			out.TileAnimations[i] = a
		}
	}
	if p.GridAnimations != nil {
		out.GridAnimations = make([]GridAnimation, len(p.GridAnimations))
		for i, a := range p.GridAnimations {
			if a.Steps != nil {
				steps := make([]GridStep, len(a.Steps))
				for j, s := range a.Steps {
					steps[j] = GridStep{Progress: s.Progress, Transform: cloneString(s.Transform)}
				}
				a.Steps = steps
			}
			out.GridAnimations[i] = a
		}
	}
	return &out
}

func cloneTileSteps(steps []TileStep) []TileStep {
	if steps == nil {
		return nil
	}
	out := make([]TileStep, len(steps))
	for i, s := range steps {
		out[i] = TileStep{
			Progress:    s.Progress,
			Fill:        cloneString(s.Fill),
			Stroke:      cloneString(s.Stroke),
			StrokeWidth: cloneFloat(s.StrokeWidth),
			Opacity:     cloneFloat(s.Opacity),
			Transform:   cloneString(s.Transform),
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Hash returns the hex SHA-256 of the canonical JSON encoding of p.
// Two presets with the same hash produce identical layouts.
func (p *Preset) Hash() string {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(p)
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// EnabledTileAnimations returns the enabled tile animations in order.
func (p *Preset) EnabledTileAnimations() []TileAnimation {
	var out []TileAnimation
	for _, a := range p.TileAnimations {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

// EnabledGridAnimations returns the enabled grid animations in order.
func (p *Preset) EnabledGridAnimations() []GridAnimation {
	var out []GridAnimation
	for _, a := range p.GridAnimations {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

// ExportFileName returns the file name used when exporting the preset name.
func ExportFileName(name string) string {
	return name + ExportSuffix
}
