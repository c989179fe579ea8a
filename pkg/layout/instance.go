package layout

import (
	"strconv"

	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
)

// TileInstance is one visible tile.
type TileInstance struct {
	// Index is the position among visible tiles in draw order.
	Index int `json:"index" msgpack:"index"`

	// Line and Column are the raw enumeration indices.
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column" msgpack:"column"`

	LineClass   int `json:"lineClass" msgpack:"lineClass"`
	ColumnClass int `json:"columnClass" msgpack:"columnClass"`

	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`

	TransformOriginX float64 `json:"transformOriginX" msgpack:"transformOriginX"`
	TransformOriginY float64 `json:"transformOriginY" msgpack:"transformOriginY"`

	VariantIndex int     `json:"variant" msgpack:"variant"`
	RandomX      float64 `json:"randomX" msgpack:"randomX"`
	RandomY      float64 `json:"randomY" msgpack:"randomY"`

	// Delays holds the delay terms of each tile animation, in the order of
	// the compiled tile group. The per-tile term is scaled by VariantIndex.
	Delays []timeline.Delay `json:"delays,omitempty" msgpack:"delays,omitempty"`
}

// VariantSelector returns the selector of the i-th variant rule.
func VariantSelector(i int) string { return ".tile-" + strconv.Itoa(i) }

// LineSelector returns the selector of a line class rule.
func LineSelector(k int) string { return ".line-" + strconv.Itoa(k) }

// ColumnSelector returns the selector of a column class rule.
func ColumnSelector(k int) string { return ".column-" + strconv.Itoa(k) }

// Classes returns the space-separated class list of the instance.
func (t TileInstance) Classes() string {
	return TileClass +
		" line-" + strconv.Itoa(t.LineClass) +
		" column-" + strconv.Itoa(t.ColumnClass) +
		" tile-" + strconv.Itoa(t.VariantIndex)
}

// Properties returns the inline custom properties of the instance.
func (t TileInstance) Properties() []stylesheet.Decl {
	return []stylesheet.Decl{
		stylesheet.D("--tile-i", strconv.Itoa(t.Column)),
		stylesheet.D("--tile-j", strconv.Itoa(t.Line)),
		stylesheet.D("--tile-x", stylesheet.Px(t.X)),
		stylesheet.D("--tile-y", stylesheet.Px(t.Y)),
		stylesheet.D("--tile-line", strconv.Itoa(t.LineClass)),
		stylesheet.D("--tile-column", strconv.Itoa(t.ColumnClass)),
		stylesheet.D("--tile-variant", strconv.Itoa(t.VariantIndex)),
		stylesheet.D("--tile-random-x", stylesheet.Number(t.RandomX)),
		stylesheet.D("--tile-random-y", stylesheet.Number(t.RandomY)),
		stylesheet.D("transform-origin", stylesheet.Px(t.TransformOriginX)+" "+stylesheet.Px(t.TransformOriginY)),
	}
}
