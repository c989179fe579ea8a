package timeline

import (
	"fmt"

	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
)

// Axis names one of the three per-instance delay contributions.
type Axis string

const (
	AxisTile   Axis = "tile"
	AxisLine   Axis = "line"
	AxisColumn Axis = "column"
)

// DelayProperty returns the custom property carrying the axis delay of the
// i-th enabled tile animation.
func DelayProperty(i int, axis Axis) string {
	return fmt.Sprintf("--animation-%d-delay-per-%s", i, axis)
}

// Term is an opaque duration expression scaled by an integer.
type Term struct {
	Expr       string `json:"expr" msgpack:"expr"`
	Multiplier int    `json:"multiplier" msgpack:"multiplier"`
}

// CSS renders the term as calc(<expr> * <n>).
func (t Term) CSS() string {
	return fmt.Sprintf("calc(%s * %d)", t.Expr, t.Multiplier)
}

// Delay holds the three delay terms of one instance for one animation.
type Delay struct {
	PerTile   Term `json:"perTile" msgpack:"perTile"`
	PerLine   Term `json:"perLine" msgpack:"perLine"`
	PerColumn Term `json:"perColumn" msgpack:"perColumn"`
}

// DelayTerms returns one Delay per entry of a tile group for an instance
// with the given variant index and classes. Grid groups have no
// per-instance delay.
func DelayTerms(g Group, variantIndex, lineClass, columnClass int) []Delay {
	if g.Kind != KindTile || len(g.Entries) == 0 {
		return nil
	}
	out := make([]Delay, len(g.Entries))
	for i, e := range g.Entries {
		out[i] = Delay{
			PerTile:   Term{Expr: e.DelayPerTile, Multiplier: variantIndex},
			PerLine:   Term{Expr: e.DelayPerLine, Multiplier: lineClass},
			PerColumn: Term{Expr: e.DelayPerColumn, Multiplier: columnClass},
		}
	}
	return out
}

// AxisDecls returns the declarations assigning the axis contribution of
// every entry for the given multiplier, as used by the .tile-<i>,
// .line-<k> and .column-<k> rules.
func AxisDecls(g Group, axis Axis, multiplier int) []stylesheet.Decl {
	if g.Kind != KindTile {
		return nil
	}
	out := make([]stylesheet.Decl, len(g.Entries))
	for i, e := range g.Entries {
		expr := e.DelayPerTile
		switch axis {
		case AxisLine:
			expr = e.DelayPerLine
		case AxisColumn:
			expr = e.DelayPerColumn
		}
		out[i] = stylesheet.D(DelayProperty(i, axis), Term{Expr: expr, Multiplier: multiplier}.CSS())
	}
	return out
}
