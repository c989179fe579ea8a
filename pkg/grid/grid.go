package grid

import (
	stderrors "errors"
	"fmt"
	"iter"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// ErrZeroPeriod is returned when a class period (lines or columns) is zero.
var ErrZeroPeriod = stderrors.New("class period is zero")

// Coord is a raw grid coordinate before class reduction.
type Coord struct {
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column" msgpack:"column"`
}

// String formats c as "line-column".
func (c Coord) String() string { return fmt.Sprintf("%d-%d", c.Line, c.Column) }

// LineRange returns the line indices for count lines in enumeration order.
func LineRange(count int, o preset.Order) []int {
	return axis(count, o.LinesDescending())
}

// ColumnRange returns the column indices for count columns in enumeration order.
func ColumnRange(count int, o preset.Order) []int {
	return axis(count, o.ColumnsDescending())
}

func axis(count int, descending bool) []int {
	if count <= 0 {
		return nil
	}
	out := make([]int, count)
	for i := range out {
		out[i] = step(i, count, descending)
	}
	return out
}

// Enumerate yields every coordinate of g in draw order: lines in the order of
// [LineRange], columns of [ColumnRange] as the inner loop. Coordinates are
// produced one at a time, so the cost of a pass is bounded by the caller.
func Enumerate(g preset.Grid) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		if g.CountX <= 0 || g.CountY <= 0 {
			return
		}
		linesDesc, columnsDesc := g.Order.LinesDescending(), g.Order.ColumnsDescending()
		for i := range g.CountY {
			line := step(i, g.CountY, linesDesc)
			for j := range g.CountX {
				if !yield(Coord{Line: line, Column: step(j, g.CountX, columnsDesc)}) {
					return
				}
			}
		}
	}
}

// Count returns the number of coordinates [Enumerate] yields for g.
// The caller bounds the product with [preset.Grid.TileCount] first.
func Count(g preset.Grid) int {
	if g.CountX <= 0 || g.CountY <= 0 {
		return 0
	}
	return g.CountX * g.CountY
}

func step(i, count int, descending bool) int {
	if descending {
		return count - 1 - i
	}
	return i
}

// Position returns the canvas position of c.
func Position(p *preset.Preset, c Coord) (x, y float64) {
	line, column := float64(c.Line), float64(c.Column)
	x = p.Grid.OriginX + column*p.Tile.ColumnDeltaX + line*p.Tile.LineDeltaX
	y = p.Grid.OriginY + column*p.Tile.ColumnDeltaY + line*p.Tile.LineDeltaY
	return x, y
}

// TransformOrigin returns the transform origin of a tile placed at (x, y).
// A nil origin offset falls back to the tile center.
func TransformOrigin(p *preset.Preset, x, y float64) (ox, oy float64) {
	dx, dy := p.Tile.Width/2, p.Tile.Height/2
	if p.Tile.TransformOriginX != nil {
		dx = *p.Tile.TransformOriginX
	}
	if p.Tile.TransformOriginY != nil {
		dy = *p.Tile.TransformOriginY
	}
	return x + dx, y + dy
}

// Class reduces v modulo period into [0, |period|).
func Class(v, period int) (int, error) {
	if period == 0 {
		return 0, zeroPeriod(v)
	}
	m := v % period
	if m < 0 {
		if period < 0 {
			m -= period
		} else {
			m += period
		}
	}
	return m, nil
}

func zeroPeriod(v int) error {
	return &errors.Error{
		Code:    errors.ErrCodeZeroPeriod,
		Message: fmt.Sprintf("cannot reduce index %d: grid lines and columns must be non-zero", v),
		Cause:   ErrZeroPeriod,
	}
}

// Classes returns the line and column classes of c under the grid periods.
func Classes(g preset.Grid, c Coord) (line, column int, err error) {
	if line, err = Class(c.Line, g.Lines); err != nil {
		return 0, 0, fmt.Errorf("grid.lines: %w", err)
	}
	if column, err = Class(c.Column, g.Columns); err != nil {
		return 0, 0, fmt.Errorf("grid.columns: %w", err)
	}
	return line, column, nil
}
