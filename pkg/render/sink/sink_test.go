package sink

import (
	"testing"

	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// smallLayout is a 2x2 grid of 10px squares on a 20x20 canvas.
func smallLayout(t *testing.T) *layout.Layout {
	t.Helper()
	p := preset.Default()
	p.Width, p.Height, p.SafeAreaSize = 20, 20, 100
	p.Render.Width, p.Render.Height = 40, 40
	p.Tile = preset.Tile{Path: "M0 0h10v10H0z", Width: 10, Height: 10, ColumnDeltaX: 10, LineDeltaY: 10}
	p.Grid = preset.Grid{CountX: 2, CountY: 2, Lines: 1, Columns: 1, Order: preset.OrderDownRight}
	l, err := layout.Compute(p)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return l
}
