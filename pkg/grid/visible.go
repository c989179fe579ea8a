package grid

import "github.com/la-jarre-a-son/tilejar/pkg/preset"

// Bounds is the culling rectangle of a preset.
type Bounds struct {
	CanvasWidth  float64
	CanvasHeight float64
	SafeArea     float64
	TileWidth    float64
	TileHeight   float64
}

// BoundsOf returns the culling bounds of p.
func BoundsOf(p *preset.Preset) Bounds {
	return Bounds{
		CanvasWidth:  p.Width,
		CanvasHeight: p.Height,
		SafeArea:     p.SafeAreaSize,
		TileWidth:    p.Tile.Width,
		TileHeight:   p.Tile.Height,
	}
}

// Visible reports whether a tile at (x, y) is drawn.
//
// A NaN coordinate is never visible.
func (b Bounds) Visible(x, y float64) bool {
	s := b.SafeArea
	return x <= b.CanvasWidth+s &&
		y-b.TileHeight <= b.CanvasHeight+s &&
		x+b.TileWidth >= -s &&
		y+b.TileHeight >= -s
}
