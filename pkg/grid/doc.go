// Package grid enumerates tile coordinates and decides which tiles are drawn.
//
// # Enumeration
//
// [Enumerate] produces the Cartesian product of [LineRange] and
// [ColumnRange], line-major with columns as the inner loop. The preset
// order controls each axis independently: "up-*" iterates lines from
// countY-1 down to 0, "*-left" iterates columns from countX-1 down to 0.
// The result is the draw order, so later tiles paint over earlier ones.
//
// # Positions and Classes
//
// [Position] maps raw indices to canvas coordinates using the four tile
// deltas. [Class] reduces a raw index modulo a period (the preset's lines
// or columns) to the class index used for style grouping. Negative values
// reduce to a non-negative class; a zero period is a configuration error.
//
// # Visibility
//
// [Bounds.Visible] keeps a tile when its footprint may intersect the canvas
// expanded by the safe area. The bottom edge test subtracts the tile height
// from y, so rows just below the canvas survive while the top edge test
// uses the usual y+height. Layouts depend on this exact rule.
package grid
