// Package layout assembles a preset into the instances and stylesheet a
// rendering surface consumes.
//
// [Compute] is a pure function of its preset. It runs the pipeline in a
// fixed order:
//
//  1. Check the grid bounds, seed the RNG stream and draw the grid random
//     pair, then compile the tile and grid timelines.
//  2. Enumerate grid coordinates in draw order. For each coordinate compute
//     the position and drop it when it is not visible; culled tiles draw no
//     random numbers and receive no variant.
//  3. Reduce the raw indices to line and column classes, assign the
//     variant, draw the tile random pair and record a [TileInstance] with
//     its delay terms.
//  4. Build the stylesheet: one rule per variant carrying the per-tile
//     delay, one keyframes block per enabled animation, the two binding
//     rules, then one delay rule per line class and column class present.
//
// A configuration error aborts the whole computation: no partial layout is
// returned. Layouts are immutable once returned and can be shared between
// goroutines.
package layout
