// Package rng provides the deterministic float stream used by layouts.
//
// A [Stream] seeded with the same value always yields the same sequence, so
// a preset renders identically on every run. The stream is consumed in a
// fixed order by the layout assembler: the grid pair first, then one pair
// per visible tile in enumeration order. A Stream is not safe for
// concurrent use; each layout computation owns its own.
package rng

import "math/rand/v2"

// Stream is a seeded sequence of floats in [0, 1).
type Stream struct {
	r *rand.Rand
}

// New returns a stream seeded with seed.
func New(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Float returns the next float in [0, 1).
func (s *Stream) Float() float64 {
	return s.r.Float64()
}

// Pair draws two floats, x first.
func (s *Stream) Pair() (x, y float64) {
	x = s.Float()
	y = s.Float()
	return x, y
}
