package rng

import "testing"

func TestDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float(), b.Float(); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for i := 0; i < 10; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	if same == 10 {
		t.Error("different seeds produced identical streams")
	}
}

func TestRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		if f := s.Float(); f < 0 || f >= 1 {
			t.Fatalf("Float() = %v, out of [0,1)", f)
		}
	}
}

func TestPairOrder(t *testing.T) {
	a, b := New(9), New(9)
	x, y := a.Pair()
	if x != b.Float() || y != b.Float() {
		t.Error("Pair must consume x then y")
	}
	if a.Float() != b.Float() {
		t.Error("Pair must consume exactly two floats")
	}
}
