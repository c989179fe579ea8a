package variant

import (
	stderrors "errors"
	"testing"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/grid"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		name                              string
		line, column, lineShift, colShift int
		count                             int
		want                              int
	}{
		{"origin", 0, 0, 1, 1, 3, 0},
		{"diagonal", 2, 2, 1, 1, 3, 1},
		{"line only", 4, 9, 1, 0, 3, 1},
		{"negative shift", 1, 0, -1, 0, 3, 2},
		{"single variant", 7, 11, 5, 3, 1, 0},
		{"wide shifts", 3, 5, 7, 11, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Index(tt.line, tt.column, tt.lineShift, tt.colShift, tt.count)
			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Index() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndexInRange(t *testing.T) {
	for line := -5; line <= 5; line++ {
		for column := -5; column <= 5; column++ {
			got, err := Index(line, column, 3, -2, 4)
			if err != nil {
				t.Fatal(err)
			}
			if got < 0 || got >= 4 {
				t.Fatalf("Index(%d, %d) = %d, out of range", line, column, got)
			}
		}
	}
}

func TestIndexNoVariants(t *testing.T) {
	_, err := Index(0, 0, 1, 1, 0)
	if !stderrors.Is(err, ErrNoVariants) {
		t.Errorf("Index() error = %v, want ErrNoVariants", err)
	}
	if !errors.Is(err, errors.ErrCodeNoVariants) {
		t.Errorf("error code = %v, want NO_VARIANTS", errors.GetCode(err))
	}
}

func TestAssigner(t *testing.T) {
	p := preset.Default()
	p.VariantLineShift = 2
	p.VariantColumnShift = 1
	p.Variants = append(p.Variants, preset.Variant{Opacity: 1})

	a := New(p)
	got, err := a.Assign(grid.Coord{Line: 1, Column: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Assign() = %d, want 1", got)
	}

	p.Variants = nil
	if _, err := New(p).Assign(grid.Coord{}); !stderrors.Is(err, ErrNoVariants) {
		t.Errorf("Assign() with no variants error = %v", err)
	}
}
