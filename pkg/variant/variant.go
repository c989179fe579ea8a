// Package variant assigns style variants to grid coordinates.
//
// The assignment is a double modulo over the raw (unreduced) indices:
//
//	index = (line*lineShift + column*columnShift) mod len(variants)
//
// The result is always in [0, len(variants)), including for negative shifts.
// An empty variant list is a configuration error, never a silent zero.
package variant

import (
	stderrors "errors"
	"fmt"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/grid"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

// ErrNoVariants is returned when a preset defines no variants.
var ErrNoVariants = stderrors.New("preset has no variants")

// Index returns the variant index for the given raw coordinate.
func Index(line, column, lineShift, columnShift, count int) (int, error) {
	if count == 0 {
		return 0, &errors.Error{
			Code:    errors.ErrCodeNoVariants,
			Message: "at least one variant is required to lay out tiles",
			Cause:   ErrNoVariants,
		}
	}
	v, err := grid.Class(line*lineShift+column*columnShift, count)
	if err != nil {
		return 0, fmt.Errorf("variant index: %w", err)
	}
	return v, nil
}

// Assigner binds the shifts and variant count of a preset.
type Assigner struct {
	lineShift   int
	columnShift int
	count       int
}

// New returns an Assigner for p.
func New(p *preset.Preset) Assigner {
	return Assigner{
		lineShift:   p.VariantLineShift,
		columnShift: p.VariantColumnShift,
		count:       len(p.Variants),
	}
}

// Assign returns the variant index of c.
func (a Assigner) Assign(c grid.Coord) (int, error) {
	return Index(c.Line, c.Column, a.lineShift, a.columnShift, a.count)
}
