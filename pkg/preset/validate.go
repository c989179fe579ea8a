package preset

import (
	"math"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

// Validate checks the structural constraints of p: known enum values, grid
// counts within [MaxTiles], non-negative class periods, and a strictly
// positive duration and frame rate.
//
// Opaque CSS strings are not inspected, and an empty variant list or a zero
// class period is not an error here.
func Validate(p *Preset) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidPreset, "preset is nil")
	}
	if !p.Grid.Order.Valid() {
		_, err := ParseOrder(string(p.Grid.Order))
		return err
	}
	if err := p.Grid.Validate(); err != nil {
		return err
	}
	if !positive(p.Render.Duration) {
		return errors.New(errors.ErrCodeInvalidPreset, "render.duration must be positive, got %v", p.Render.Duration)
	}
	if !positive(p.Render.FrameRate) {
		return errors.New(errors.ErrCodeInvalidPreset, "render.frameRate must be positive, got %v", p.Render.FrameRate)
	}
	for i, a := range p.TileAnimations {
		if !a.Composition.Valid() {
			return errors.New(errors.ErrCodeInvalidComposition, "tileAnimations[%d]: unknown composition %q", i, a.Composition)
		}
	}
	for i, a := range p.GridAnimations {
		if !a.Composition.Valid() {
			return errors.New(errors.ErrCodeInvalidComposition, "gridAnimations[%d]: unknown composition %q", i, a.Composition)
		}
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
