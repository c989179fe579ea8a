package preset

import (
	"math"
	"testing"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in       string
		want     Order
		linesRev bool
		colsRev  bool
		wantErr  bool
	}{
		{"up-right", OrderUpRight, true, false, false},
		{"up-left", OrderUpLeft, true, true, false},
		{"down-right", OrderDownRight, false, false, false},
		{"down-left", OrderDownLeft, false, true, false},
		{"sideways", "", false, false, true},
		{"", "", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidOrder) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidOrder)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseOrder(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.LinesDescending() != tt.linesRev {
				t.Errorf("LinesDescending() = %v, want %v", got.LinesDescending(), tt.linesRev)
			}
			if got.ColumnsDescending() != tt.colsRev {
				t.Errorf("ColumnsDescending() = %v, want %v", got.ColumnsDescending(), tt.colsRev)
			}
		})
	}
}

func TestParseComposition(t *testing.T) {
	for _, s := range []string{"replace", "add", "accumulate"} {
		if _, err := ParseComposition(s); err != nil {
			t.Errorf("ParseComposition(%q) error = %v", s, err)
		}
	}
	_, err := ParseComposition("multiply")
	if !errors.Is(err, errors.ErrCodeInvalidComposition) {
		t.Errorf("ParseComposition(multiply) error = %v, want INVALID_COMPOSITION", err)
	}
}

func TestTotalFrames(t *testing.T) {
	tests := []struct {
		duration, rate float64
		want           int
	}{
		{4, 30, 120},
		{1, 5, 5},
		{0.5, 25, 12},
		{0, 30, 0},
		{2, -1, 0},
	}
	for _, tt := range tests {
		p := &Preset{Render: Render{Duration: tt.duration, FrameRate: tt.rate}}
		if got := p.TotalFrames(); got != tt.want {
			t.Errorf("TotalFrames(%v*%v) = %d, want %d", tt.duration, tt.rate, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := Default()
	p.Tile.TransformOriginX = Float(10)
	c := p.Clone()

	*c.Variants[0].Fill = "#000000"
	*c.Tile.TransformOriginX = 99
	c.TileAnimations[0].Steps[0].Opacity = Float(0)
	*c.GridAnimations[0].Steps[1].Transform = "none"

	if *p.Variants[0].Fill != "#264653" {
		t.Errorf("variant fill leaked into original: %s", *p.Variants[0].Fill)
	}
	if *p.Tile.TransformOriginX != 10 {
		t.Errorf("transform origin leaked into original: %v", *p.Tile.TransformOriginX)
	}
	if *p.TileAnimations[0].Steps[0].Opacity != 1 {
		t.Errorf("tile step leaked into original")
	}
	if *p.GridAnimations[0].Steps[1].Transform == "none" {
		t.Errorf("grid step leaked into original")
	}
	if p.Hash() == c.Hash() {
		t.Error("modified clone should hash differently")
	}
}

func TestHashStable(t *testing.T) {
	a, b := Default(), Default()
	if a.Hash() != b.Hash() {
		t.Error("identical presets should hash identically")
	}
	b.Render.Seed = 2
	if a.Hash() == b.Hash() {
		t.Error("seed change should change hash")
	}
	if len(a.Hash()) != 64 {
		t.Errorf("hash length = %d, want 64", len(a.Hash()))
	}
}

func TestEnabledAnimations(t *testing.T) {
	p := Default()
	p.TileAnimations = append(p.TileAnimations, TileAnimation{Enabled: false, Duration: "9s"}, TileAnimation{Enabled: true, Duration: "3s"})
	got := p.EnabledTileAnimations()
	if len(got) != 2 || got[1].Duration != "3s" {
		t.Errorf("EnabledTileAnimations() = %+v", got)
	}
	p.GridAnimations[0].Enabled = false
	if got := p.EnabledGridAnimations(); len(got) != 0 {
		t.Errorf("EnabledGridAnimations() = %+v, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Preset)
		code   errors.Code
	}{
		{"default", func(*Preset) {}, ""},
		{"empty variants accepted", func(p *Preset) { p.Variants = nil }, ""},
		{"zero period accepted", func(p *Preset) { p.Grid.Lines = 0 }, ""},
		{"opaque strings untouched", func(p *Preset) { p.TileAnimations[0].Duration = "not a duration" }, ""},
		{"bad order", func(p *Preset) { p.Grid.Order = "diagonal" }, errors.ErrCodeInvalidOrder},
		{"zero duration", func(p *Preset) { p.Render.Duration = 0 }, errors.ErrCodeInvalidPreset},
		{"negative frame rate", func(p *Preset) { p.Render.FrameRate = -1 }, errors.ErrCodeInvalidPreset},
		{"bad tile composition", func(p *Preset) { p.TileAnimations[0].Composition = "mix" }, errors.ErrCodeInvalidComposition},
		{"bad grid composition", func(p *Preset) { p.GridAnimations[0].Composition = "" }, errors.ErrCodeInvalidComposition},
		{"max tiles accepted", func(p *Preset) { p.Grid.CountX, p.Grid.CountY = MaxTiles, 1 }, ""},
		{"too many tiles", func(p *Preset) { p.Grid.CountX, p.Grid.CountY = 1<<24, 1<<24 }, errors.ErrCodeInvalidPreset},
		{"tile count overflow", func(p *Preset) { p.Grid.CountX, p.Grid.CountY = math.MaxInt, 2 }, errors.ErrCodeInvalidPreset},
		{"negative count", func(p *Preset) { p.Grid.CountX = -1 }, errors.ErrCodeInvalidPreset},
		{"negative lines", func(p *Preset) { p.Grid.Lines = -2 }, errors.ErrCodeInvalidPreset},
		{"negative columns", func(p *Preset) { p.Grid.Columns = -1 }, errors.ErrCodeInvalidPreset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := Validate(p)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestSeedBits(t *testing.T) {
	tests := []struct {
		seed float64
		want uint64
	}{
		{1, 1},
		{0, 0},
		{-1, math.MaxUint64},
		{1 << 40, 1 << 40},
		{0.5, math.Float64bits(0.5)},
		{-2.25, math.Float64bits(-2.25)},
		{1e19, math.Float64bits(1e19)},
	}
	for _, tt := range tests {
		if got := (Render{Seed: tt.seed}).SeedBits(); got != tt.want {
			t.Errorf("SeedBits(%v) = %#x, want %#x", tt.seed, got, tt.want)
		}
	}
	if (Render{Seed: 0.5}).SeedBits() == (Render{Seed: 1.5}).SeedBits() {
		t.Error("fractional seeds must not collapse onto one another")
	}
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName("waves"); got != "waves.tile-jar-preset.json" {
		t.Errorf("ExportFileName() = %q", got)
	}
}
