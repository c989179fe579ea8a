package preset

// Default returns the built-in preset: a staggered hexagon grid with two
// alternating variants, a rippling tile animation and a slow grid drift.
//
// Every call returns a fresh value that the caller may modify.
func Default() *Preset {
	return &Preset{
		Version:      CurrentVersion,
		Width:        1920,
		Height:       1080,
		SafeAreaSize: 100,
		Render: Render{
			Width:     1920,
			Height:    1080,
			Duration:  4,
			FrameRate: 30,
			Loop:      true,
			Seed:      1,
		},
		Tile: Tile{
			Path:         "M25 0 L75 0 L100 43.3 L75 86.6 L25 86.6 L0 43.3 Z",
			Width:        100,
			Height:       86.6,
			LineDeltaX:   0,
			LineDeltaY:   86.6,
			ColumnDeltaX: 75,
			ColumnDeltaY: 43.3,
		},
		Grid: Grid{
			OriginX: -100,
			OriginY: -100,
			CountX:  30,
			CountY:  16,
			Lines:   2,
			Columns: 2,
			Order:   OrderDownRight,
		},
		Variants: []Variant{
			{Fill: String("#264653"), StrokeWidth: 0, Opacity: 1},
			{Fill: String("#2a9d8f"), StrokeWidth: 0, Opacity: 1},
		},
		VariantLineShift:   1,
		VariantColumnShift: 1,
		TileAnimations: []TileAnimation{
			{
				Enabled:        true,
				Duration:       "2s",
				Easing:         "ease-in-out",
				Composition:    CompositionReplace,
				DelayPerLine:   "0.1s",
				DelayPerColumn: "0.05s",
				DelayPerTile:   "0s",
				Steps: []TileStep{
					{Progress: 0, Opacity: Float(1)},
					{Progress: 0.5, Opacity: Float(0.4), Transform: String("scale(0.8)")},
					{Progress: 1, Opacity: Float(1)},
				},
			},
		},
		GridAnimations: []GridAnimation{
			{
				Enabled:     true,
				Name:        "drift",
				Duration:    "4s",
				Easing:      "linear",
				Composition: CompositionReplace,
				Steps: []GridStep{
					{Progress: 0, Transform: String("translate(0px, 0px)")},
					{Progress: 1, Transform: String("translate(150px, 0px)")},
				},
			},
		},
	}
}
