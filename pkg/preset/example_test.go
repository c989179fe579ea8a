package preset_test

import (
	"fmt"
	"strings"

	"github.com/la-jarre-a-son/tilejar/pkg/preset"
)

func ExampleRead() {
	p, err := preset.Read(strings.NewReader(`{"grid": {"countX": 4, "countY": 2, "lines": 2, "columns": 2, "order": "up-right"}}`), preset.FormatJSON)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Grid.CountX*p.Grid.CountY, p.Grid.Order, len(p.Variants))
	// Output: 8 up-right 2
}

func ExamplePreset_TotalFrames() {
	p := preset.Default()
	p.Render.Duration = 2
	p.Render.FrameRate = 24
	fmt.Println(p.TotalFrames())
	// Output: 48
}
