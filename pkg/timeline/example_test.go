package timeline_test

import (
	"fmt"

	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
)

func ExampleClock() {
	c := timeline.Clock{Duration: 1, FrameRate: 4}
	for f := 1; f <= c.TotalFrames(); f++ {
		fmt.Print(c.CurrentTime(f), " ")
	}
	fmt.Println()
	// Output: 0 0.25 0.5 0.75
}

func ExampleTerm_CSS() {
	fmt.Println(timeline.Term{Expr: "0.1s", Multiplier: 3}.CSS())
	// Output: calc(0.1s * 3)
}
