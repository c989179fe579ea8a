package timeline

import (
	"math"
	"slices"
	"testing"

	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
)

func tileAnims() []preset.TileAnimation {
	return []preset.TileAnimation{
		{
			Enabled: true, Duration: "2s", Easing: "linear", Composition: preset.CompositionReplace,
			DelayPerLine: "0.1s", DelayPerColumn: "0.2s", DelayPerTile: "0.01s",
			Steps: []preset.TileStep{
				{Progress: 0, Opacity: preset.Float(0)},
				{Progress: 0.5, Fill: preset.String("red"), StrokeWidth: preset.Float(0), Transform: preset.String("scale(2)")},
				{Progress: 1},
			},
		},
		{Enabled: false, Duration: "9s"},
		{
			Enabled: true, Duration: "3s", Easing: "ease", Composition: preset.CompositionAdd,
			DelayPerLine: "1s", DelayPerColumn: "2s", DelayPerTile: "3s",
			Steps: []preset.TileStep{{Progress: 0.25, Stroke: preset.String("#000"), Fill: preset.String("")}},
		},
	}
}

func TestCompileTileNamesEnabledOnly(t *testing.T) {
	c := CompileTile(tileAnims())

	if got := c.Group.Names(); !slices.Equal(got, []string{"tile-animation-0", "tile-animation-1"}) {
		t.Errorf("Names() = %v", got)
	}
	if len(c.Keyframes) != 2 {
		t.Fatalf("len(Keyframes) = %d, want 2", len(c.Keyframes))
	}
	if c.Group.Entries[1].Duration != "3s" {
		t.Errorf("second enabled entry = %+v, want the 3s animation", c.Group.Entries[1])
	}
}

func TestCompileTileFramesAreSparse(t *testing.T) {
	kf := CompileTile(tileAnims()).Keyframes[0]

	want := []stylesheet.Frame{
		{Selector: "0%", Decls: []stylesheet.Decl{stylesheet.D("opacity", "0")}},
		{Selector: "50%", Decls: []stylesheet.Decl{
			stylesheet.D("fill", "red"),
			stylesheet.D("stroke-width", "0px"),
			stylesheet.D("transform", "scale(2)"),
		}},
		{Selector: "100%"},
	}
	if len(kf.Frames) != len(want) {
		t.Fatalf("len(Frames) = %d, want %d", len(kf.Frames), len(want))
	}
	for i := range want {
		if kf.Frames[i].Selector != want[i].Selector {
			t.Errorf("frame %d selector = %q, want %q", i, kf.Frames[i].Selector, want[i].Selector)
		}
		if !slices.Equal(kf.Frames[i].Decls, want[i].Decls) {
			t.Errorf("frame %d decls = %v, want %v", i, kf.Frames[i].Decls, want[i].Decls)
		}
	}

	// An empty string override is treated as absent.
	second := CompileTile(tileAnims()).Keyframes[1].Frames[0]
	if !slices.Equal(second.Decls, []stylesheet.Decl{stylesheet.D("stroke", "#000")}) {
		t.Errorf("frame decls = %v", second.Decls)
	}
}

func TestCompileGrid(t *testing.T) {
	c := CompileGrid([]preset.GridAnimation{
		{Enabled: false, Name: "off"},
		{Enabled: true, Name: "spin", Duration: "4s", Easing: "linear", Composition: preset.CompositionAccumulate,
			Steps: []preset.GridStep{{Progress: 0}, {Progress: 1, Transform: preset.String("rotate(1turn)")}}},
	})

	if c.Group.Kind != KindGrid || len(c.Group.Entries) != 1 {
		t.Fatalf("Group = %+v", c.Group)
	}
	if c.Keyframes[0].Name != "grid-animation-0" {
		t.Errorf("Name = %q", c.Keyframes[0].Name)
	}
	if len(c.Keyframes[0].Frames[0].Decls) != 0 {
		t.Errorf("frame without transform should be empty: %v", c.Keyframes[0].Frames[0].Decls)
	}
	if got := c.Keyframes[0].Frames[1].Decls; !slices.Equal(got, []stylesheet.Decl{stylesheet.D("transform", "rotate(1turn)")}) {
		t.Errorf("frame decls = %v", got)
	}
}

func TestBindingsEmptyGroup(t *testing.T) {
	g := CompileTile(nil).Group
	if g.Animated() {
		t.Fatal("empty group should not be animated")
	}
	decls := g.Bindings("infinite")
	if decls[0] != stylesheet.D("animation-name", "none") {
		t.Errorf("animation-name = %v", decls[0])
	}
	for _, d := range decls[1:] {
		if d.Value != "initial" {
			t.Errorf("%s = %q, want initial", d.Property, d.Value)
		}
	}
}

func TestBindingsTile(t *testing.T) {
	rule := stylesheet.Rule{Decls: CompileTile(tileAnims()).Group.Bindings("1")}

	tests := map[string]string{
		"animation-name":            "tile-animation-0,  tile-animation-1",
		"animation-duration":        "2s,  3s",
		"animation-timing-function": "linear,  ease",
		"animation-composition":     "replace,  add",
		"animation-iteration-count": "1,  1",
		"animation-delay": "calc(var(--animation-0-delay-per-tile, 0s) + var(--animation-0-delay-per-line, 0s) + var(--animation-0-delay-per-column, 0s) + var(--animation-current-time, 0s))" +
			",  calc(var(--animation-1-delay-per-tile, 0s) + var(--animation-1-delay-per-line, 0s) + var(--animation-1-delay-per-column, 0s) + var(--animation-current-time, 0s))",
	}
	for prop, want := range tests {
		if got, _ := rule.Value(prop); got != want {
			t.Errorf("%s = %q, want %q", prop, got, want)
		}
	}
}

func TestBindingsGridDelayIsOffsetOnly(t *testing.T) {
	g := Group{Kind: KindGrid, Entries: []Entry{{Name: "grid-animation-0"}, {Name: "grid-animation-1"}}}
	rule := stylesheet.Rule{Decls: g.Bindings("infinite")}
	want := "var(--animation-current-time, 0s),  var(--animation-current-time, 0s)"
	if got, _ := rule.Value("animation-delay"); got != want {
		t.Errorf("animation-delay = %q, want %q", got, want)
	}
}

func TestDelayTerms(t *testing.T) {
	g := CompileTile(tileAnims()).Group
	delays := DelayTerms(g, 7, 1, 2)
	if len(delays) != 2 {
		t.Fatalf("len(DelayTerms) = %d, want 2", len(delays))
	}
	d := delays[0]
	if d.PerTile != (Term{"0.01s", 7}) || d.PerLine != (Term{"0.1s", 1}) || d.PerColumn != (Term{"0.2s", 2}) {
		t.Errorf("DelayTerms()[0] = %+v", d)
	}
	if got := d.PerLine.CSS(); got != "calc(0.1s * 1)" {
		t.Errorf("CSS() = %q", got)
	}

	if DelayTerms(Group{Kind: KindGrid, Entries: []Entry{{}}}, 1, 1, 1) != nil {
		t.Error("grid groups have no per-instance delay")
	}
	if DelayTerms(Group{Kind: KindTile}, 1, 1, 1) != nil {
		t.Error("a tile group without entries has no per-instance delay")
	}
}

func TestDelayLinearity(t *testing.T) {
	g := CompileTile(tileAnims()).Group
	a := DelayTerms(g, 0, 1, 0)[0].PerLine
	b := DelayTerms(g, 0, 4, 0)[0].PerLine
	if a.Expr != b.Expr || b.Multiplier-a.Multiplier != 3 {
		t.Errorf("line delay should differ by exactly 3 x expr: %+v vs %+v", a, b)
	}
}

func TestAxisDecls(t *testing.T) {
	g := CompileTile(tileAnims()).Group
	got := AxisDecls(g, AxisColumn, 3)
	want := []stylesheet.Decl{
		stylesheet.D("--animation-0-delay-per-column", "calc(0.2s * 3)"),
		stylesheet.D("--animation-1-delay-per-column", "calc(2s * 3)"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("AxisDecls() = %v, want %v", got, want)
	}
	if got := AxisDecls(g, AxisTile, 0); got[1].Value != "calc(3s * 0)" {
		t.Errorf("tile axis = %v", got)
	}
}

func TestClock(t *testing.T) {
	c := Clock{Duration: 2, FrameRate: 5}
	if c.TotalFrames() != 10 {
		t.Fatalf("TotalFrames() = %d, want 10", c.TotalFrames())
	}
	if got := c.CurrentTime(1); got != 0 {
		t.Errorf("CurrentTime(1) = %v, want 0", got)
	}
	if got, want := c.CurrentTime(10), 2.0*9/10; math.Abs(got-want) > 1e-12 {
		t.Errorf("CurrentTime(10) = %v, want %v", got, want)
	}
	if got := c.Offset(6); got != -1 {
		t.Errorf("Offset(6) = %v, want -1", got)
	}
}

func TestClockNoFrames(t *testing.T) {
	for _, c := range []Clock{{0, 30}, {4, 0}, {0.01, 10}} {
		if got := c.CurrentTime(3); got != 0 {
			t.Errorf("%+v CurrentTime(3) = %v, want 0", c, got)
		}
	}
}

func TestClockOf(t *testing.T) {
	c := ClockOf(preset.Render{Duration: 4, FrameRate: 30})
	if c.TotalFrames() != 120 {
		t.Errorf("TotalFrames() = %d", c.TotalFrames())
	}
}

func TestIterationCount(t *testing.T) {
	if IterationCount(true) != "infinite" || IterationCount(false) != "1" {
		t.Error("unexpected iteration counts")
	}
}
