package stylesheet

import (
	"math"
	"strings"
	"testing"
)

func TestWriteTo(t *testing.T) {
	var s Sheet
	s.AddStyle(".tile-0", D("fill", "#fff"), D("opacity", "1"))
	s.AddKeyframes("tile-animation-0",
		Frame{Selector: "0%", Decls: []Decl{D("opacity", "1")}},
		Frame{Selector: "100%"},
	)

	want := `.tile-0 {
  fill: #fff;
  opacity: 1;
}

@keyframes tile-animation-0 {
  0% {
    opacity: 1;
  }
  100% {
  }
}
`
	var sb strings.Builder
	n, err := s.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if sb.String() != want {
		t.Errorf("WriteTo() =\n%s\nwant\n%s", sb.String(), want)
	}
	if int(n) != len(want) {
		t.Errorf("WriteTo() n = %d, want %d", n, len(want))
	}
	if s.String() != want {
		t.Error("String() differs from WriteTo()")
	}
}

func TestFind(t *testing.T) {
	var s Sheet
	s.AddStyle("#grid", D("animation-name", "none"))
	s.AddKeyframes("#grid")

	r, ok := s.Find("#grid")
	if !ok || r.Kind != KindStyle {
		t.Fatalf("Find(#grid) = %+v, %v", r, ok)
	}
	if v, _ := r.Value("animation-name"); v != "none" {
		t.Errorf("Value() = %q", v)
	}
	if _, ok := r.Value("color"); ok {
		t.Error("Value(color) should be absent")
	}
	if _, ok := s.Find(".missing"); ok {
		t.Error("Find(.missing) should fail")
	}
	if k, ok := s.Keyframes("#grid"); !ok || k.Kind != KindKeyframes {
		t.Errorf("Keyframes() = %+v, %v", k, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestInline(t *testing.T) {
	got := Inline([]Decl{D("--tile-i", "3"), D("transform-origin", "10px 20px")})
	if got != "--tile-i: 3; transform-origin: 10px 20px" {
		t.Errorf("Inline() = %q", got)
	}
	if Inline(nil) != "" {
		t.Error("Inline(nil) should be empty")
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Number(1), "1"},
		{Number(0.25), "0.25"},
		{Number(-3.5), "-3.5"},
		{Px(86.6), "86.6px"},
		{Seconds(-0.5), "-0.5s"},
		{Seconds(math.Copysign(0, -1)), "0s"},
		{Percent(0.5 * 100), "50%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
