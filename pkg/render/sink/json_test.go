package sink

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	l := smallLayout(t)

	data, err := RenderJSON(l, WithJSONName("squares"), WithJSONFrame(31))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Name != "squares" {
		t.Errorf("Name = %q, want squares", out.Name)
	}
	if out.Width != 20 || out.Height != 20 {
		t.Errorf("size = %vx%v, want 20x20", out.Width, out.Height)
	}
	if out.TotalFrames != 120 {
		t.Errorf("TotalFrames = %d, want 120", out.TotalFrames)
	}
	if len(out.Instances) != 4 {
		t.Fatalf("Instances = %d, want 4", len(out.Instances))
	}
	if got := out.Instances[1].Class; got != "tile line-0 column-0 tile-1" {
		t.Errorf("Instances[1].Class = %q", got)
	}
	if d := out.Instances[1].Delays; len(d) != 1 || d[0].PerTile.CSS() != "calc(0s * 1)" {
		t.Errorf("Instances[1].Delays = %+v, want one per-tile term scaled by variant 1", d)
	}
	if got := out.Instances[3].X; got != 10 {
		t.Errorf("Instances[3].X = %v, want 10", got)
	}
	if got := out.Root["--animation-current-time"]; got != "-1s" {
		t.Errorf("current time = %q, want -1s", got)
	}
	if got := out.Root["--variants"]; got != "2" {
		t.Errorf("--variants = %q, want 2", got)
	}
	if out.CSS != l.Sheet.String() {
		t.Error("CSS does not match the layout stylesheet")
	}
}

func TestRenderJSONWithoutFrame(t *testing.T) {
	l := smallLayout(t)

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if _, ok := out.Root["--animation-current-time"]; ok {
		t.Error("current time recorded without a frame")
	}
	if out.Name != "" {
		t.Errorf("Name = %q, want empty", out.Name)
	}
}
