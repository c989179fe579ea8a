package timeline

import (
	"fmt"
	"strings"

	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
)

// Kind identifies the animation group an animation belongs to.
type Kind string

const (
	KindTile Kind = "tile"
	KindGrid Kind = "grid"
)

// CurrentTimeProperty carries the seek offset on the root element.
const CurrentTimeProperty = "--animation-current-time"

// IterationCountProperty carries the iteration count on the root element.
const IterationCountProperty = "--animation-iteration-count"

// listSeparator joins per-animation values in a binding.
const listSeparator = ",  "

// KeyframesName returns the keyframes name of the i-th enabled animation.
func KeyframesName(kind Kind, i int) string {
	return fmt.Sprintf("%s-animation-%d", kind, i)
}

// Keyframes is a compiled keyframes block.
type Keyframes struct {
	Name   string             `json:"name" msgpack:"name"`
	Frames []stylesheet.Frame `json:"frames" msgpack:"frames"`
}

// Entry is one enabled animation within a group.
type Entry struct {
	Name        string             `json:"name" msgpack:"name"`
	Duration    string             `json:"duration" msgpack:"duration"`
	Easing      string             `json:"easing" msgpack:"easing"`
	Composition preset.Composition `json:"composition" msgpack:"composition"`

	// Delay expressions, tile animations only.
	DelayPerTile   string `json:"delayPerTile,omitempty" msgpack:"delayPerTile,omitempty"`
	DelayPerLine   string `json:"delayPerLine,omitempty" msgpack:"delayPerLine,omitempty"`
	DelayPerColumn string `json:"delayPerColumn,omitempty" msgpack:"delayPerColumn,omitempty"`
}

// Group is the set of enabled animations of one kind, in order.
type Group struct {
	Kind    Kind    `json:"kind" msgpack:"kind"`
	Entries []Entry `json:"entries" msgpack:"entries"`
}

// Animated reports whether the group has at least one animation.
func (g Group) Animated() bool { return len(g.Entries) > 0 }

// Names returns the keyframes names of the group.
func (g Group) Names() []string { return g.column(func(_ int, e Entry) string { return e.Name }) }

func (g Group) column(f func(int, Entry) string) []string {
	out := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		out[i] = f(i, e)
	}
	return out
}

func (g Group) list(f func(int, Entry) string) string {
	return strings.Join(g.column(f), listSeparator)
}

// Bindings returns the animation declarations of the group's binding rule.
// iterationCount is repeated once per animation.
func (g Group) Bindings(iterationCount string) []stylesheet.Decl {
	if !g.Animated() {
		return []stylesheet.Decl{
			stylesheet.D("animation-name", "none"),
			stylesheet.D("animation-duration", "initial"),
			stylesheet.D("animation-timing-function", "initial"),
			stylesheet.D("animation-composition", "initial"),
			stylesheet.D("animation-delay", "initial"),
			stylesheet.D("animation-iteration-count", "initial"),
		}
	}
	return []stylesheet.Decl{
		stylesheet.D("animation-name", g.list(func(_ int, e Entry) string { return e.Name })),
		stylesheet.D("animation-duration", g.list(func(_ int, e Entry) string { return e.Duration })),
		stylesheet.D("animation-timing-function", g.list(func(_ int, e Entry) string { return e.Easing })),
		stylesheet.D("animation-composition", g.list(func(_ int, e Entry) string { return string(e.Composition) })),
		stylesheet.D("animation-delay", g.list(func(i int, _ Entry) string { return g.delay(i) })),
		stylesheet.D("animation-iteration-count", g.list(func(int, Entry) string { return iterationCount })),
	}
}

func (g Group) delay(i int) string {
	offset := "var(" + CurrentTimeProperty + ", 0s)"
	if g.Kind == KindGrid {
		return offset
	}
	return fmt.Sprintf("calc(var(%s, 0s) + var(%s, 0s) + var(%s, 0s) + %s)",
		DelayProperty(i, AxisTile), DelayProperty(i, AxisLine), DelayProperty(i, AxisColumn), offset)
}

// Compiled is the output of compiling one animation group.
type Compiled struct {
	Keyframes []Keyframes `json:"keyframes" msgpack:"keyframes"`
	Group     Group       `json:"group" msgpack:"group"`
}

// CompileTile compiles the enabled tile animations.
func CompileTile(anims []preset.TileAnimation) Compiled {
	out := Compiled{Group: Group{Kind: KindTile}}
	for _, a := range anims {
		if !a.Enabled {
			continue
		}
		name := KeyframesName(KindTile, len(out.Group.Entries))
		kf := Keyframes{Name: name, Frames: make([]stylesheet.Frame, 0, len(a.Steps))}
		for _, s := range a.Steps {
			kf.Frames = append(kf.Frames, tileFrame(s))
		}
		out.Keyframes = append(out.Keyframes, kf)
		out.Group.Entries = append(out.Group.Entries, Entry{
			Name:           name,
			Duration:       a.Duration,
			Easing:         a.Easing,
			Composition:    a.Composition,
			DelayPerTile:   a.DelayPerTile,
			DelayPerLine:   a.DelayPerLine,
			DelayPerColumn: a.DelayPerColumn,
		})
	}
	return out
}

// CompileGrid compiles the enabled grid animations.
func CompileGrid(anims []preset.GridAnimation) Compiled {
	out := Compiled{Group: Group{Kind: KindGrid}}
	for _, a := range anims {
		if !a.Enabled {
			continue
		}
		name := KeyframesName(KindGrid, len(out.Group.Entries))
		kf := Keyframes{Name: name, Frames: make([]stylesheet.Frame, 0, len(a.Steps))}
		for _, s := range a.Steps {
			f := stylesheet.Frame{Selector: offset(s.Progress)}
			if present(s.Transform) {
				f.Decls = append(f.Decls, stylesheet.D("transform", *s.Transform))
			}
			kf.Frames = append(kf.Frames, f)
		}
		out.Keyframes = append(out.Keyframes, kf)
		out.Group.Entries = append(out.Group.Entries, Entry{
			Name:        name,
			Duration:    a.Duration,
			Easing:      a.Easing,
			Composition: a.Composition,
		})
	}
	return out
}

func tileFrame(s preset.TileStep) stylesheet.Frame {
	f := stylesheet.Frame{Selector: offset(s.Progress)}
	if present(s.Fill) {
		f.Decls = append(f.Decls, stylesheet.D("fill", *s.Fill))
	}
	if present(s.Stroke) {
		f.Decls = append(f.Decls, stylesheet.D("stroke", *s.Stroke))
	}
	if s.StrokeWidth != nil {
		f.Decls = append(f.Decls, stylesheet.D("stroke-width", stylesheet.Px(*s.StrokeWidth)))
	}
	if s.Opacity != nil {
		f.Decls = append(f.Decls, stylesheet.D("opacity", stylesheet.Number(*s.Opacity)))
	}
	if present(s.Transform) {
		f.Decls = append(f.Decls, stylesheet.D("transform", *s.Transform))
	}
	return f
}

// present reports whether a nullable string carries a value. Empty strings
// would serialize to an invalid declaration and are treated as absent.
func present(s *string) bool { return s != nil && *s != "" }

func offset(progress float64) string {
	return stylesheet.Percent(progress * 100)
}

// IterationCount returns the CSS iteration count for the loop setting.
func IterationCount(loop bool) string {
	if loop {
		return "infinite"
	}
	return "1"
}
