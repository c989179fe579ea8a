package sink

import (
	"encoding/json"

	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/stylesheet"
	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name  string
	frame int
}

// WithJSONName records the preset name in the output.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONFrame records the seek offset of frame in the root properties.
func WithJSONFrame(frame int) JSONOption { return func(r *jsonRenderer) { r.frame = frame } }

type jsonOutput struct {
	Name        string            `json:"name,omitempty"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Render      preset.Render     `json:"render"`
	TotalFrames int               `json:"totalFrames"`
	Frame       int               `json:"frame,omitempty"`
	Tile        jsonTile          `json:"tile"`
	Grid        jsonGrid          `json:"grid"`
	Enumerated  int               `json:"enumerated"`
	Instances   []jsonInstance    `json:"instances"`
	Root        map[string]string `json:"root"`
	CSS         string            `json:"css"`
}

type jsonTile struct {
	Path       string   `json:"path"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Animations []string `json:"animations,omitempty"`
}

type jsonGrid struct {
	Transform  string   `json:"transform"`
	RandomX    float64  `json:"randomX"`
	RandomY    float64  `json:"randomY"`
	Animations []string `json:"animations,omitempty"`
}

type jsonInstance struct {
	layout.TileInstance
	Class string `json:"class"`
}

// RenderJSON exports the layout as a pretty-printed JSON document: the
// visible instances in draw order with their classes, the root custom
// properties and the serialized stylesheet.
//
// RenderJSON does not modify l and is safe to call concurrently.
func RenderJSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	clock := l.Clock()
	out := jsonOutput{
		Name:        r.name,
		Width:       l.Width,
		Height:      l.Height,
		Render:      l.Render,
		TotalFrames: clock.TotalFrames(),
		Frame:       r.frame,
		Tile: jsonTile{
			Path:       l.TilePath,
			Width:      l.TileWidth,
			Height:     l.TileHeight,
			Animations: l.Tile.Group.Names(),
		},
		Grid: jsonGrid{
			Transform:  l.GridTransform,
			RandomX:    l.GridRandomX,
			RandomY:    l.GridRandomY,
			Animations: l.Grid.Group.Names(),
		},
		Enumerated: l.Enumerated,
		Instances:  make([]jsonInstance, 0, len(l.Instances)),
		Root:       make(map[string]string, len(l.Root)+1),
		CSS:        l.Sheet.String(),
	}
	for _, inst := range l.Instances {
		out.Instances = append(out.Instances, jsonInstance{TileInstance: inst, Class: inst.Classes()})
	}
	if r.frame > 0 {
		out.Root[timeline.CurrentTimeProperty] = stylesheet.Seconds(clock.Offset(r.frame))
	}
	for _, d := range l.Root {
		out.Root[d.Property] = d.Value
	}

	return json.MarshalIndent(out, "", "  ")
}
