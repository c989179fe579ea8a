// Package pipeline provides the core tilejar pipeline.
//
// This package implements the load → layout → render/export pipeline used
// by the CLI and the HTTP server. Centralizing it keeps caching, defaults
// and validation identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode and validate a preset (JSON, TOML or YAML)
//  2. Layout: Compute instances and the stylesheet ([layout.Compute])
//  3. Render: Generate outputs (SVG, PNG, PDF, JSON) for one frame, or
//     export every frame of the animation through a [playback.Player]
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, p, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Frame:   30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Export an animation:
//
//	player := playback.NewPlayer(timeline.ClockOf(p.Render))
//	w, _ := export.NewDirWriter("frames", "png")
//	err := runner.Export(ctx, p, player, w, pipeline.Options{Formats: []string{"png"}})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/la-jarre-a-son/tilejar/pkg/cache"
	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFrame is the frame rendered when none is requested.
	DefaultFrame = 1

	// DefaultScale is the PNG scale factor (1 = render size).
	DefaultScale = 1.0

	// DefaultState is the root state class of rendered documents.
	DefaultState = playback.StatePaused
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains render configuration.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Frame   int      `json:"frame,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	State   string   `json:"state,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Name is recorded in JSON output.
	Name string `json:"name,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PresetHash is the content hash of the preset.
	PresetHash string

	// Layout is the computed layout.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Frame is the rendered frame after clamping.
	Frame int

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Instances  int
	Culled     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Frame == 0 {
		o.Frame = DefaultFrame
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.State == "" {
		o.State = string(DefaultState)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates the options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Frame < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame must be positive, got %d", o.Frame)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if _, err := playback.ParseState(o.State); err != nil {
		return err
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string, frame int) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Frame: frame, State: o.State}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatJSON {
		opts.Name = o.Name
	}
	return opts
}
