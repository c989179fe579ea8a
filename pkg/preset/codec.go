package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

// Format is a preset file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the encoding from a file extension.
// Unknown extensions default to JSON, the native export format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat converts s to a [Format].
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown preset format %q (want json, toml or yaml)", s)
}

// document mirrors Preset with every top-level field optional, so that a
// decoded file can be merged field by field over the defaults.
type document struct {
	Version      *int     `json:"version" toml:"version" yaml:"version"`
	Width        *float64 `json:"width" toml:"width" yaml:"width"`
	Height       *float64 `json:"height" toml:"height" yaml:"height"`
	SafeAreaSize *float64 `json:"safeAreaSize" toml:"safeAreaSize" yaml:"safeAreaSize"`

	Render *Render `json:"render" toml:"render" yaml:"render"`
	Tile   *Tile   `json:"tile" toml:"tile" yaml:"tile"`
	Grid   *Grid   `json:"grid" toml:"grid" yaml:"grid"`

	Variants           *[]Variant `json:"variants" toml:"variants" yaml:"variants"`
	VariantLineShift   *int       `json:"variantLineShift" toml:"variantLineShift" yaml:"variantLineShift"`
	VariantColumnShift *int       `json:"variantColumnShift" toml:"variantColumnShift" yaml:"variantColumnShift"`

	TileAnimations *[]TileAnimation `json:"tileAnimations" toml:"tileAnimations" yaml:"tileAnimations"`
	GridAnimations *[]GridAnimation `json:"gridAnimations" toml:"gridAnimations" yaml:"gridAnimations"`
}

func (d *document) merge(p *Preset) {
	setIf(&p.Version, d.Version)
	setIf(&p.Width, d.Width)
	setIf(&p.Height, d.Height)
	setIf(&p.SafeAreaSize, d.SafeAreaSize)
	setIf(&p.Render, d.Render)
	setIf(&p.Tile, d.Tile)
	setIf(&p.Grid, d.Grid)
	setIf(&p.Variants, d.Variants)
	setIf(&p.VariantLineShift, d.VariantLineShift)
	setIf(&p.VariantColumnShift, d.VariantColumnShift)
	setIf(&p.TileAnimations, d.TileAnimations)
	setIf(&p.GridAnimations, d.GridAnimations)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Read decodes a preset from r. Top-level fields absent from the document
// keep their [Default] value; present fields replace it.
//
// Read does not call [Validate]. Read does not close r.
func Read(r io.Reader, format Format) (*Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}

	var doc document
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown preset format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode %s preset", formatName(format))
	}

	p := Default()
	doc.merge(p)
	return p, nil
}

// Write encodes p to w in the given format.
func Write(w io.Writer, p *Preset, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(p); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown preset format %q", format)
	}
	return nil
}

// Marshal encodes p in the given format and returns the bytes.
func Marshal(p *Preset, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads a preset file, inferring the format from its extension.
func Load(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path, inferring the format from its extension.
func Save(path string, p *Preset) error {
	data, err := Marshal(p, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatName(f Format) string {
	if f == "" {
		return string(FormatJSON)
	}
	return string(f)
}
