// Package preset defines the tilejar preset schema and its file codecs.
//
// A [Preset] is the root configuration of a tiling pattern: the canvas size,
// render settings (output size, duration, frame rate, loop, RNG seed), the
// tile shape and its position deltas, the grid enumeration parameters, the
// ordered style variants and the tile and grid animations.
//
// # Wire Format
//
// Field names are the wire contract. They are camelCase in every supported
// format and match presets exported by earlier tile-jar releases:
//
//	{
//	  "version": 1,
//	  "width": 1920,
//	  "height": 1080,
//	  "render": {"duration": 4, "frameRate": 30, "loop": true, "seed": 42},
//	  "grid": {"countX": 12, "countY": 8, "lines": 2, "columns": 3, "order": "down-right"},
//	  "variants": [{"fill": "#e76f51", "stroke": null, "strokeWidth": 0, "opacity": 1, "transform": null}]
//	}
//
// Nullable fields are pointers. A nil pointer means "absent" and the
// consumer applies its documented fallback (for example `none` for a
// variant fill, or half the tile width for the transform origin).
//
// # Codecs
//
// [Read] and [Load] decode JSON, TOML and YAML. Decoding starts from
// [Default]: any top-level field missing from the document keeps its default
// value, while a present field replaces the default entirely. [Write] and
// [Save] encode a preset; JSON output is indented with two spaces.
//
// # Validation
//
// [Validate] performs structural checks only: enum values and strictly
// positive duration and frame rate. Opaque strings (paths, CSS durations,
// easings, transforms) are never parsed. Empty variant lists and zero class
// periods are accepted here; they are reported by the layout computation
// that needs them.
package preset
