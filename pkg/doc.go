// Package pkg provides the core libraries for tilejar tiling animations.
//
// # Overview
//
// Tilejar turns a preset (a tile shape, its variants, a grid and a set of
// keyframe animations) into an animated SVG document that can be played,
// scrubbed and exported frame by frame. The pkg directory is organized into
// three main areas:
//
//  1. Domain logic ([preset], [grid], [variant], [rng], [timeline], [stylesheet], [layout])
//  2. Output ([render], [render/sink], [playback], [export])
//  3. Infrastructure ([pipeline], [cache], [store], [server], [observability], [errors])
//
// # Architecture
//
// The typical data flow through tilejar:
//
//	Preset (JSON/TOML/YAML)
//	         ↓
//	    [preset] package (decode, merge over defaults, validate)
//	         ↓
//	    [layout] package (enumerate, cull, assign variants, compile animations)
//	         ↓
//	    [render/sink] package (SVG at a seek offset, PNG/PDF via conversion)
//	         ↓
//	    [playback] + [export] (state machine, frame-by-frame capture)
//
// # Quick Start
//
// Load a preset and render its second frame:
//
//	import (
//	    "github.com/la-jarre-a-son/tilejar/pkg/layout"
//	    "github.com/la-jarre-a-son/tilejar/pkg/preset"
//	    "github.com/la-jarre-a-son/tilejar/pkg/render/sink"
//	)
//
//	p, _ := preset.Load("waves.json")
//	l, _ := layout.Compute(p)
//	svg := sink.RenderSVG(l, sink.WithFrame(2))
//
// # Main Packages
//
// ## Domain Logic
//
// [preset] - The preset schema, its defaults, and the JSON, TOML and YAML
// codecs. Missing fields keep their default values.
//
// [grid] - Tile coordinate enumeration in the four traversal orders and
// canvas visibility culling.
//
// [variant] - Variant index assignment from line and column shifts.
//
// [rng] - Seeded random stream shared by the grid and its tiles.
//
// [timeline] - Keyframe compilation, per-instance delays and the frame clock.
//
// [stylesheet] - CSS rule generation for variants, keyframes and delays.
//
// [layout] - Assembles all of the above into a serializable [layout.Layout].
//
// ## Output
//
// [render/sink] - SVG, PNG, PDF, JSON and preview thumbnail renderers.
//
// [render] - Format conversion (SVG to PDF/PNG) through rsvg-convert.
//
// [playback] - The stopped/playing/paused state machine and export loop.
//
// [export] - Frame writers for exported image sequences.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (parse → layout → render) shared by the CLI
// and the HTTP server, with layout and artifact caching.
//
// [cache] - Content-addressed caches: null, file (msgpack) and Redis.
//
// [store] - Saved preset libraries on disk or in MongoDB.
//
// [server] - HTTP API for rendering and preset management.
//
// [observability] - Hooks for pipeline stages and HTTP requests.
//
// [errors] - Coded errors with user-facing messages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//
// Store and cache tests against live backends run when TILEJAR_TEST_MONGO_URI
// or TILEJAR_TEST_REDIS_URL is set.
//
// [preset]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/preset
// [grid]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/grid
// [variant]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/variant
// [rng]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/rng
// [timeline]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/timeline
// [stylesheet]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/stylesheet
// [layout]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/layout
// [layout.Layout]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/layout#Layout
// [render]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/render/sink
// [playback]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/playback
// [export]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/cache
// [store]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/store
// [server]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/server
// [observability]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/observability
// [errors]: https://pkg.go.dev/github.com/la-jarre-a-son/tilejar/pkg/errors
package pkg
