package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/la-jarre-a-son/tilejar/pkg/cache"
	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/export"
	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/observability"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger: it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute computes the layout of p and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, p *preset.Preset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{PresetHash: p.Hash()}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, p, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	st := l.Stats()
	result.Layout = l
	result.Stats.Instances = st.Visible
	result.Stats.Culled = st.Culled
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"instances", st.Visible,
		"culled", st.Culled,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	opts.Frame = clampFrame(opts.Frame, l.Clock().TotalFrames())
	result.Frame = opts.Frame

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.PresetHash, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"frame", opts.Frame,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of p with caching and reports
// whether it came from the cache. Refresh skips the cache lookup.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, p *preset.Preset, refresh bool) (*layout.Layout, bool, error) {
	hash := p.Hash()
	key := r.Keyer.LayoutKey(hash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := layout.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return l, true, nil
			}
			// Undecodable entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, hash)
	start := time.Now()
	l, err := layout.Compute(p)
	if err != nil {
		hooks.OnLayoutComplete(ctx, hash, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLayoutComplete(ctx, hash, len(l.Instances), time.Since(start), nil)

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.LayoutTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		} else {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		}
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, p *preset.Preset) (*layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, p, false)
	return l, err
}

// RenderWithCacheInfo renders the formats of opts with per-artifact caching
// and reports whether every artifact came from the cache. opts must have
// passed [Options.ValidateForRender].
func (r *Runner) RenderWithCacheInfo(ctx context.Context, presetHash string, l *layout.Layout, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	allCached := true
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(presetHash, opts.ArtifactKeyOpts(format, opts.Frame))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := RenderFrame(ctx, l, format, opts.Frame, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached, nil
}

// Preview returns a cached thumbnail data URL of p.
func (r *Runner) Preview(ctx context.Context, p *preset.Preset, width, height int) (string, error) {
	hash := p.Hash()
	key := r.Keyer.PreviewKey(hash, width, height)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "preview")
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, "preview")

	l, err := r.Layout(ctx, p)
	if err != nil {
		return "", err
	}
	url, err := sink.PreviewDataURL(l, width, height)
	if err != nil {
		return "", err
	}
	if err := r.Cache.Set(ctx, key, []byte(url), cache.PreviewTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "preview", len(url))
	}
	return url, nil
}

// Export writes every frame of p with w, driving player through its
// export loop. Only the first format of opts is exported. Frames are not
// cached.
//
// Export fails with [playback.ErrBusy] when player is already exporting and
// with an error matching [playback.ErrCancelled] when the export is
// cancelled through the player or ctx.
func (r *Runner) Export(ctx context.Context, p *preset.Preset, player *playback.Player, w export.Writer, opts Options) error {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	format := opts.Formats[0]

	l, err := r.Layout(ctx, p)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	total := player.TotalFrames()
	if total == 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "preset has no frames to export")
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, total)
	start := time.Now()
	frames := 0

	render := func(ctx context.Context, frame int) ([]byte, error) {
		frameStart := time.Now()
		data, err := RenderFrame(ctx, l, format, frame, opts)
		if err == nil {
			frames++
			hooks.OnExportFrame(ctx, frame, total, time.Since(frameStart))
		}
		return data, err
	}

	opts.Logger.Info("exporting frames", "format", format, "frames", total)
	err = player.Export(ctx, export.Capture(render, w))
	hooks.OnExportComplete(ctx, frames, time.Since(start), err)
	if err != nil {
		return err
	}
	opts.Logger.Info("exported frames", "frames", frames, "duration", time.Since(start))
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func clampFrame(frame, total int) int {
	return max(1, min(frame, total))
}
