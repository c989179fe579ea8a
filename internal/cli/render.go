package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single preset, single format) or base path / directory
	formats string // comma-separated output formats
	noCache bool
	jobs    int // presets rendered concurrently
	opts    pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	ro := renderOpts{jobs: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "render [preset...]",
		Short: "Render one frame of one or more presets",
		Long: `Render one frame of one or more presets.

Each argument is a preset file (JSON, TOML or YAML), a saved preset name, or
"-" for JSON on stdin. Without arguments the current saved preset is used.

With a single preset and a single format, --output names the file ("-" for
stdout). Otherwise --output is a base path (one preset) or a directory
(several presets) and files are named <name>.<format>.

Layouts and artifacts are cached locally, or in redis with --redis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.opts.Formats = parseFormats(ro.formats)
			if err := pipeline.ValidateFormats(ro.opts.Formats); err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{""}
			}
			return c.runRender(cmd.Context(), args, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file, base path or directory")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&ro.opts.Frame, "frame", pipeline.DefaultFrame, "1-based frame to render (clamped to the animation)")
	cmd.Flags().Float64Var(&ro.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&ro.opts.State, "state", string(pipeline.DefaultState), "render state class: stopped, paused, playing")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "recompute the layout even when cached")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&ro.jobs, "jobs", "j", ro.jobs, "presets rendered concurrently")

	return cmd
}

// runRender renders every argument concurrently. The first failure cancels
// the remaining renders.
func (c *CLI) runRender(ctx context.Context, args []string, ro renderOpts) error {
	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	var mu sync.Mutex // serializes status output

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, ro.jobs))
	for _, arg := range args {
		g.Go(func() error {
			src, err := c.loadPreset(gctx, arg)
			if err != nil {
				return err
			}
			opts := ro.opts
			opts.Name = src.Name
			opts.Logger = c.Logger.With("preset", src.Name)

			result, err := runner.Execute(gctx, src.Preset, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}

			paths := outputPaths(ro.output, src.Name, opts.Formats, len(args) > 1)
			for _, format := range opts.Formats {
				if err := writeOutput(paths[format], result.Artifacts[format], c.Out); err != nil {
					return err
				}
			}

			if ro.output == "-" {
				opts.Logger.Info("rendered", "frame", result.Frame, "cached", result.CacheInfo.RenderHit)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			c.ui().success("Rendered %s (frame %d)", StyleHighlight.Render(src.Name), result.Frame)
			for _, format := range opts.Formats {
				c.ui().file(paths[format])
			}
			c.ui().stats(result.Stats.Instances, result.Stats.Culled, result.Layout.Clock().TotalFrames(), result.CacheInfo.LayoutHit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(args) > 1 {
		prog.done(fmt.Sprintf("Rendered %d presets", len(args)))
	}
	return nil
}

// outputPaths returns the output file of each format.
func outputPaths(output, name string, formats []string, multi bool) map[string]string {
	paths := make(map[string]string, len(formats))
	if !multi && len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, name)
	if multi {
		base = filepath.Join(output, name)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
