package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/export"
	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
	"github.com/la-jarre-a-son/tilejar/pkg/timeline"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [preset]",
		Short: "Write every frame of a preset to a directory",
		Long: `Write every frame of a preset to a directory.

Frames are rendered in order from 1 to the last frame and written as
0001.<format>, 0002.<format>, ... Interrupting the command (Ctrl-C) stops
the export after the frame in progress; frames already written are kept.

Frames default to SVG, which carries the animation styles seeked to the
frame's time. PNG and PDF frames are converted with rsvg-convert, which does
not run CSS animations: every frame shows the tiles at rest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			opts.Formats = []string{format}
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return c.runExport(cmd.Context(), arg, output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: <name>-frames)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "frame format: svg, png, pdf, json")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, arg, output string, noCache bool, opts pipeline.Options) error {
	src, err := c.loadPreset(ctx, arg)
	if err != nil {
		return err
	}
	if output == "" {
		output = src.Name + "-frames"
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	w, err := export.NewDirWriter(output, opts.Formats[0])
	if err != nil {
		return err
	}

	clock := timeline.ClockOf(src.Preset.Render)
	total := clock.TotalFrames()
	spinner := c.newSpinner(ctx, fmt.Sprintf("Exporting %s...", src.Name))
	player := playback.NewPlayer(clock, playback.WithObserver(func(e playback.Event) {
		if e.State != playback.StateStopped {
			spinner.SetMessage("Exporting %s: frame %d/%d", src.Name, e.Frame, total)
		}
	}))

	prog := newProgress(loggerFromContext(ctx))
	spinner.Start()
	opts.Name = src.Name
	err = runner.Export(ctx, src.Preset, player, w, opts)
	if err != nil {
		if errors.IsCancelled(err) {
			spinner.Stop()
			c.ui().warning("Export cancelled at frame %d/%d", player.CurrentFrame(), total)
			c.ui().detail("Partial frames kept in %s", output)
		} else {
			spinner.StopWithError("Export failed")
		}
		return err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Exported %d frames", total))
	c.ui().success("Exported %s", StyleHighlight.Render(src.Name))
	c.ui().file(filepath.Join(output, export.FrameName(1, opts.Formats[0])) + " ... " + export.FrameName(total, opts.Formats[0]))
	return nil
}
