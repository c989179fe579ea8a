package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/playback"
	"github.com/la-jarre-a-son/tilejar/pkg/render/sink"
)

// playCommand creates the interactive play command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "play [preset]",
		Short: "Scrub through the animation in the terminal",
		Long: `Scrub through the animation in the terminal.

With --output, the SVG of the current frame is rewritten on every change so
that a browser or image viewer pointed at the file follows the playhead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return c.runPlay(cmd.Context(), arg, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG file kept in sync with the playhead")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, arg, output string, noCache bool) error {
	if output == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "play cannot write frames to stdout; pass a file to --output")
	}
	src, err := c.loadPreset(ctx, arg)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := runner.Layout(ctx, src.Preset)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	var opts []playback.Option
	if output != "" {
		opts = append(opts, playback.WithObserver(frameWriter(l, output, loggerFromContext(ctx).Warn)))
	}
	player := playback.NewPlayer(l.Clock(), opts...)
	if output != "" {
		if err := writeFrame(l, output, player.Snapshot()); err != nil {
			return err
		}
	}

	model := NewPlayerModel(src.Name, player, l.Render.Loop)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}

// frameWriter returns an observer that rewrites path for every event.
func frameWriter(l *layout.Layout, path string, warn func(msg any, keyvals ...any)) func(playback.Event) {
	return func(e playback.Event) {
		if err := writeFrame(l, path, e); err != nil {
			warn("write frame", "path", path, "error", err)
		}
	}
}

func writeFrame(l *layout.Layout, path string, e playback.Event) error {
	svg := sink.RenderSVG(l, sink.WithFrame(e.Frame), sink.WithState(e.State))
	return writeOutput(path, svg, io.Discard)
}
