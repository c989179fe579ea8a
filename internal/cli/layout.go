package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// layoutCommand creates the layout command for inspecting computed layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [preset]",
		Short: "Compute the layout of a preset and write it as JSON",
		Long: `Compute the layout of a preset and write it as JSON.

The layout holds every visible tile instance (position, classes, transform
origin and random values), the compiled animation timelines and the
generated stylesheet. It is what every render format is produced from.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return c.runLayout(cmd.Context(), arg, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the preset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, arg, output string, noCache, refresh bool) error {
	src, err := c.loadPreset(ctx, arg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := c.newSpinner(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, src.Preset, refresh)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = src.Name + ".layout.json"
	}
	if err := writeOutput(outputPath, append(data, '\n'), c.Out); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == "-" {
		return nil
	}

	st := l.Stats()
	c.ui().success("Layout complete")
	c.ui().file(outputPath)
	c.ui().stats(st.Visible, st.Culled, l.Clock().TotalFrames(), cacheHit)
	c.ui().newline()
	c.ui().nextStep("Render", appName+" render "+describeArg(src))

	return nil
}

// describeArg returns the argument that selects src again.
func describeArg(src *source) string {
	if src.Path != "" {
		return src.Path
	}
	return src.Name
}
