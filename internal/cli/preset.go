package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/render/sink"
	"github.com/la-jarre-a-son/tilejar/pkg/store"
)

// presetCommand creates the preset management command.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preset",
		Aliases: []string{"presets"},
		Short:   "Manage saved presets",
		Long: `Manage saved presets.

Presets are stored under $XDG_CONFIG_HOME/tilejar/presets, or in MongoDB
with --mongo. Saving a preset also stores a small PNG thumbnail.`,
	}

	cmd.AddCommand(c.presetListCommand())
	cmd.AddCommand(c.presetShowCommand())
	cmd.AddCommand(c.presetSaveCommand())
	cmd.AddCommand(c.presetImportCommand())
	cmd.AddCommand(c.presetExportCommand())
	cmd.AddCommand(c.presetDeleteCommand())
	cmd.AddCommand(c.presetUseCommand())

	return cmd
}

// withStore opens the preset store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open preset store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) presetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				list, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				current, err := st.Current(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					c.ui().info("No saved presets")
					c.ui().nextStep("Save one", appName+" preset save <name> <file>")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), presetTable(list, current, time.Now()))
				return nil
			})
		},
	}
}

// presetTable renders the preset list, marking the current preset.
func presetTable(list []store.Summary, current string, now time.Time) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		mark := "  "
		if s.Name == current {
			mark = "▸ "
		}
		rows[i] = []string{mark, s.Name, formatRelativeTime(s.UpdatedAt, now), shortID(s.ID)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Updated", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(list) && list[row].Name == current {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col >= 2 {
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render()
}

func (c *CLI) presetShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a saved preset (default: the current one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := preset.ParseFormat(format)
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(st store.Store) error {
				name, err := nameOrCurrent(cmd.Context(), st, args)
				if err != nil {
					return err
				}
				e, err := st.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				return preset.Write(cmd.OutOrStdout(), e.Preset, f)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(preset.FormatJSON), "output format: json, toml, yaml")
	return cmd
}

func (c *CLI) presetSaveCommand() *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "save <name> <file>",
		Short: "Save a preset file under a name",
		Long: `Save a preset file under a name.

An existing preset with the same name is replaced; it keeps its ID and
creation time.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.Load(args[1])
			if err != nil {
				return err
			}
			return c.savePreset(cmd.Context(), args[0], p, noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching of the thumbnail")
	return cmd
}

func (c *CLI) presetImportCommand() *cobra.Command {
	var (
		name    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import preset files, named after the file",
		Long: `Import preset files, named after the file.

"waves` + preset.ExportSuffix + `" is imported as "waves". Use --name to
choose the name when importing a single file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--name needs exactly one file")
			}
			for _, path := range args {
				p, err := pipeline.Load(path)
				if err != nil {
					return err
				}
				n := name
				if n == "" {
					n = nameFromPath(path)
				}
				if err := c.savePreset(cmd.Context(), n, p, noCache); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "preset name (default: derived from the file name)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching of the thumbnail")
	return cmd
}

// savePreset renders the thumbnail of p and stores it under name.
func (c *CLI) savePreset(ctx context.Context, name string, p *preset.Preset, noCache bool) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	preview, err := runner.Preview(ctx, p, sink.PreviewWidth, sink.PreviewHeight)
	if err != nil {
		return fmt.Errorf("render thumbnail: %w", err)
	}
	return c.withStore(ctx, func(st store.Store) error {
		e, err := st.Save(ctx, store.NewEntry(name, preview, p))
		if err != nil {
			return err
		}
		c.ui().success("Saved %s", StyleHighlight.Render(e.Name))
		c.ui().detail("ID: %s", e.ID)
		return nil
	})
}

func (c *CLI) presetExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Write a saved preset to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				name, err := nameOrCurrent(cmd.Context(), st, args)
				if err != nil {
					return err
				}
				e, err := st.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = preset.ExportFileName(name)
				}
				if err := preset.Save(path, e.Preset); err != nil {
					return err
				}
				c.ui().success("Exported %s", StyleHighlight.Render(name))
				c.ui().file(path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, format from its extension (default: <name>"+preset.ExportSuffix+")")
	return cmd
}

func (c *CLI) presetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				if current, err := st.Current(cmd.Context()); err == nil && current == args[0] {
					if err := st.SetCurrent(cmd.Context(), store.DefaultName); err != nil {
						return err
					}
				}
				c.ui().success("Deleted %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) presetUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Select the preset used when no preset argument is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				if _, err := st.Get(cmd.Context(), args[0]); err != nil {
					return err
				}
				if err := st.SetCurrent(cmd.Context(), args[0]); err != nil {
					return err
				}
				c.ui().success("Using %s", StyleHighlight.Render(args[0]))
				return nil
			})
		},
	}
}

func nameOrCurrent(ctx context.Context, st store.Store, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return st.Current(ctx)
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
