package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/la-jarre-a-son/tilejar/pkg/buildinfo"
	"github.com/la-jarre-a-son/tilejar/pkg/cache"
	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
	"github.com/la-jarre-a-son/tilejar/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tilejar"

	// Environment fallbacks for the shared backends.
	envRedisURL = "TILEJAR_REDIS_URL"
	envMongoURI = "TILEJAR_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Status lines go through the print
	// helpers.
	Out io.Writer

	redisURL string
	mongoURI string
	storeDir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tilejar lays out and animates tile grids",
		Long: `Tilejar turns a preset (tile shape, grid, variants and keyframe animations)
into an animated SVG, and renders or exports it frame by frame.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	pf := root.PersistentFlags()
	pf.StringVar(&c.redisURL, "redis", os.Getenv(envRedisURL), "redis URL for the shared render cache (env "+envRedisURL+")")
	pf.StringVar(&c.mongoURI, "mongo", os.Getenv(envMongoURI), "mongodb URI for preset storage (env "+envMongoURI+")")
	pf.StringVar(&c.storeDir, "presets-dir", "", "preset directory (default: $XDG_CONFIG_HOME/tilejar/presets)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache returns a redis cache when a URL is configured, the local file
// cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		c.Logger.Debug("using redis cache")
		return cache.NewRedisCache(ctx, c.redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore returns the mongo store when a URI is configured, the file
// store otherwise.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if c.mongoURI != "" {
		c.Logger.Debug("using mongo preset store")
		return store.NewMongoStore(ctx, c.mongoURI, "")
	}
	return store.NewFileStore(c.storeDir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tilejar/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
