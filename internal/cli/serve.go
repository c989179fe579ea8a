package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/la-jarre-a-son/tilejar/pkg/observability"
	"github.com/la-jarre-a-son/tilejar/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline and preset store over HTTP",
		Long: `Serve the render pipeline and preset store over HTTP.

Routes:
  POST   /v1/render?format=svg&frame=1   render one frame of the posted preset
  POST   /v1/layout                      computed layout as JSON
  POST   /v1/preview?width=160&height=90 thumbnail data URL
  GET    /v1/presets                     saved presets
  GET    /v1/presets/{name}              one saved preset
  PUT    /v1/presets/{name}              save the posted preset
  DELETE /v1/presets/{name}              delete a saved preset
  GET    /healthz                        liveness

Use --redis to share the render cache between instances and --mongo to keep
presets in MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, trace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&trace, "trace", false, "log pipeline, cache and request hooks at debug level")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache, trace bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open preset store: %w", err)
	}
	defer st.Close()

	if trace {
		h := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
		defer observability.Reset()
	}

	srv := server.New(runner, server.WithStore(st), server.WithLogger(c.Logger))
	cacheKind, storeKind := c.backends(noCache)
	c.ui().info("Listening on %s", StyleHighlight.Render(addr))
	c.ui().keyValue("cache", cacheKind)
	c.ui().keyValue("presets", storeKind)
	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// backends names the cache and preset store the CLI flags select.
func (c *CLI) backends(noCache bool) (cacheKind, storeKind string) {
	switch {
	case noCache:
		cacheKind = "disabled"
	case c.redisURL != "":
		cacheKind = "redis"
	default:
		cacheKind = "file"
	}
	storeKind = "file"
	if c.mongoURI != "" {
		storeKind = "mongo"
	}
	return cacheKind, storeKind
}
