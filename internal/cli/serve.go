package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/pipeline"
	"github.com/matzehuels/graphlearn/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		corsOrigin string
		noWatch    bool
		noCache    bool
		lf         layoutFlags
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve the canvas and its scene over HTTP",
		Long: `Serve a content document over HTTP.

Routes:
  GET  /              canvas page
  GET  /canvas.svg    rendered canvas (?theme=dark, ?viz=nodelink)
  GET  /api/scene     scene JSON
  GET  /api/document  the loaded document
  POST /api/layout    lay out a posted document
  GET  /healthz       health check

Local files are watched and reloaded on change unless --no-watch is set.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.baseOptions(cmd, args[0], &lf)
			opts.Layout = base.Layout
			opts.Theme = base.Theme
			opts.Scale = base.Scale
			opts.Logger = base.Logger

			sc := c.Config.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}
			if cmd.Flags().Changed("cors-origin") {
				sc.CORSOrigin = corsOrigin
			}
			if noWatch {
				sc.Watch = false
			}
			cfg := server.Config{Source: args[0], CORSOrigin: sc.CORSOrigin, Options: opts}
			return c.runServe(cmd.Context(), cfg, sc.Addr, sc.Watch, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "*", "Access-Control-Allow-Origin value (empty disables CORS)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when the source file changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.NoEdges, "no-edges", false, "omit edges from the canvas")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", false, "omit the title from the canvas")
	lf.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config, addr string, watch, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, cfg, c.Logger)

	spinner := newSpinnerWithContext(ctx, "Loading "+cfg.Source+"...")
	spinner.Start()
	if err := srv.Reload(ctx); err != nil {
		spinner.StopWithError("Load failed")
		return err
	}
	spinner.StopWithSuccess("Loaded " + cfg.Source)

	if watch {
		go func() {
			err := srv.Watch(ctx)
			switch {
			case errors.Is(err, errors.ErrCodeUnsupported):
				c.Logger.Debug("Not watching remote source", "source", cfg.Source)
			case err != nil && ctx.Err() == nil:
				c.Logger.Warn("Watch stopped", "err", err)
			}
		}()
	}

	printInfo("Listening on %s", StyleLink.Render(displayAddr(addr)))
	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns ":8080" into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
