package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/api"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// serveCommand creates the serve command that exposes the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  POST /v1/layouts        place a word list, record it and return placements
  GET  /v1/layouts        list recent layouts
  GET  /v1/layouts/{id}   fetch one layout
  POST /v1/render         place and render (?format=svg|png|pdf|json)
  GET  /healthz           liveness
  GET  /version           build information

Layout and render flags set the defaults that request options override.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			opts := flags.apply(cmd.Flags(), c.Config.ToPipelineOptions())
			return c.runServe(cmd.Context(), addr, opts, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	flags.addLayoutFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, defaults pipeline.Options, noCache bool) error {
	defaults.Logger = c.Logger
	if err := defaults.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if runner.Store == nil {
		c.Logger.Warn("history disabled, /v1/layouts listing is unavailable")
	}

	srv := api.NewServer(runner, defaults, c.Logger)
	printInfo("Listening on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}
