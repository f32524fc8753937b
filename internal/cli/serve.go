package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/internal/api"
)

// serveCommand creates the serve command running the HTTP preview service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview service",
		Long: `Run the HTTP preview service.

POST UXL text to /api/parse, /api/layout, /api/map or /api/render and get the
document, layouts, map or a rendered wireframe back. The service shares the
configured cache with the other commands and stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := api.NewServer(runner, c.Logger, c.Config)
	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}
