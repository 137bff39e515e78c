package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardfan/internal/server"
	"github.com/matzehuels/cardfan/pkg/cache"
)

// serveCommand exposes the layout engine over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		entries int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET  /healthz     build information
  POST /v1/layout   compute transforms for {"count", "width", "height", "config"}

Responses are memoized in memory.`,
		Example: `  cardfan serve --addr :9090
  curl -s localhost:9090/v1/layout -d '{"count":5,"width":960,"height":540}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			srv := server.New(cfg.Fan,
				server.WithLogger(c.Logger),
				server.WithCache(cache.NewMemoryCache(entries)),
			)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().IntVar(&entries, "cache-entries", cache.DefaultMemoryEntries, "layouts kept in memory")
	return cmd
}
