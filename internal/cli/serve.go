package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gridsmith/gridview/internal/server"
	"github.com/gridsmith/gridview/pkg/component/store"
	"github.com/gridsmith/gridview/pkg/config"
)

// newServeCmd creates the serve command that runs the dashboard HTTP server.
//
// The server exposes the topology state, node interaction endpoints, render
// endpoints, component CRUD, and a server-sent events stream under /api.
// It reconciles the canvas whenever the component inventory changes.
func newServeCmd(cfgPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the topology dashboard server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			c, err := openCache(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if closer, ok := c.(io.Closer); ok {
				defer closer.Close()
			}

			srv := server.New(store.NewWatched(st), c, cfg.Cache.TTL(), logger)
			if err := srv.Start(ctx); err != nil {
				return err
			}

			printInfo("Serving topology dashboard on http://%s", cfg.Listen)
			printDetail("store: %s, cache: %s", cfg.Store.Backend, cfg.Cache.Backend)
			return srv.Serve(ctx, cfg.Listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}
