package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/turing/internal/cli"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the machines over an HTTP JSON API",
		Long: `Starts an HTTP server exposing the machine catalog, run creation, stored runs,
a server-sent event stream of finished runs (/events) and Prometheus metrics
(/metrics). Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			if cmd.Flags().Changed("addr") {
				app.Config.HTTP.Addr = addr
			}

			handler := httpAdapter.NewHandler(app.Engine,
				httpAdapter.WithLogger(app.Logger),
				httpAdapter.WithMetrics(app.Metrics.Handler()),
				httpAdapter.WithStreams(app.Streams),
			)
			srv := &http.Server{
				Addr:              app.Config.HTTP.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			g, ctx := errgroup.WithContext(sc)
			g.Go(func() error {
				app.Logger.Info("http server listening", "addr", srv.Addr)
				fmt.Fprintf(cmd.ErrOrStderr(), "turing listening on %s\n", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if sig := sc.Signal(); sig != nil {
					app.Logger.Info("shutting down", "signal", sig.String())
				}
				return srv.Shutdown(shutdownCtx)
			})
			return cli.HandleExecutionError(g.Wait())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to http.addr from the config)")
	return cmd
}
