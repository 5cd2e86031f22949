package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	var transport string
	var addr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the machines as Model Context Protocol tools",
		Long: `Exposes list_machines, run_machine and get_run as MCP tools, plus the machine
catalog as the turing://machines resource. The stdio transport is meant to be
launched by an MCP client; sse listens on --addr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			srv := mcp.NewServer(app.Engine, app.Logger)
			switch transport {
			case "stdio":
				return srv.ServeStdio()
			case "sse":
				sc := cli.NewSignalContext(cmd.Context())
				defer sc.Cancel()
				return cli.HandleExecutionError(srv.ServeSSE(sc, addr))
			default:
				return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio or sse")
	cmd.Flags().StringVar(&addr, "addr", ":8081", "Listen address for the sse transport")
	return cmd
}
