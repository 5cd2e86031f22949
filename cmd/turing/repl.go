package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

func newReplCmd(root *rootOptions) *cobra.Command {
	var headless bool
	var window int

	cmd := &cobra.Command{
		Use:   "repl <machine>",
		Short: "Run a machine interactively, one tape per line",
		Long: `Reads tapes from standard input and runs the machine on each of them, printing
the final tape after every line. Type 'exit' or 'quit' (or send EOF) to stop.
Use --headless to read tapes from a pipe without prompts.`,
		Example: `  turing repl compare
  printf '110111\n11011\n' | turing repl compare --headless`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			def, err := app.Engine.Machine(args[0])
			if err != nil {
				return err
			}

			out := tui.NewOutput(cmd.OutOrStdout())
			if !headless {
				tui.PrintBanner(out, strings.TrimSpace(turing.Version))
			}
			view := tui.TapeView{Out: out, Window: window}

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			console := &turing.Console{
				Input:    cmd.InOrStdin(),
				Output:   cmd.OutOrStdout(),
				Headless: headless,
				Renderer: func(snap *domain.Snapshot) string {
					return fmt.Sprintf("%s\n%s", view.Render(snap, def.Fill), snap.RunID)
				},
			}
			return cli.HandleExecutionError(console.Run(sc, app.Engine, def.Name))
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "Disable banner and prompts")
	cmd.Flags().IntVar(&window, "window", 0, "Cells shown on each side of the head (0 shows the used tape)")
	return cmd
}
