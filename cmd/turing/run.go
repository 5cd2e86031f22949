package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

type runOptions struct {
	tape   string
	cursor int
	fill   string
	window int
	json   bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <machine> [tape]",
		Short: "Run a machine on a tape and print the final tape",
		Long: `Builds a tape for the named machine, seeds it with the given symbols starting at
the cursor and steps until the machine halts or fails. The run is saved to the
configured store; use 'turing show <run-id>' to print it again.`,
		Example: `  turing run compare 110111
  turing run flip-halt --cursor 3 --fill 1
  turing run invert --tape "0110" --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				if cmd.Flags().Changed("tape") {
					return fmt.Errorf("tape given both as argument and --tape")
				}
				opts.tape = args[1]
			}

			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			req := turing.RunRequest{Machine: args[0], Tape: opts.tape}
			if cmd.Flags().Changed("cursor") {
				req.Cursor = &opts.cursor
			}
			if cmd.Flags().Changed("fill") {
				req.Fill = &opts.fill
			}

			snap, runErr := app.Engine.Run(cmd.Context(), req)
			if snap == nil {
				return runErr
			}

			def, err := app.Engine.Machine(req.Machine)
			if err != nil {
				return err
			}
			fill := def.Fill
			if req.Fill != nil {
				fill = []rune(*req.Fill)[0]
			}
			if err := printSnapshot(cmd, snap, fill, opts.window, opts.json); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("run %s: %w", snap.RunID, runErr)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tape, "tape", "", "Initial symbols, written from the cursor on")
	flags.IntVar(&opts.cursor, "cursor", 0, "Initial head position (defaults to the machine's)")
	flags.StringVar(&opts.fill, "fill", "", "Symbol for untouched cells (defaults to the machine's)")
	flags.IntVar(&opts.window, "window", 0, "Cells shown on each side of the head (0 shows the used tape)")
	flags.BoolVar(&opts.json, "json", false, "Print the snapshot as JSON")
	return cmd
}

func printSnapshot(cmd *cobra.Command, snap *domain.Snapshot, fill domain.Symbol, window int, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	view := tui.TapeView{Out: tui.NewOutput(out), Window: window}
	fmt.Fprintln(out, view.Render(snap, fill))
	fmt.Fprintln(out, strings.Join([]string{"run", snap.RunID, snap.Machine}, " "))
	return nil
}
