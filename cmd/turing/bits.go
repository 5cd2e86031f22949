package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/bits"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

func newBitsCmd(root *rootOptions) *cobra.Command {
	var decode bool
	var machine string

	cmd := &cobra.Command{
		Use:   "bits <n>",
		Short: "Print the 32-bit tape encoding of an integer",
		Long: `Prints n as 32 binary symbols, most significant bit first. With --decode the
argument is read as bits instead. With --machine the bits are seeded on a tape,
the machine is run over them and the first 32 cells are decoded again.`,
		Example: `  turing bits 5554
  turing bits --decode 1010110110010
  turing bits 5554 --machine invert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if decode {
				n, err := bits.Decode(domain.Symbols(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, n)
				return nil
			}

			n, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("not a 32-bit integer: %w", err)
			}
			encoded := string(bits.Encode(int32(n)))
			if machine == "" {
				fmt.Fprintln(out, encoded)
				return nil
			}

			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			cursor := 0
			snap, err := app.Engine.Run(cmd.Context(), turing.RunRequest{Machine: machine, Tape: encoded, Cursor: &cursor})
			if err != nil {
				return err
			}
			result := []domain.Symbol(snap.Cells)[:bits.Width]
			m, err := bits.Decode(result)
			if err != nil {
				return fmt.Errorf("machine %s left a tape that is not bits: %w", machine, err)
			}
			fmt.Fprintf(out, "%s %d\n%s %d\n", encoded, n, string(result), m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "Decode bits to an integer")
	cmd.Flags().StringVar(&machine, "machine", "", "Run this machine over the encoded bits")
	return cmd
}
