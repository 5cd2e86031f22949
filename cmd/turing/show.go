package main

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	var window int

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			snap, err := app.Engine.Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fill := domain.Blank
			if def, err := app.Engine.Machine(snap.Machine); err == nil {
				fill = def.Fill
			}
			return printSnapshot(cmd, snap, fill, window, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	cmd.Flags().IntVar(&window, "window", 0, "Cells shown on each side of the head (0 shows the used tape)")
	return cmd
}
