package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			runs, err := app.Engine.Runs(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN ID\tMACHINE\tSTATE\tSTEPS\tRESULT\tFINISHED")
			for _, snap := range runs {
				result := "halted"
				switch {
				case snap.Error != "":
					result = "error"
				case snap.HaltLabel != "":
					result = snap.HaltLabel
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					snap.RunID, snap.Machine, snap.State, snap.Steps, result, snap.FinishedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <run-id>...",
		Short: "Delete stored runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			for _, id := range args {
				if err := app.Engine.DeleteRun(cmd.Context(), id); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}
