package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available machines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			infos := dto.FromDefinitions(app.Engine.Machines())
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			md := tui.CatalogMarkdown(infos)
			if !tui.IsTerminal(out) {
				fmt.Fprint(out, md)
				return nil
			}
			render, err := tui.NewRenderer(tui.Width(out, 100))
			if err != nil {
				return err
			}
			rendered, err := render(md)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
