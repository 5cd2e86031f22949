package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [machine...]",
		Short: "Check machine tables against their alphabets",
		Long: `Applies every transition of each machine to every symbol of its alphabet and
reports next states that do not exist, missing transitions and unknown moves.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			defs := app.Engine.Machines()
			if len(args) > 0 {
				defs = defs[:0]
				for _, name := range args {
					def, err := app.Engine.Machine(name)
					if err != nil {
						return err
					}
					defs = append(defs, def)
				}
			}

			var errs []error
			for _, def := range defs {
				if err := def.Validate(); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", def.Name, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d states)\n", def.Name, len(def.Table))
			}
			return errors.Join(errs...)
		},
	}
}
