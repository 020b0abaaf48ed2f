package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a board in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return err
			}
			b, err := s.Load()
			if err != nil {
				return err
			}
			if err := s.Save(b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized board in %s\n", s.Dir)
			return nil
		},
	}
}
