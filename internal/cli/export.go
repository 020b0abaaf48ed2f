package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"driftboard/internal/model"
	"driftboard/internal/store"
)

// Export/import move boards through the nested-JSON wire shape, so boards
// can be versioned, diffed, or fed to other tools.

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the board as nested JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := loadBoard(app)
			if err != nil {
				return err
			}
			path := strings.TrimSpace(args[0])
			if err := store.WriteBoardJSON(path, b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d tasks to %s\n", countBoardTasks(b), path)
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with a nested-JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return err
			}
			imported, err := store.ReadBoardJSON(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if err := s.Save(&imported); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", countBoardTasks(&imported))
			return nil
		},
	}
}

func countBoardTasks(b *store.Board) int {
	return model.CountTasks(b.Tasks)
}
