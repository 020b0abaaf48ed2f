package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"driftboard/internal/store"
	"driftboard/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "driftboard",
		Short:        "Driftboard local-first task canvas CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  driftboard

  # Scriptable commands
  driftboard tasks add "Buy milk"
  driftboard tasks list --status active --sort due
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DRIFTBOARD_DIR", ""), "Path to board dir (overrides .driftboard discovery)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DRIFTBOARD_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newWebCmd(app))

	return cmd
}

func (app *App) storeDir() (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func (app *App) openStore() (store.Store, error) {
	dir, err := app.storeDir()
	if err != nil {
		return store.Store{}, err
	}
	return store.Store{Dir: dir}, nil
}

func runTUI(app *App) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}
	return tui.Run(s)
}
