package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"designmap-cli/internal/store"
	"designmap-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "designmap",
		Short:        "Lesson design map (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  designmap

  # Scriptable commands
  designmap activities list
  designmap activities add --interaction class --alp activate --details "Recap quiz"

  # Export the rendered map
  designmap export map design-map.png
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				dir, err := app.storeDir()
				if err != nil {
					return err
				}
				return tui.Run(dir)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DESIGNMAP_DIR", ""), "Path to store dir (default: nearest .designmap, else ./.designmap)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newActivitiesCmd(app))
	cmd.AddCommand(newMetaCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newPromptCmd(app))
	return cmd
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (a *App) storeDir() (string, error) {
	if strings.TrimSpace(a.Dir) != "" {
		return a.Dir, nil
	}
	return store.DefaultDir()
}

// load opens the store and seeds a blank activity when the snapshot is fresh,
// matching the startup lifecycle.
func (a *App) load() (store.Store, *store.DB, error) {
	dir, err := a.storeDir()
	if err != nil {
		return store.Store{}, nil, err
	}
	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return s, nil, fmt.Errorf("load store: %w", err)
	}
	if store.SeedIfEmpty(db) {
		if err := s.Save(db); err != nil {
			// Persistence failures are non-fatal; in-memory state stays usable.
			fmt.Fprintf(os.Stderr, "warning: unable to save design map state: %v\n", err)
		}
	}
	return s, db, nil
}

func saveOrWarn(s store.Store, db *store.DB) {
	if err := s.Save(db); err != nil {
		fmt.Fprintf(os.Stderr, "warning: unable to save design map state: %v\n", err)
	}
}
