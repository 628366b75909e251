package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"designmap-cli/internal/format"
	"designmap-cli/internal/importer"
	"designmap-cli/internal/store"
)

func newImportCmd(app *App) *cobra.Command {
	var merge, snapshot bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a structured lesson document (replaces the current plan)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parsed *store.DB
			if snapshot {
				var err error
				parsed, err = store.LoadJSON(args[0])
				if err != nil {
					return fmt.Errorf("read snapshot %s: %w", args[0], err)
				}
			} else {
				b, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				parsed, err = importer.Parse(string(b))
				if err != nil {
					return fmt.Errorf("parse %s: %w", args[0], err)
				}
			}

			s, db, err := app.load()
			if err != nil {
				return err
			}
			if merge {
				for _, a := range parsed.Activities {
					a.ID = len(db.Activities) + 1
					db.Activities = append(db.Activities, a)
				}
			} else {
				*db = *parsed
			}
			saveOrWarn(s, db)
			return format.WriteJSON(cmd.OutOrStdout(), db, app.PrettyJSON)
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "Append imported activities instead of replacing the plan")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Treat the file as a JSON snapshot (export json) instead of a lesson document")
	return cmd
}

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a .designmap store in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			dir, _ := app.storeDir()
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (%d activities)\n", dir, len(db.Activities))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved snapshot and start from a fresh store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			dir, err := app.storeDir()
			if err != nil {
				return err
			}
			s := store.Store{Dir: dir}
			if err := s.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm resetting the store")
	return cmd
}
