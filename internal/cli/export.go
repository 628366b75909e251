package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"designmap-cli/internal/export"
	"designmap-cli/internal/layout"
	"designmap-cli/internal/mutate"
	"designmap-cli/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rendered map, charts, or slide deck",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "map [out.png]",
		Short: "Export the design map as a PNG image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := argOr(args, 0, "design-map.png")
			_, db, err := app.load()
			if err != nil {
				return err
			}
			png, err := export.MapPNG(db)
			if err != nil {
				return describeMapErr(err, db)
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "charts [out.png]",
		Short: "Export the time-allocation charts as a PNG image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := argOr(args, 0, "design-map-charts.png")
			_, db, err := app.load()
			if err != nil {
				return err
			}
			png, err := export.ChartsPNG(db)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "deck [out.pdf]",
		Short: "Export a slide deck (metadata, grid, legend, charts)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := argOr(args, 0, "design-map-deck.pdf")
			_, db, err := app.load()
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.Deck(db, f); err != nil {
				return describeMapErr(err, db)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "json [out.json]",
		Short: "Export the raw snapshot as a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := argOr(args, 0, "design-map.json")
			_, db, err := app.load()
			if err != nil {
				return err
			}
			if err := store.SaveJSON(out, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})

	return cmd
}

func newPromptCmd(app *App) *cobra.Command {
	var copyFlag bool
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the lesson summary prompt (optionally copy to clipboard)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			p := export.BuildPrompt(db)
			if copyFlag {
				if err := export.CopyToClipboard(p); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the prompt to the system clipboard")
	return cmd
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}

// describeMapErr turns the no-complete-activities error into the user-facing
// validation message naming the offending ids.
func describeMapErr(err error, db *store.DB) error {
	if errors.Is(err, layout.ErrNoCompleteActivities) {
		return errors.New(mutate.ValidationMessage(mutate.IncompleteIDs(db)))
	}
	return err
}
