package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"designmap-cli/internal/format"
	"designmap-cli/internal/model"
	"designmap-cli/internal/mutate"
)

func newActivitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Manage the activity list",
	}
	cmd.AddCommand(newActivitiesListCmd(app))
	cmd.AddCommand(newActivitiesAddCmd(app))
	cmd.AddCommand(newActivitiesSetCmd(app))
	cmd.AddCommand(newActivitiesDeleteCmd(app))
	cmd.AddCommand(newActivitiesClearCmd(app))
	return cmd
}

func newActivitiesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities (incomplete ones are flagged, never dropped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			type row struct {
				model.Activity
				Complete bool `json:"complete"`
			}
			out := make([]row, 0, len(db.Activities))
			for _, a := range db.Activities {
				out = append(out, row{Activity: a, Complete: a.Complete()})
			}
			return format.WriteJSON(cmd.OutOrStdout(), out, app.PrettyJSON)
		},
	}
}

func newActivitiesAddCmd(app *App) *cobra.Command {
	var (
		interaction string
		alp         string
		keyApp      string
		timeMins    string
		details     string
		tool        string
		afterID     int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity (appended, or inserted after --after)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := app.load()
			if err != nil {
				return err
			}
			initial := model.Activity{
				Interaction: model.Interactions.Parse(interaction),
				Strategy:    model.Strategies.Parse(alp),
				KeyApp:      model.KeyApplications.Parse(keyApp),
				Time:        timeMins,
				Details:     details,
				Tool:        tool,
			}
			var id int
			if afterID > 0 {
				id, err = mutate.InsertAfter(db, afterID, initial)
				if err != nil {
					return err
				}
			} else {
				id = mutate.AddActivity(db, initial)
			}
			saveOrWarn(s, db)
			return format.WriteJSON(cmd.OutOrStdout(), db.FindActivity(id), app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&interaction, "interaction", "", "Interaction type (code or label)")
	cmd.Flags().StringVar(&alp, "alp", "", "Active learning process (code or label)")
	cmd.Flags().StringVar(&keyApp, "keyapp", "", "Key application of technology (code or label)")
	cmd.Flags().StringVar(&timeMins, "time", "", "Time in minutes")
	cmd.Flags().StringVar(&details, "details", "", "Activity details")
	cmd.Flags().StringVar(&tool, "tool", "", "Tech tool")
	cmd.Flags().IntVar(&afterID, "after", 0, "Insert immediately after this activity id")
	return cmd
}

func newActivitiesSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Set one activity field (interaction|alp|keyApp|time|details|tech)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid activity id: %q", args[0])
			}
			field, value := args[1], args[2]
			switch field {
			case mutate.FieldInteraction:
				value = model.Interactions.Parse(value)
			case mutate.FieldStrategy:
				value = model.Strategies.Parse(value)
			case mutate.FieldKeyApp:
				value = model.KeyApplications.Parse(value)
			}

			s, db, err := app.load()
			if err != nil {
				return err
			}
			res, err := mutate.UpdateActivity(db, id, field, value)
			if err != nil {
				return err
			}
			if res.Activity == nil {
				// Missing id is a silent no-op for the store; surface it on
				// stderr for interactive callers without failing the command.
				fmt.Fprintf(os.Stderr, "activity %d not found; nothing changed\n", id)
				return nil
			}
			if res.Changed {
				saveOrWarn(s, db)
			}
			return format.WriteJSON(cmd.OutOrStdout(), res.Activity, app.PrettyJSON)
		},
	}
}

func newActivitiesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an activity, or the last one when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := app.load()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if !mutate.DeleteLast(db) {
					return fmt.Errorf("no activities to delete")
				}
			} else {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid activity id: %q", args[0])
				}
				if !mutate.DeleteActivity(db, id) {
					return mutate.NotFoundError{ID: id}
				}
			}
			saveOrWarn(s, db)
			return format.WriteJSON(cmd.OutOrStdout(), db.Activities, app.PrettyJSON)
		},
	}
}

func newActivitiesClearCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all activities and re-seed one blank activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			s, db, err := app.load()
			if err != nil {
				return err
			}
			mutate.ClearActivities(db)
			saveOrWarn(s, db)
			return format.WriteJSON(cmd.OutOrStdout(), db.Activities, app.PrettyJSON)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing all activities")
	return cmd
}
