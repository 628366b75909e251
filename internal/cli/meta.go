package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"designmap-cli/internal/format"
	"designmap-cli/internal/model"
)

func newMetaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Show or edit the lesson metadata",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the lesson metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := app.load()
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), db.Meta, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one metadata field (topic|level|studentProfile|duration|learningOutcomes|prerequisiteKnowledge|learningIssues|techIntegration)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := app.load()
			if err != nil {
				return err
			}
			if err := setMetaField(&db.Meta, args[0], args[1]); err != nil {
				return err
			}
			saveOrWarn(s, db)
			return format.WriteJSON(cmd.OutOrStdout(), db.Meta, app.PrettyJSON)
		},
	})

	return cmd
}

func setMetaField(m *model.Meta, field, value string) error {
	switch field {
	case "topic":
		m.Topic = value
	case "level":
		m.Level = value
	case "studentProfile":
		m.StudentProfile = value
	case "duration":
		m.Duration = value
	case "learningOutcomes":
		m.LearningOutcomes = value
	case "prerequisiteKnowledge":
		m.PrerequisiteKnowledge = value
	case "learningIssues":
		m.LearningIssues = value
	case "techIntegration":
		code := model.TechIntegrations.Parse(value)
		if code == "" {
			return fmt.Errorf("unknown technology-integration level: %q", value)
		}
		m.TechIntegration = code
	default:
		return fmt.Errorf("unknown metadata field: %q", field)
	}
	return nil
}
