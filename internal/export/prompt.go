// Package export converts the rendered lesson state into external artifacts:
// a plain-text prompt, PNG rasters of the map and charts, and a slide deck.
package export

import (
	"fmt"
	"strings"

	"designmap-cli/internal/model"
	"designmap-cli/internal/store"
)

// BuildPrompt summarizes the lesson as a markdown document for external use
// (copy-to-clipboard). The format matches the importer grammar, so a prompt
// pasted back in reproduces the lesson.
func BuildPrompt(db *store.DB) string {
	var b strings.Builder
	m := db.Meta

	b.WriteString("# Lesson Design Map\n\n")
	writeField(&b, "Topic", m.Topic)
	writeField(&b, "Level", m.Level)
	writeField(&b, "Duration", withSuffix(m.Duration, " minutes"))
	writeField(&b, "Student Profile", m.StudentProfile)
	writeField(&b, "Learning Outcomes", m.LearningOutcomes)
	writeField(&b, "Prerequisite Knowledge", m.PrerequisiteKnowledge)
	writeField(&b, "Learning Issues", m.LearningIssues)
	if m.TechIntegration != "" && m.TechIntegration != model.TechIntegrationDefault {
		writeField(&b, "Technology Integration", model.TechIntegrations.Label(m.TechIntegration))
	}

	for _, a := range db.Activities {
		if !a.Complete() {
			continue
		}
		fmt.Fprintf(&b, "\n## Activity %d\n\n", a.ID)
		writeField(&b, "Interaction Type", model.Interactions.Label(a.Interaction))
		writeField(&b, "Active Learning Process", model.Strategies.Label(a.Strategy))
		if a.KeyApp != "" {
			writeField(&b, "Key Application", model.KeyApplications.Label(a.KeyApp))
		}
		writeField(&b, "Time", withSuffix(a.Time, " mins"))
		writeField(&b, "Details", a.Details)
		writeField(&b, "Tool", a.Tool)
	}

	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", key, value)
}

func withSuffix(value, suffix string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value + suffix
}
