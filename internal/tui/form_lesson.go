package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"designmap-cli/internal/model"
)

func (m appModel) updateLessonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	spec := metaFields[m.metaFocus]

	switch msg.String() {
	case "up", "k":
		if m.metaFocus > 0 {
			m.metaFocus--
		}
		return m, nil
	case "down", "j":
		if m.metaFocus < len(metaFields)-1 {
			m.metaFocus++
		}
		return m, nil
	case "left", "h":
		if spec.enum != nil {
			setMetaValue(&m.db.Meta, spec.key, cycleEnum(spec.enum, metaValue(m.db.Meta, spec.key), -1))
			cmd := m.persist()
			return m, cmd
		}
		return m, nil
	case "right", "l", " ":
		if spec.enum != nil {
			setMetaValue(&m.db.Meta, spec.key, cycleEnum(spec.enum, metaValue(m.db.Meta, spec.key), +1))
			cmd := m.persist()
			return m, cmd
		}
		return m, nil
	case "enter":
		if spec.enum != nil {
			setMetaValue(&m.db.Meta, spec.key, cycleEnum(spec.enum, metaValue(m.db.Meta, spec.key), +1))
			cmd := m.persist()
			return m, cmd
		}
		m.metaEdit = newFieldEditor(spec, metaValue(m.db.Meta, spec.key))
		return m, nil
	}
	return m, nil
}

func (m appModel) viewLesson() string {
	var b strings.Builder
	b.WriteString(styleMuted().Render("Lesson metadata  enter: edit  arrows: move/cycle") + "\n\n")

	for i, spec := range metaFields {
		marker := "  "
		label := spec.label
		if i == m.metaFocus {
			marker = "> "
			label = styleSelected().Render(label)
		}

		value := metaValue(m.db.Meta, spec.key)
		if spec.enum != nil {
			if value == "" {
				value = styleMuted().Render("(unset)")
			} else {
				value = spec.enum.Label(value)
			}
		} else if i == m.metaFocus && m.metaEdit != nil {
			value = m.metaEdit.input.View()
		} else if value == "" {
			value = styleMuted().Render("—")
		}

		b.WriteString(marker + label + ": " + value + "\n")
	}

	if m.validLine != "" {
		b.WriteString("\n" + styleWarn().Render(m.validLine) + "\n")
	}
	return b.String()
}

// techIntegrationSummary is shown on the map header when set beyond default.
func techIntegrationSummary(meta model.Meta) string {
	if meta.TechIntegration == "" || meta.TechIntegration == model.TechIntegrationDefault {
		return ""
	}
	return model.TechIntegrations.Label(meta.TechIntegration)
}
