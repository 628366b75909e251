package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"designmap-cli/internal/model"
	"designmap-cli/internal/mutate"
)

func (m appModel) updateActivitiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.db.Activities) == 0 {
		// Store lifecycle keeps one seeded activity, but guard anyway.
		if msg.String() == "a" {
			mutate.AddActivity(m.db, model.Activity{})
			cmd := m.persist()
			return m, cmd
		}
		return m, nil
	}
	if m.cursor >= len(m.db.Activities) {
		m.cursor = len(m.db.Activities) - 1
	}
	cur := m.db.Activities[m.cursor]
	spec := activityFields[m.fieldIdx]

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.db.Activities)-1 {
			m.cursor++
		}
		return m, nil
	case "left", "h":
		if m.fieldIdx > 0 {
			m.fieldIdx--
		}
		return m, nil
	case "right", "l":
		if m.fieldIdx < len(activityFields)-1 {
			m.fieldIdx++
		}
		return m, nil
	case " ":
		if spec.enum != nil {
			_, _ = mutate.UpdateActivity(m.db, cur.ID, spec.key,
				cycleEnum(spec.enum, activityValue(cur, spec.key), +1))
			cmd := m.persist()
			return m, cmd
		}
		return m, nil
	case "enter":
		if spec.enum != nil {
			_, _ = mutate.UpdateActivity(m.db, cur.ID, spec.key,
				cycleEnum(spec.enum, activityValue(cur, spec.key), +1))
			cmd := m.persist()
			return m, cmd
		}
		m.actEdit = newFieldEditor(spec, activityValue(cur, spec.key))
		return m, nil
	case "a":
		id := mutate.AddActivity(m.db, model.Activity{})
		m.cursor = id - 1
		cmd := m.persist()
		return m, cmd
	case "i":
		if id, err := mutate.InsertAfter(m.db, cur.ID, model.Activity{}); err == nil {
			m.cursor = id - 1
		}
		cmd := m.persist()
		return m, cmd
	case "D":
		mutate.DeleteActivity(m.db, cur.ID)
		if m.cursor >= len(m.db.Activities) && m.cursor > 0 {
			m.cursor--
		}
		cmd := m.persist()
		return m, cmd
	case "C":
		m.modal = modalConfirmClear
		return m, nil
	}
	return m, nil
}

// updateFieldEditorKey drives whichever inline text editor is active
// (lesson metadata or activity field).
func (m appModel) updateFieldEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.metaEdit
	isMeta := true
	if ed == nil {
		ed = m.actEdit
		isMeta = false
	}

	switch msg.String() {
	case "esc", "ctrl+g":
		m.metaEdit = nil
		m.actEdit = nil
		return m, nil
	case "enter":
		value := ed.input.Value()
		m.metaEdit = nil
		m.actEdit = nil
		if isMeta {
			setMetaValue(&m.db.Meta, ed.spec.key, value)
			cmd := m.persist()
			return m, cmd
		}
		if m.cursor < len(m.db.Activities) {
			id := m.db.Activities[m.cursor].ID
			res, err := mutate.UpdateActivity(m.db, id, ed.spec.key, value)
			if err == nil && res.Changed {
				cmd := m.persist()
				return m, cmd
			}
		}
		return m, nil
	}

	cmd := ed.update(msg)
	return m, cmd
}

func (m appModel) viewActivities() string {
	var b strings.Builder
	b.WriteString(styleMuted().Render(
		"a: add  i: insert after  D: delete  C: clear all  enter: edit/cycle  space: cycle") + "\n\n")

	for i, a := range m.db.Activities {
		selected := i == m.cursor
		b.WriteString(m.renderActivityRow(a, selected))
		b.WriteString("\n")
	}

	if m.validLine != "" {
		b.WriteString(styleWarn().Render(m.validLine) + "\n")
	}
	return b.String()
}

func (m appModel) renderActivityRow(a model.Activity, selected bool) string {
	num := fmt.Sprintf("%2d", a.ID)
	if !a.Complete() {
		num = styleWarn().Render(num + "!")
	} else {
		num += " "
	}

	var parts []string
	for fi, spec := range activityFields {
		value := activityValue(a, spec.key)
		display := value
		if spec.enum != nil {
			if value == "" {
				display = "—"
			} else {
				display = spec.enum.Label(value)
			}
		}
		if selected && fi == m.fieldIdx && m.actEdit != nil {
			display = m.actEdit.input.View() + " " + m.actEdit.counter()
		} else if spec.max > 0 {
			n := len([]rune(value))
			c := fmt.Sprintf(" %d/%d", n, spec.max)
			if n > spec.max {
				display += styleWarn().Render(c)
			} else if selected {
				display += styleMuted().Render(c)
			}
		}
		if display == "" {
			display = styleMuted().Render("—")
		}

		cell := spec.label + ": " + display
		if selected && fi == m.fieldIdx {
			cell = styleSelected().Render(cell)
		}
		parts = append(parts, cell)
	}

	row := num + " " + strings.Join(parts[:3], "  ")
	detail := "    " + strings.Join(parts[3:], "  ")
	if selected {
		return row + "\n" + detail
	}
	return row + "\n" + faintIfDark(styleMuted()).Render(detail)
}
