package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"designmap-cli/internal/model"
	"designmap-cli/internal/mutate"
)

func (m appModel) updateModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmClear:
		return m.updateConfirmClearKey(msg)
	case modalEditor:
		return m.updateEditorModalKey(msg)
	}
	return m, nil
}

func (m appModel) updateConfirmClearKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		mutate.ClearActivities(m.db)
		m.cursor = 0
		m.grid = nil
		m.modal = modalNone
		cmd := m.persist()
		return m, cmd
	case "esc", "n", "ctrl+g":
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

// The editor modal edits one activity in place, opened by clicking its box on
// the design map.
func (m appModel) updateEditorModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.db.FindActivity(m.editorID)
	if a == nil {
		m.modal = modalNone
		return m, nil
	}

	if m.editorEdit != nil {
		switch msg.String() {
		case "esc", "ctrl+g":
			m.editorEdit = nil
			return m, nil
		case "enter":
			_, _ = mutate.UpdateActivity(m.db, m.editorID, m.editorEdit.spec.key, m.editorEdit.input.Value())
			m.editorEdit = nil
			cmd := m.persist()
			gen := m.regenerateCmd()
			return m, tea.Batch(cmd, gen)
		}
		cmd := m.editorEdit.update(msg)
		return m, cmd
	}

	spec := activityFields[m.editorField]
	switch msg.String() {
	case "esc", "q", "ctrl+g":
		m.modal = modalNone
		return m, nil
	case "up", "k":
		if m.editorField > 0 {
			m.editorField--
		}
		return m, nil
	case "down", "j":
		if m.editorField < len(activityFields)-1 {
			m.editorField++
		}
		return m, nil
	case "left":
		if spec.enum != nil {
			_, _ = mutate.UpdateActivity(m.db, m.editorID, spec.key, cycleEnum(spec.enum, activityValue(*a, spec.key), -1))
			cmd := m.persist()
			gen := m.regenerateCmd()
			return m, tea.Batch(cmd, gen)
		}
		return m, nil
	case "right", " ":
		if spec.enum != nil {
			_, _ = mutate.UpdateActivity(m.db, m.editorID, spec.key, cycleEnum(spec.enum, activityValue(*a, spec.key), 1))
			cmd := m.persist()
			gen := m.regenerateCmd()
			return m, tea.Batch(cmd, gen)
		}
		return m, nil
	case "enter":
		if spec.enum != nil {
			_, _ = mutate.UpdateActivity(m.db, m.editorID, spec.key, cycleEnum(spec.enum, activityValue(*a, spec.key), 1))
			cmd := m.persist()
			gen := m.regenerateCmd()
			return m, tea.Batch(cmd, gen)
		}
		m.editorEdit = newFieldEditor(spec, activityValue(*a, spec.key))
		return m, nil
	case "i":
		// Renumbering after the insert can shift ids; follow the new record.
		if id, err := mutate.InsertAfter(m.db, m.editorID, model.Activity{}); err == nil {
			m.editorID = id
			m.editorField = 0
		}
		cmd := m.persist()
		gen := m.regenerateCmd()
		return m, tea.Batch(cmd, gen)
	case "D":
		_ = mutate.DeleteActivity(m.db, m.editorID)
		m.modal = modalNone
		cmd := m.persist()
		gen := m.regenerateCmd()
		return m, tea.Batch(cmd, gen)
	}
	return m, nil
}

// regenerateCmd re-places the grid after a map-side edit so the open view
// stays consistent with the data. No-op while the map was never generated.
func (m *appModel) regenerateCmd() tea.Cmd {
	if m.grid == nil {
		return nil
	}
	next, cmd := m.generate()
	if am, ok := next.(appModel); ok {
		m.grid = am.grid
		m.mapErr = am.mapErr
	}
	// Stay where we are instead of jumping tabs.
	return cmd
}

func (m appModel) overlayModal(string) string {
	var box string
	switch m.modal {
	case modalConfirmClear:
		box = m.renderConfirmClearModal()
	case modalEditor:
		box = m.renderEditorModal()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) renderConfirmClearModal() string {
	body := strings.Join([]string{
		"Remove every activity and start over with a single blank one?",
		"",
		styleMuted().Render("enter/y: clear   esc/n: cancel"),
	}, "\n")
	return renderModalBox(m.width, "Clear activities", body)
}

func (m appModel) renderEditorModal() string {
	a := m.db.FindActivity(m.editorID)
	if a == nil {
		return renderModalBox(m.width, "Activity", "gone")
	}

	var b strings.Builder
	for i, spec := range activityFields {
		label := fmt.Sprintf("%-24s", spec.label)
		if i == m.editorField {
			label = styleSelected().Render(label)
		}

		var value string
		switch {
		case m.editorEdit != nil && i == m.editorField:
			value = m.editorEdit.input.View()
			if c := m.editorEdit.counter(); c != "" {
				value += "  " + c
			}
		case spec.enum != nil:
			code := activityValue(*a, spec.key)
			if code == "" {
				value = styleMuted().Render("(unset)")
			} else {
				value = spec.enum.Label(code)
			}
		default:
			value = activityValue(*a, spec.key)
			if value == "" {
				value = styleMuted().Render("—")
			}
		}
		b.WriteString(label + "  " + value + "\n")
	}

	help := "arrows: move/cycle   enter: edit   i: insert after   D: delete   esc: close"
	if m.editorEdit != nil {
		help = "enter: save   esc: cancel"
	}
	body := b.String() + "\n" + styleMuted().Render(help)
	title := fmt.Sprintf("Activity %d", a.ID)
	return renderModalBox(m.width, title, body)
}

// renderModalBox draws a titled surface without borders: some terminals show
// background artifacts when nesting bordered components inside a modal with a
// background color.
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)
	titleBar := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Foreground(colorAccentFg).
		Background(colorAccent).
		Padding(0, 1).
		Render(title)
	body := lipgloss.NewStyle().
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Padding(1, 1).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, titleBar, body)
}

func modalBodyWidth(width int) int {
	w := width - 8
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}
