package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"designmap-cli/internal/export"
)

func (m appModel) updatePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "c":
		if err := export.CopyToClipboard(export.BuildPrompt(m.db)); err != nil {
			m.status = "copy failed: " + err.Error()
			m.statusErr = true
		} else {
			m.status = "prompt copied to clipboard"
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) viewPrompt() string {
	width := m.width
	if width > 100 {
		width = 100
	}
	out := renderMarkdown(export.BuildPrompt(m.db), width)
	return out + "\n" + styleMuted().Render("y: copy prompt to clipboard") + "\n"
}
