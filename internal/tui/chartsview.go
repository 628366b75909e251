package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"designmap-cli/internal/charts"
)

const chartBarW = 24

// viewCharts renders the three time breakdowns as labelled bars. The exported
// PNG draws real pies; in the terminal a proportional bar carries the same
// numbers.
func (m appModel) viewCharts() string {
	var b strings.Builder
	for i, c := range charts.All(m.db.Activities) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Title) + "\n")
		if c.Total == 0 {
			b.WriteString(styleMuted().Render("  no time recorded") + "\n")
			continue
		}
		for _, s := range c.Slices {
			if s.Minutes == 0 {
				continue
			}
			bar := strings.Repeat("█", barCells(s.Minutes, c.Total))
			block := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
			b.WriteString(fmt.Sprintf("  %-28s %s %3d min  %s\n",
				s.Label, block.Render(bar), s.Minutes, c.Percent(s)))
		}
		b.WriteString(styleMuted().Render(fmt.Sprintf("  total: %d min", c.Total)) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("E: export charts PNG") + "\n")
	return b.String()
}

func barCells(minutes, total int) int {
	n := minutes * chartBarW / total
	if n < 1 {
		n = 1
	}
	return n
}
