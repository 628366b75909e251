package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"designmap-cli/internal/export"
	"designmap-cli/internal/layout"
	"designmap-cli/internal/mutate"
	"designmap-cli/internal/store"
)

type exportKind int

const (
	exportKindMap exportKind = iota
	exportKindCharts
	exportKindDeck
)

func (k exportKind) filename() string {
	switch k {
	case exportKindCharts:
		return "design-map-charts.png"
	case exportKindDeck:
		return "design-map-deck.pdf"
	}
	return "design-map.png"
}

// startExport kicks off an asynchronous export into the working directory.
// A single export runs at a time: the trigger is disabled until the previous
// one reports back.
func (m appModel) startExport(kind exportKind) (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	m.exporting = true
	// The command's goroutine must not share the live record list with the
	// UI loop; edits made while the export runs do not leak into the output.
	db := m.db.Clone()
	return m, func() tea.Msg {
		path := kind.filename()
		return exportDoneMsg{path: path, err: runExport(kind, db, path)}
	}
}

func runExport(kind exportKind, db *store.DB, path string) error {
	var data []byte
	var err error
	switch kind {
	case exportKindMap:
		data, err = export.MapPNG(db)
	case exportKindCharts:
		data, err = export.ChartsPNG(db)
	case exportKindDeck:
		f, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		if err := export.Deck(db, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if err != nil {
		if errors.Is(err, layout.ErrNoCompleteActivities) {
			return errors.New(mutate.ValidationMessage(mutate.IncompleteIDs(db)))
		}
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
