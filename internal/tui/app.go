package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"designmap-cli/internal/layout"
	"designmap-cli/internal/mutate"
	"designmap-cli/internal/store"
)

type tab int

const (
	tabLesson tab = iota
	tabActivities
	tabMap
	tabCharts
	tabPrompt
)

var tabNames = []string{"Lesson Info", "Activities", "Design Map", "Charts", "Prompt"}

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmClear
	modalEditor
)

type saveFlashExpiredMsg struct{ seq int }

type exportDoneMsg struct {
	path string
	err  error
}

// connectorPassMsg triggers the second render phase: connector routing over
// the committed grid geometry. Modeled as a scheduled continuation so routing
// always follows placement.
type connectorPassMsg struct{}

type appModel struct {
	store store.Store
	db    *store.DB

	width  int
	height int

	tab   tab
	modal modalKind

	// Lesson Info tab.
	metaFocus int
	metaEdit  *fieldEditor

	// Activities tab.
	cursor    int // index into db.Activities
	fieldIdx  int // index into activityFields
	actEdit   *fieldEditor
	validLine string

	// Design Map tab. grid is nil until a successful generate.
	grid    *layout.Grid
	mapErr  string
	drag    *dragState
	mapView mapViewport

	// Editor modal.
	editorID    int
	editorField int
	editorEdit  *fieldEditor

	exporting bool

	status    string
	statusErr bool
	saveFlash bool
	saveSeq   int
}

// Run starts the interactive editor over the store at dir.
func Run(dir string) error {
	s := store.Store{Dir: dir}
	db, loadWarn := loadOrEmpty(s)

	m := newAppModel(s, db)
	if loadWarn != "" {
		m.status = loadWarn
		m.statusErr = true
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// loadOrEmpty loads the snapshot, degrading to an empty in-memory plan with a
// warning when the saved state cannot be read. Startup never fails on a bad
// store; the next successful edit re-establishes persistence. The eager save
// is skipped on the degraded path so an unreadable store is not clobbered
// before the user has done anything.
func loadOrEmpty(s store.Store) (*store.DB, string) {
	db, err := s.Load()
	if err != nil {
		db = store.NewDB()
		store.SeedIfEmpty(db)
		return db, fmt.Sprintf("unable to load saved state: %v", err)
	}
	if store.SeedIfEmpty(db) {
		_ = s.Save(db)
	}
	return db, ""
}

func newAppModel(s store.Store, db *store.DB) appModel {
	m := appModel{
		store: s,
		db:    db,
		tab:   tabLesson,
	}
	m.refreshValidation()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// persist saves the snapshot after a mutating edit. Failures are surfaced in
// the status line and are non-fatal: the in-memory state remains usable.
func (m *appModel) persist() tea.Cmd {
	m.refreshValidation()
	if err := m.store.Save(m.db); err != nil {
		m.status = fmt.Sprintf("unable to save: %v", err)
		m.statusErr = true
		return nil
	}
	m.saveFlash = true
	m.saveSeq++
	seq := m.saveSeq
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return saveFlashExpiredMsg{seq: seq}
	})
}

func (m *appModel) refreshValidation() {
	ids := mutate.IncompleteIDs(m.db)
	m.validLine = mutate.ValidationMessage(ids)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveFlashExpiredMsg:
		if msg.seq == m.saveSeq {
			m.saveFlash = false
		}
		return m, nil

	case connectorPassMsg:
		if m.grid != nil {
			m.grid.Route()
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.status = fmt.Sprintf("export failed: %v", msg.err)
			m.statusErr = true
		} else {
			m.status = "exported " + msg.path
			m.statusErr = false
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals capture all keys.
	if m.modal != modalNone {
		return m.updateModalKey(msg)
	}
	// An active field editor captures everything except its exit keys.
	if m.metaEdit != nil || m.actEdit != nil {
		return m.updateFieldEditorKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil
	case "g":
		return m.generate()
	case "e":
		return m.startExport(exportKindMap)
	case "E":
		return m.startExport(exportKindCharts)
	case "P":
		return m.startExport(exportKindDeck)
	}

	switch m.tab {
	case tabLesson:
		return m.updateLessonKey(msg)
	case tabActivities:
		return m.updateActivitiesKey(msg)
	case tabMap:
		return m.updateMapKey(msg)
	case tabPrompt:
		return m.updatePromptKey(msg)
	}
	return m, nil
}

// generate validates the plan and renders the map and charts tabs. With zero
// complete activities the operation is rejected with the validation message
// and nothing is rendered.
func (m appModel) generate() (tea.Model, tea.Cmd) {
	g, err := layout.Place(m.db.Activities, m.db.Meta)
	if err != nil {
		m.grid = nil
		m.mapErr = mutate.ValidationMessage(mutate.IncompleteIDs(m.db))
		m.status = m.mapErr
		m.statusErr = true
		m.tab = tabActivities
		return m, nil
	}
	m.grid = g
	m.mapErr = ""
	m.status = ""
	m.statusErr = false
	m.tab = tabMap
	// Connector routing runs as a second pass over the committed geometry.
	return m, func() tea.Msg { return connectorPassMsg{} }
}

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}

	header := m.renderTabs()
	var body string
	switch m.tab {
	case tabLesson:
		body = m.viewLesson()
	case tabActivities:
		body = m.viewActivities()
	case tabMap:
		body = m.viewMap()
	case tabCharts:
		body = m.viewCharts()
	case tabPrompt:
		body = m.viewPrompt()
	}

	out := header + "\n" + body + "\n" + m.renderStatus()
	if m.modal != modalNone {
		out = m.overlayModal(out)
	}
	return out
}

func (m appModel) renderTabs() string {
	cells := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			cells = append(cells, styleTabActive().Render(name))
		} else {
			cells = append(cells, styleTab().Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m appModel) renderStatus() string {
	parts := ""
	if m.saveFlash {
		parts += styleOK().Render("saved") + "  "
	}
	if m.exporting {
		parts += styleMuted().Render("exporting…") + "  "
	}
	if m.status != "" {
		if m.statusErr {
			parts += styleError().Render(m.status)
		} else {
			parts += styleMuted().Render(m.status)
		}
	}
	help := styleMuted().Render("tab: switch  g: generate  e/E/P: export map/charts/deck  q: quit")
	if parts == "" {
		return help
	}
	return parts + "\n" + help
}
