package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"designmap-cli/internal/layout"
	"designmap-cli/internal/model"
	"designmap-cli/internal/store"
)

func gridFor(t *testing.T, acts []model.Activity) *layout.Grid {
	t.Helper()
	g, err := layout.Place(acts, model.Meta{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	g.Route()
	return g
}

func completeAct(id int, interaction string) model.Activity {
	return model.Activity{ID: id, Interaction: interaction, Strategy: "activate", Details: "d", Time: "5"}
}

func TestMapRegions_MatchCanvasGeometry(t *testing.T) {
	m := appModel{db: store.NewDB()}
	m.grid = gridFor(t, []model.Activity{
		completeAct(1, "class"),
		completeAct(2, "group"),
	})

	regions := m.mapRegions()
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	first := regions[0]
	if first.x0 != mapLabelW || first.y0 != 1*mapBandH {
		t.Fatalf("first region origin = (%d, %d)", first.x0, first.y0)
	}
	if !first.contains(first.x0, first.y0) || !first.contains(first.x1, first.y1) {
		t.Fatalf("region must contain its own corners: %+v", first)
	}
	if first.contains(first.x1+1, first.y0) {
		t.Fatalf("region must exclude points past its right edge")
	}
	second := regions[1]
	if second.x0 != mapLabelW+mapBoxW+mapGapW || second.y0 != 2*mapBandH {
		t.Fatalf("second region origin = (%d, %d)", second.x0, second.y0)
	}
}

func TestRenderMapCanvas_BoxesAndConnector(t *testing.T) {
	m := appModel{db: store.NewDB()}
	m.grid = gridFor(t, []model.Activity{
		completeAct(1, "class"),
		completeAct(2, "class"),
	})

	canvas := m.renderMapCanvas()
	if len(canvas) != len(layout.Rows)*mapBandH {
		t.Fatalf("canvas height = %d", len(canvas))
	}

	// Both boxes draw on the class band.
	y := 1*mapBandH + mapBoxH/2
	if canvas[1*mapBandH][mapLabelW] != '┌' {
		t.Fatalf("missing first box corner")
	}
	// The same-row connector ends with an arrowhead at the second box's edge.
	arrowX := mapLabelW + (mapBoxW + mapGapW) - 1
	if canvas[y][arrowX] != '▶' {
		t.Fatalf("expected arrowhead at (%d, %d), got %q", arrowX, y, canvas[y][arrowX])
	}
}

func mouseAt(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func mapModelFor(t *testing.T, acts []model.Activity) appModel {
	t.Helper()
	db := store.NewDB()
	db.Activities = acts
	m := newAppModel(store.Store{Dir: t.TempDir()}, db)
	m.tab = tabMap
	m.grid = gridFor(t, acts)
	return m
}

func TestMouseClickOpensEditor(t *testing.T) {
	m := mapModelFor(t, []model.Activity{completeAct(1, "class")})

	// The first box sits on the class band; screen y includes the header.
	x := mapLabelW + 2
	y := 1*mapBandH + 1 + mapHeaderLines
	next, _ := m.updateMouse(mouseAt(x, y, tea.MouseActionPress))
	m = next.(appModel)
	// Release one cell over: within the threshold, still a click.
	next, _ = m.updateMouse(mouseAt(x+1, y, tea.MouseActionRelease))
	m = next.(appModel)

	if m.modal != modalEditor || m.editorID != 1 {
		t.Fatalf("click must open the editor for activity 1, got modal %d id %d", m.modal, m.editorID)
	}
	if m.db.Activities[0].Interaction != "class" {
		t.Fatalf("click must not reassign the row")
	}
}

func TestMouseDragReassignsRow(t *testing.T) {
	m := mapModelFor(t, []model.Activity{completeAct(1, "class")})

	x := mapLabelW + 2
	pressY := 1*mapBandH + 1 + mapHeaderLines
	next, _ := m.updateMouse(mouseAt(x, pressY, tea.MouseActionPress))
	m = next.(appModel)

	// Release on the bottom band (individual).
	releaseY := 3*mapBandH + 2 + mapHeaderLines
	next, _ = m.updateMouse(mouseAt(x, releaseY, tea.MouseActionRelease))
	m = next.(appModel)

	if got := m.db.FindActivity(1).Interaction; got != "individual" {
		t.Fatalf("drag release on the bottom band must set individual, got %q", got)
	}
	if m.modal != modalNone {
		t.Fatalf("a drag must not open the editor")
	}
	if m.grid == nil || m.grid.Cells[0].Row != 3 {
		t.Fatalf("grid not regenerated after the drag: %+v", m.grid)
	}
}

func TestMousePressOutsideBoxesIsIgnored(t *testing.T) {
	m := mapModelFor(t, []model.Activity{completeAct(1, "class")})

	next, _ := m.updateMouse(mouseAt(0, mapHeaderLines, tea.MouseActionPress))
	m = next.(appModel)
	next, _ = m.updateMouse(mouseAt(0, mapHeaderLines+20, tea.MouseActionRelease))
	m = next.(appModel)

	if m.modal != modalNone || m.db.Activities[0].Interaction != "class" {
		t.Fatalf("press outside a box must neither edit nor reassign")
	}
}

func TestCycleEnum_WrapsThroughUnset(t *testing.T) {
	e := &model.Interactions
	if got := cycleEnum(e, "", 1); got != "community" {
		t.Fatalf("unset +1 = %q", got)
	}
	if got := cycleEnum(e, "individual", 1); got != "" {
		t.Fatalf("last +1 should wrap to unset, got %q", got)
	}
	if got := cycleEnum(e, "", -1); got != "individual" {
		t.Fatalf("unset -1 = %q", got)
	}
	if got := cycleEnum(e, "community", -1); got != "" {
		t.Fatalf("first -1 should wrap to unset, got %q", got)
	}
}

func TestBarCells_MinimumOneCell(t *testing.T) {
	if got := barCells(1, 1000); got != 1 {
		t.Fatalf("tiny share must still draw one cell, got %d", got)
	}
	if got := barCells(500, 1000); got != chartBarW/2 {
		t.Fatalf("half share = %d cells, want %d", got, chartBarW/2)
	}
}

func TestExportKindFilenames(t *testing.T) {
	if exportKindMap.filename() != "design-map.png" ||
		exportKindCharts.filename() != "design-map-charts.png" ||
		exportKindDeck.filename() != "design-map-deck.pdf" {
		t.Fatalf("unexpected export filenames")
	}
}
