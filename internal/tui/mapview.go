package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"designmap-cli/internal/layout"
	"designmap-cli/internal/model"
	"designmap-cli/internal/mutate"
)

// Character-cell geometry of the text design map.
const (
	mapLabelW = 14
	mapBoxW   = 24
	mapGapW   = 6
	mapBandH  = 6
	mapBoxH   = 5

	// Lines above the canvas inside the map tab: tab bar, topic, info, blank.
	mapHeaderLines = 4

	// Pointer displacement (in cells) beyond which a press/release pair is
	// treated as a drag rather than a click.
	dragThreshold = 1
)

type mapViewport struct {
	xOffset int
}

type dragState struct {
	activityID int
	startX     int
	startY     int
}

type cellRegion struct {
	activityID     int
	x0, y0, x1, y1 int // canvas coordinates, inclusive
}

func (r cellRegion) contains(x, y int) bool {
	return x >= r.x0 && x <= r.x1 && y >= r.y0 && y <= r.y1
}

func (m appModel) updateMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.mapView.xOffset > 0 {
			m.mapView.xOffset -= mapBoxW + mapGapW
			if m.mapView.xOffset < 0 {
				m.mapView.xOffset = 0
			}
		}
		return m, nil
	case "right", "l":
		m.mapView.xOffset += mapBoxW + mapGapW
		return m, nil
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tab != tabMap || m.modal != modalNone || m.grid == nil {
		return m, nil
	}
	canvasY := msg.Y - mapHeaderLines
	canvasX := msg.X + m.mapView.xOffset

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, r := range m.mapRegions() {
			if r.contains(canvasX, canvasY) {
				m.drag = &dragState{activityID: r.activityID, startX: canvasX, startY: canvasY}
				break
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		d := *m.drag
		m.drag = nil

		dx := abs(canvasX - d.startX)
		dy := abs(canvasY - d.startY)
		if dx <= dragThreshold && dy <= dragThreshold {
			// Click: open the inline editor for this activity.
			m.modal = modalEditor
			m.editorID = d.activityID
			m.editorField = 0
			m.editorEdit = nil
			return m, nil
		}

		// Drag: the release band (of 4 equal vertical bands) picks the row.
		band := layout.RowForY(canvasY, len(layout.Rows)*mapBandH)
		_, _ = mutate.UpdateActivity(m.db, d.activityID, mutate.FieldInteraction, layout.Rows[band].Code)
		cmd := m.persist()
		next, genCmd := m.generate()
		return next, tea.Batch(cmd, genCmd)
	}
	return m, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// mapRegions computes the clickable box regions from the committed grid,
// deterministic from the same geometry the canvas renderer uses.
func (m appModel) mapRegions() []cellRegion {
	if m.grid == nil {
		return nil
	}
	out := make([]cellRegion, 0, len(m.grid.Cells))
	for _, c := range m.grid.Cells {
		x0 := mapLabelW + c.Col*(mapBoxW+mapGapW)
		y0 := c.Row * mapBandH
		out = append(out, cellRegion{
			activityID: c.Activity.ID,
			x0:         x0, y0: y0,
			x1: x0 + mapBoxW - 1, y1: y0 + mapBoxH - 1,
		})
	}
	return out
}

func (m appModel) viewMap() string {
	if m.grid == nil {
		msg := "Press g to generate the design map."
		if m.mapErr != "" {
			msg = m.mapErr
		}
		return "\n" + styleWarn().Render(msg) + "\n"
	}

	var b strings.Builder
	topic := m.db.Meta.Topic
	if topic == "" {
		topic = "Lesson Design Map"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(topic) + "\n")
	b.WriteString(m.renderMapInfoLine() + "\n\n")

	width := m.width
	if width <= 0 {
		width = 80
	}
	for _, line := range m.renderMapCanvas() {
		if m.mapView.xOffset < len(line) {
			line = line[m.mapView.xOffset:]
		} else {
			line = nil
		}
		b.WriteString(ansi.Truncate(string(line), width, "") + "\n")
	}

	b.WriteString("\n" + m.renderMapLegend() + "\n")
	b.WriteString(styleMuted().Render("drag a box to another row to reassign  click to edit  ←/→ scroll") + "\n")
	return b.String()
}

func (m appModel) renderMapInfoLine() string {
	meta := m.db.Meta
	line := ""
	if meta.Level != "" {
		line += "Level: " + meta.Level + "  |  "
	}
	line += fmt.Sprintf("Duration: %s minutes", meta.Duration)
	if m.grid.Mismatch {
		line += styleError().Render(fmt.Sprintf("; Activities total: %d mins", m.grid.TotalMinutes))
	}
	if ti := techIntegrationSummary(meta); ti != "" {
		line += "  |  Tech integration: " + ti
	}
	return line
}

// renderMapCanvas draws the grid and connectors on a rune canvas: row label
// column, one band per interaction category, boxes per complete activity,
// orthogonal connector lines with arrowheads.
func (m appModel) renderMapCanvas() [][]rune {
	g := m.grid
	w := mapLabelW + g.Cols*(mapBoxW+mapGapW)
	h := len(layout.Rows) * mapBandH
	canvas := make([][]rune, h)
	for y := range canvas {
		canvas[y] = make([]rune, w)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	// Band separators and labels.
	for i, row := range layout.Rows {
		y := i*mapBandH + mapBandH - 1
		for x := 0; x < w; x++ {
			canvas[y][x] = '·'
		}
		label := []rune(shortRowLabel(row.Code))
		copy(canvas[i*mapBandH+mapBoxH/2], label)
	}

	// Connectors first; boxes overwrite their entry/exit cells.
	for i := 0; i+1 < len(g.Cells); i++ {
		drawCanvasConnector(canvas, g.Cells[i], g.Cells[i+1])
	}

	for _, c := range g.Cells {
		drawCanvasBox(canvas, c)
	}
	return canvas
}

func shortRowLabel(code string) string {
	switch code {
	case "community":
		return "Community"
	case "class":
		return "Class"
	case "group":
		return "Group"
	case "individual":
		return "Individual"
	}
	return code
}

func drawCanvasBox(canvas [][]rune, c layout.Cell) {
	a := c.Activity
	x0 := mapLabelW + c.Col*(mapBoxW+mapGapW)
	y0 := c.Row * mapBandH

	for x := x0; x < x0+mapBoxW; x++ {
		canvas[y0][x] = '─'
		canvas[y0+mapBoxH-1][x] = '─'
	}
	for y := y0; y < y0+mapBoxH; y++ {
		canvas[y][x0] = '│'
		canvas[y][x0+mapBoxW-1] = '│'
	}
	canvas[y0][x0] = '┌'
	canvas[y0][x0+mapBoxW-1] = '┐'
	canvas[y0+mapBoxH-1][x0] = '└'
	canvas[y0+mapBoxH-1][x0+mapBoxW-1] = '┘'

	title := fmt.Sprintf("A%d (%s min) %s", a.ID, a.Time, strategyTag(a.Strategy))
	putText(canvas[y0+1], x0+2, mapBoxW-4, title)
	putText(canvas[y0+2], x0+2, mapBoxW-4, a.Details)
	if a.Tool != "" {
		putText(canvas[y0+3], x0+2, mapBoxW-4, "[Tool]: "+a.Tool)
	} else if a.KeyApp != "" {
		putText(canvas[y0+3], x0+2, mapBoxW-4, model.KeyApplications.Label(a.KeyApp))
	}
}

func strategyTag(code string) string {
	if code == "" {
		return ""
	}
	return "[" + strings.ToUpper(code[:1]) + "]"
}

func putText(row []rune, x, maxW int, s string) {
	rs := []rune(s)
	if len(rs) > maxW {
		rs = append(rs[:maxW-1], '…')
	}
	copy(row[x:], rs)
}

func drawCanvasConnector(canvas [][]rune, from, to layout.Cell) {
	srcX := mapLabelW + from.Col*(mapBoxW+mapGapW) + mapBoxW - 1
	dstX := mapLabelW + to.Col*(mapBoxW+mapGapW)
	srcY := from.Row*mapBandH + mapBoxH/2
	dstY := to.Row*mapBandH + mapBoxH/2
	turnX := srcX + mapGapW/2

	if from.Row == to.Row {
		for x := srcX + 1; x < dstX; x++ {
			canvas[srcY][x] = '─'
		}
		canvas[srcY][dstX-1] = '▶'
		return
	}

	// Exit horizontally, turn vertically, run horizontally into the target.
	for x := srcX + 1; x < turnX; x++ {
		canvas[srcY][x] = '─'
	}
	lo, hi := srcY, dstY
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo + 1; y < hi; y++ {
		canvas[y][turnX] = '│'
	}
	if dstY > srcY {
		canvas[srcY][turnX] = '┐'
		canvas[dstY][turnX] = '└'
	} else {
		canvas[srcY][turnX] = '┘'
		canvas[dstY][turnX] = '┌'
	}
	for x := turnX + 1; x < dstX; x++ {
		canvas[dstY][x] = '─'
	}
	canvas[dstY][dstX-1] = '▶'
}

func (m appModel) renderMapLegend() string {
	var parts []string
	for _, s := range model.Strategies.Values {
		block := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
		parts = append(parts, block+" "+strategyTag(s.Code)+" "+s.Label)
	}
	return styleMuted().Render("Legend: ") + strings.Join(parts, "   ")
}
