// Package layout projects the complete activities onto the design-map grid
// and routes the directional connectors between consecutive activities.
//
// Rendering is two-phase: Place commits the grid geometry (rows, columns,
// totals), then Route computes the derived connector paths from the committed
// cells. Both phases are deterministic; rendering twice with unchanged input
// yields identical placement and paths.
package layout

import (
	"errors"
	"sort"

	"designmap-cli/internal/model"
)

// Grid geometry in abstract pixel units, shared by the raster and deck
// exporters so they agree on connector routing.
const (
	SlotWidth = 240
	RowHeight = 150
	SlotGap   = 20
)

// Rows is the fixed social-interaction axis: community, class, group,
// individual, top to bottom.
var Rows = model.Interactions.Values

var ErrNoCompleteActivities = errors.New("no complete activities")

type Cell struct {
	Activity model.Activity
	Row      int // 0-based index into Rows
	Col      int // 0-based ordinal among complete activities
}

type Point struct {
	X, Y float64
}

// Connector joins two consecutive activities. Points holds the polyline:
// two points for a straight horizontal segment, three for an orthogonal
// (L-shaped) path that turns at the source column's x.
type Connector struct {
	FromID int
	ToID   int
	Points []Point
}

func (c Connector) Straight() bool { return len(c.Points) == 2 }

type Grid struct {
	Cells      []Cell
	Cols       int
	Connectors []Connector

	TotalMinutes   int
	PlannedMinutes int
	Mismatch       bool
}

// RowForInteraction returns the fixed row index for an interaction code,
// or -1 when the code is not part of the axis.
func RowForInteraction(code string) int {
	for i, r := range Rows {
		if r.Code == code {
			return i
		}
	}
	return -1
}

// Place filters to complete activities, orders them by id ascending, and
// commits the grid: one column per complete activity regardless of gaps from
// incomplete ones, row fixed by interaction category. It also totals the
// activity minutes and flags a planned-duration mismatch (informational only).
func Place(activities []model.Activity, meta model.Meta) (*Grid, error) {
	ordered := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Complete() {
			ordered = append(ordered, a)
		}
	}
	if len(ordered) == 0 {
		return nil, ErrNoCompleteActivities
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	g := &Grid{Cols: len(ordered)}
	for col, a := range ordered {
		row := RowForInteraction(a.Interaction)
		if row < 0 {
			row = 0
		}
		g.Cells = append(g.Cells, Cell{Activity: a, Row: row, Col: col})
		g.TotalMinutes += a.Minutes()
	}

	if planned, ok := meta.PlannedMinutes(); ok {
		g.PlannedMinutes = planned
		g.Mismatch = planned != g.TotalMinutes
	}
	return g, nil
}

// Route computes the connector paths from the committed cells. It must be
// re-run whenever the grid geometry changes (resize, drag reassignment).
func (g *Grid) Route() {
	g.Connectors = g.Connectors[:0]
	for i := 0; i+1 < len(g.Cells); i++ {
		cur, next := g.Cells[i], g.Cells[i+1]

		startX := float64(cur.Col*SlotWidth + (SlotWidth - SlotGap) + 4)
		endX := float64(next.Col*SlotWidth + 6)
		startY := (float64(cur.Row) + 0.5) * RowHeight
		endY := (float64(next.Row) + 0.5) * RowHeight

		c := Connector{FromID: cur.Activity.ID, ToID: next.Activity.ID}
		if cur.Row == next.Row {
			c.Points = []Point{{startX, startY}, {endX - 4, endY}}
		} else {
			// Exit horizontally, turn vertically at the source x, then run
			// horizontally into the target.
			c.Points = []Point{{startX, startY}, {startX, endY}, {endX - 4, endY}}
		}
		g.Connectors = append(g.Connectors, c)
	}
}

// Width and Height are the natural (un-clipped) grid dimensions.
func (g *Grid) Width() int  { return g.Cols * SlotWidth }
func (g *Grid) Height() int { return len(Rows) * RowHeight }

// RowForY maps a release point to one of the four equal vertical bands of a
// map area of the given height. Used by drag-to-reassign.
func RowForY(y, height int) int {
	if height <= 0 {
		return 0
	}
	row := y * len(Rows) / height
	if row < 0 {
		row = 0
	}
	if row >= len(Rows) {
		row = len(Rows) - 1
	}
	return row
}
