package layout

import (
	"errors"
	"testing"

	"designmap-cli/internal/model"
)

func complete(id int, interaction, mins string) model.Activity {
	return model.Activity{
		ID:          id,
		Interaction: interaction,
		Strategy:    "activate",
		Details:     "d",
		Time:        mins,
	}
}

func TestPlace_FiltersAndOrders(t *testing.T) {
	acts := []model.Activity{
		complete(3, "group", "10"),
		{ID: 2, Interaction: "class", Time: "5"}, // incomplete, skipped
		complete(1, "class", "15"),
	}
	g, err := Place(acts, model.Meta{})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if g.Cols != 2 {
		t.Fatalf("expected 2 columns, got %d", g.Cols)
	}
	// Columns are ordinal among complete activities, ordered by id.
	if g.Cells[0].Activity.ID != 1 || g.Cells[0].Col != 0 {
		t.Fatalf("unexpected first cell: %+v", g.Cells[0])
	}
	if g.Cells[1].Activity.ID != 3 || g.Cells[1].Col != 1 {
		t.Fatalf("unexpected second cell: %+v", g.Cells[1])
	}
	if g.Cells[0].Row != 1 || g.Cells[1].Row != 2 {
		t.Fatalf("rows should follow the interaction axis: %+v", g.Cells)
	}
	if g.TotalMinutes != 25 {
		t.Fatalf("expected total 25 minutes, got %d", g.TotalMinutes)
	}
}

func TestPlace_NoCompleteActivities(t *testing.T) {
	_, err := Place([]model.Activity{{ID: 1}}, model.Meta{})
	if !errors.Is(err, ErrNoCompleteActivities) {
		t.Fatalf("expected ErrNoCompleteActivities, got %v", err)
	}
}

func TestPlace_MismatchFlag(t *testing.T) {
	acts := []model.Activity{complete(1, "class", "45")}

	g, _ := Place(acts, model.Meta{Duration: "60"})
	if !g.Mismatch || g.PlannedMinutes != 60 {
		t.Fatalf("expected mismatch for 45 vs 60: %+v", g)
	}

	g, _ = Place(acts, model.Meta{Duration: "45"})
	if g.Mismatch {
		t.Fatalf("expected no mismatch for 45 vs 45")
	}

	// Unparseable planned duration never participates in the check.
	g, _ = Place(acts, model.Meta{Duration: "about an hour"})
	if g.Mismatch {
		t.Fatalf("expected no mismatch without a valid planned duration")
	}
}

func TestRoute_StraightConnector(t *testing.T) {
	acts := []model.Activity{
		complete(1, "class", "5"),
		complete(2, "class", "5"),
	}
	g, _ := Place(acts, model.Meta{})
	g.Route()

	if len(g.Connectors) != 1 {
		t.Fatalf("expected one connector, got %d", len(g.Connectors))
	}
	c := g.Connectors[0]
	if !c.Straight() {
		t.Fatalf("same-row connector should be straight: %+v", c.Points)
	}
	wantStart := Point{X: float64(SlotWidth-SlotGap) + 4, Y: 0.5 * RowHeight}
	wantEnd := Point{X: float64(SlotWidth) + 6 - 4, Y: 0.5 * RowHeight}
	if c.Points[0] != wantStart || c.Points[1] != wantEnd {
		t.Fatalf("unexpected straight path: %+v", c.Points)
	}
}

func TestRoute_OrthogonalConnectorTurnsAtSourceX(t *testing.T) {
	acts := []model.Activity{
		complete(1, "class", "5"),
		complete(2, "individual", "5"),
	}
	g, _ := Place(acts, model.Meta{})
	g.Route()

	c := g.Connectors[0]
	if c.Straight() || len(c.Points) != 3 {
		t.Fatalf("cross-row connector should have 3 points: %+v", c.Points)
	}
	if c.Points[0].X != c.Points[1].X {
		t.Fatalf("vertical segment must turn at the source x: %+v", c.Points)
	}
	if c.Points[1].Y != c.Points[2].Y {
		t.Fatalf("final segment must be horizontal at the target y: %+v", c.Points)
	}
}

func TestRoute_Idempotent(t *testing.T) {
	acts := []model.Activity{
		complete(1, "class", "5"),
		complete(2, "group", "5"),
		complete(3, "class", "5"),
	}
	g, _ := Place(acts, model.Meta{})
	g.Route()
	first := len(g.Connectors)
	g.Route()
	if len(g.Connectors) != first {
		t.Fatalf("re-routing must not accumulate connectors: %d then %d", first, len(g.Connectors))
	}
}

func TestRowForY_Bands(t *testing.T) {
	h := 600
	cases := []struct {
		y    int
		want int
	}{
		{-50, 0},
		{0, 0},
		{149, 0},
		{150, 1},
		{449, 2},
		{599, 3},
		{10_000, 3},
	}
	for _, c := range cases {
		if got := RowForY(c.y, h); got != c.want {
			t.Fatalf("RowForY(%d, %d) = %d, want %d", c.y, h, got, c.want)
		}
	}
	if RowForY(10, 0) != 0 {
		t.Fatalf("zero height must clamp to row 0")
	}
}
