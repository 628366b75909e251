package charts

import (
	"math"
	"testing"

	"designmap-cli/internal/model"
)

func act(id int, strategy, mins string) model.Activity {
	return model.Activity{
		ID:          id,
		Interaction: "class",
		Strategy:    strategy,
		Details:     "d",
		Time:        mins,
	}
}

func TestBreakdown_ProportionalSpans(t *testing.T) {
	acts := []model.Activity{
		act(1, "activate", "10"),
		act(2, "promote", "20"),
		act(3, "facilitate", "30"),
		act(4, "monitor", "40"),
	}
	c := Breakdown("t", model.Strategies, acts, func(a model.Activity) string { return a.Strategy })

	if c.Total != 100 {
		t.Fatalf("expected total 100, got %d", c.Total)
	}
	wantSpans := []float64{36, 72, 108, 144}
	cur := 0.0
	for i, s := range c.Slices {
		if math.Abs(s.SpanDeg-wantSpans[i]) > 1e-9 {
			t.Fatalf("slice %d span = %v, want %v", i, s.SpanDeg, wantSpans[i])
		}
		if math.Abs(s.StartDeg-cur) > 1e-9 {
			t.Fatalf("slice %d start = %v, want %v", i, s.StartDeg, cur)
		}
		cur += s.SpanDeg
	}
}

func TestBreakdown_SkipsIncompleteAndAggregates(t *testing.T) {
	acts := []model.Activity{
		act(1, "activate", "10"),
		act(2, "activate", "5"),
		{ID: 3, Strategy: "promote", Time: "60"}, // incomplete
	}
	c := Breakdown("t", model.Strategies, acts, func(a model.Activity) string { return a.Strategy })
	if c.Total != 15 {
		t.Fatalf("expected total 15, got %d", c.Total)
	}
	if c.Slices[0].Minutes != 15 {
		t.Fatalf("expected aggregated 15 minutes for activate, got %d", c.Slices[0].Minutes)
	}
}

func TestPercent_OneDecimal(t *testing.T) {
	c := Chart{Slices: []Slice{{Minutes: 1}, {Minutes: 2}}}
	c.Resolve()
	if got := c.Percent(c.Slices[0]); got != "33.3%" {
		t.Fatalf("Percent = %q, want 33.3%%", got)
	}
	zero := Chart{}
	if got := zero.Percent(Slice{Minutes: 5}); got != "0.0%" {
		t.Fatalf("zero-total Percent = %q, want 0.0%%", got)
	}
}

func TestLabelVisible_SuppressesThinAndZeroSlices(t *testing.T) {
	if (Slice{Minutes: 0, SpanDeg: 90}).LabelVisible() {
		t.Fatalf("zero-minute slice must hide its label")
	}
	if (Slice{Minutes: 5, SpanDeg: MinLabelAngle - 0.1}).LabelVisible() {
		t.Fatalf("slice under the angle threshold must hide its label")
	}
	if !(Slice{Minutes: 5, SpanDeg: MinLabelAngle}).LabelVisible() {
		t.Fatalf("slice at the threshold keeps its label")
	}
}

func TestLabelAnchor_RadiusDependsOnSpan(t *testing.T) {
	// A slice spanning the top of the chart anchors straight up from center.
	wide := Slice{StartDeg: 0, SpanDeg: 180}
	x, y := wide.LabelAnchor()
	if math.Abs(x-86) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Fatalf("wide anchor = (%v, %v), want (86, 50)", x, y)
	}

	narrow := Slice{StartDeg: 0, SpanDeg: 20}
	nx, ny := narrow.LabelAnchor()
	dist := math.Hypot(nx-50, ny-50)
	if math.Abs(dist-28) > 1e-9 {
		t.Fatalf("narrow slice should anchor at radius 28, got %v", dist)
	}
}

func TestResolve_ZeroTotal(t *testing.T) {
	c := Chart{Slices: []Slice{{Minutes: 0}, {Minutes: 0}}}
	c.Resolve()
	if c.Total != 0 {
		t.Fatalf("expected zero total")
	}
	for _, s := range c.Slices {
		if s.SpanDeg != 0 || s.LabelVisible() {
			t.Fatalf("zero-total chart must stay neutral: %+v", s)
		}
	}
}

func TestAll_ThreeAxes(t *testing.T) {
	acts := []model.Activity{act(1, "activate", "10")}
	cs := All(acts)
	if len(cs) != 3 {
		t.Fatalf("expected 3 charts, got %d", len(cs))
	}
	titles := []string{"Active Learning Processes", "Interaction Types", "Key Applications of Technology"}
	for i, c := range cs {
		if c.Title != titles[i] {
			t.Fatalf("chart %d title = %q, want %q", i, c.Title, titles[i])
		}
	}
	// No key application keyed in: the third chart is neutral.
	if cs[2].Total != 0 {
		t.Fatalf("expected zero key-application total, got %d", cs[2].Total)
	}
}
