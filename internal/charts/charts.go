// Package charts aggregates time-per-category across the three classification
// axes and computes the proportional slice geometry for the circular charts.
package charts

import (
	"fmt"
	"math"

	"designmap-cli/internal/model"
)

// Slices below this angular span keep their value queryable but suppress the
// on-chart label, preventing overlap on thin slices.
const MinLabelAngle = 18

// Slices narrower than this anchor their label closer to the center.
const narrowAngle = 40

type Slice struct {
	Key     string
	Label   string
	Color   string
	Minutes int

	// Angular geometry, accumulated in declared category order starting at
	// 12 o'clock. Zero-valued until Resolve runs on the parent chart.
	StartDeg float64
	SpanDeg  float64
}

// LabelVisible reports whether the slice draws its on-chart label.
func (s Slice) LabelVisible() bool {
	return s.Minutes > 0 && s.SpanDeg >= MinLabelAngle
}

// LabelAnchor returns the label position as percentages of the chart box
// (50,50 is the center), at radius 28 for narrow slices and 36 otherwise.
func (s Slice) LabelAnchor() (x, y float64) {
	mid := s.StartDeg + s.SpanDeg/2
	radius := 36.0
	if s.SpanDeg < narrowAngle {
		radius = 28.0
	}
	rad := (mid - 90) * math.Pi / 180
	return 50 + radius*math.Cos(rad), 50 + radius*math.Sin(rad)
}

type Chart struct {
	Title  string
	Slices []Slice
	Total  int
}

// Percent formats a slice's share of the chart to one decimal place.
func (c Chart) Percent(s Slice) string {
	if c.Total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.Minutes)/float64(c.Total)*100)
}

// Resolve accumulates the angular spans in declared order. A chart with zero
// total renders neutral: every span stays 0 and no labels are visible.
func (c *Chart) Resolve() {
	c.Total = 0
	for _, s := range c.Slices {
		c.Total += s.Minutes
	}
	cur := 0.0
	for i := range c.Slices {
		span := 0.0
		if c.Total > 0 {
			span = float64(c.Slices[i].Minutes) / float64(c.Total) * 360
		}
		c.Slices[i].StartDeg = cur
		c.Slices[i].SpanDeg = span
		cur += span
	}
}

// Breakdown sums minutes per category for one classification axis, in the
// axis's declared order, over the complete activities only.
func Breakdown(title string, axis model.Enum, activities []model.Activity, key func(model.Activity) string) Chart {
	totals := map[string]int{}
	for _, a := range activities {
		if !a.Complete() {
			continue
		}
		code := key(a)
		if !axis.Valid(code) {
			continue
		}
		totals[code] += a.Minutes()
	}

	c := Chart{Title: title}
	for _, v := range axis.Values {
		c.Slices = append(c.Slices, Slice{
			Key:     v.Code,
			Label:   v.Label,
			Color:   v.Color,
			Minutes: totals[v.Code],
		})
	}
	c.Resolve()
	return c
}

// All builds the three charts: strategy, interaction, key application.
func All(activities []model.Activity) []Chart {
	return []Chart{
		Breakdown("Active Learning Processes", model.Strategies, activities,
			func(a model.Activity) string { return a.Strategy }),
		Breakdown("Interaction Types", model.Interactions, activities,
			func(a model.Activity) string { return a.Interaction }),
		Breakdown("Key Applications of Technology", model.KeyApplications, activities,
			func(a model.Activity) string { return a.KeyApp }),
	}
}
