package model

import (
	"strconv"
	"strings"
)

const (
	// DetailsMaxLen and ToolMaxLen are display limits. They drive the live
	// character counters in the UI; the store never truncates.
	DetailsMaxLen = 115
	ToolMaxLen    = 25

	DefaultTime = "5"
)

// Activity is one planned learning activity. IDs are dense and 1-based in
// display order; any structural change triggers a renumbering pass.
type Activity struct {
	ID          int    `json:"id"`
	Interaction string `json:"interaction"`
	Strategy    string `json:"alp"`
	KeyApp      string `json:"keyApp"`
	Time        string `json:"time"`
	Details     string `json:"details"`
	Tool        string `json:"tech"`
}

// Complete reports whether the activity participates in rendering and export.
func (a Activity) Complete() bool {
	return strings.TrimSpace(a.Interaction) != "" &&
		strings.TrimSpace(a.Strategy) != "" &&
		strings.TrimSpace(a.Details) != ""
}

// Minutes parses Time, clamping to >= 0. Unparseable input counts as 0.
func (a Activity) Minutes() int {
	n, err := strconv.Atoi(strings.TrimSpace(a.Time))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Meta is the single lesson-metadata record.
type Meta struct {
	Topic                 string `json:"topic"`
	Level                 string `json:"level"`
	StudentProfile        string `json:"studentProfile"`
	Duration              string `json:"duration"`
	LearningOutcomes      string `json:"learningOutcomes"`
	PrerequisiteKnowledge string `json:"prerequisiteKnowledge"`
	LearningIssues        string `json:"learningIssues"`
	TechIntegration       string `json:"techIntegration"`
}

// PlannedMinutes returns the planned lesson duration and whether it is a valid
// non-negative number. Only valid values participate in the mismatch check.
func (m Meta) PlannedMinutes() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(m.Duration))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NewActivity returns a default-valued activity with the given id.
func NewActivity(id int) Activity {
	return Activity{ID: id, Time: DefaultTime}
}
