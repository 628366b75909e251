package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"designmap-cli/internal/model"
	"designmap-cli/internal/mutate"
)

// fieldSpec describes one editable field: free text (optionally with a
// display character limit) or a fixed enumeration cycled in place.
type fieldSpec struct {
	key   string
	label string
	enum  *model.Enum
	max   int // 0 = unlimited; limits are cosmetic, never blocking
}

var metaFields = []fieldSpec{
	{key: "topic", label: "Topic"},
	{key: "level", label: "Level"},
	{key: "studentProfile", label: "Student Profile"},
	{key: "duration", label: "Duration (mins)"},
	{key: "learningOutcomes", label: "Learning Outcomes"},
	{key: "prerequisiteKnowledge", label: "Prerequisite Knowledge"},
	{key: "learningIssues", label: "Learning Issues"},
	{key: "techIntegration", label: "Technology Integration", enum: &model.TechIntegrations},
}

var activityFields = []fieldSpec{
	{key: mutate.FieldInteraction, label: "Interaction Type", enum: &model.Interactions},
	{key: mutate.FieldStrategy, label: "Active Learning Process", enum: &model.Strategies},
	{key: mutate.FieldTime, label: "Time (mins)"},
	{key: mutate.FieldDetails, label: "Activity Details", max: model.DetailsMaxLen},
	{key: mutate.FieldKeyApp, label: "Key Application", enum: &model.KeyApplications},
	{key: mutate.FieldTool, label: "Tech Tool", max: model.ToolMaxLen},
}

type fieldEditor struct {
	spec  fieldSpec
	input textinput.Model
}

func newFieldEditor(spec fieldSpec, value string) *fieldEditor {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	ti.Prompt = ""
	return &fieldEditor{spec: spec, input: ti}
}

func (e *fieldEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// counter renders the live remaining-character count for limited fields,
// with an over-limit style. Purely cosmetic and non-blocking.
func (e *fieldEditor) counter() string {
	if e.spec.max == 0 {
		return ""
	}
	n := len([]rune(e.input.Value()))
	s := fmt.Sprintf("%d/%d", n, e.spec.max)
	if n > e.spec.max {
		return styleWarn().Render(s)
	}
	return styleMuted().Render(s)
}

// cycleEnum returns the enum code after the current one, wrapping through
// unset ("") so every field can be cleared again.
func cycleEnum(e *model.Enum, current string, dir int) string {
	codes := e.Codes()
	idx := -1
	for i, c := range codes {
		if c == current {
			idx = i
			break
		}
	}
	// Positions are: -1 (unset), 0..len-1.
	idx += dir
	if idx < -1 {
		idx = len(codes) - 1
	}
	if idx >= len(codes) {
		idx = -1
	}
	if idx == -1 {
		return ""
	}
	return codes[idx]
}

func metaValue(m model.Meta, key string) string {
	switch key {
	case "topic":
		return m.Topic
	case "level":
		return m.Level
	case "studentProfile":
		return m.StudentProfile
	case "duration":
		return m.Duration
	case "learningOutcomes":
		return m.LearningOutcomes
	case "prerequisiteKnowledge":
		return m.PrerequisiteKnowledge
	case "learningIssues":
		return m.LearningIssues
	case "techIntegration":
		return m.TechIntegration
	}
	return ""
}

func setMetaValue(m *model.Meta, key, value string) {
	switch key {
	case "topic":
		m.Topic = value
	case "level":
		m.Level = value
	case "studentProfile":
		m.StudentProfile = value
	case "duration":
		m.Duration = value
	case "learningOutcomes":
		m.LearningOutcomes = value
	case "prerequisiteKnowledge":
		m.PrerequisiteKnowledge = value
	case "learningIssues":
		m.LearningIssues = value
	case "techIntegration":
		m.TechIntegration = value
	}
}

func activityValue(a model.Activity, key string) string {
	switch key {
	case mutate.FieldInteraction:
		return a.Interaction
	case mutate.FieldStrategy:
		return a.Strategy
	case mutate.FieldKeyApp:
		return a.KeyApp
	case mutate.FieldTime:
		return a.Time
	case mutate.FieldDetails:
		return a.Details
	case mutate.FieldTool:
		return a.Tool
	}
	return ""
}
