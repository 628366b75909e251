// Package importer parses the structured lesson-plan text format: metadata as
// "key: value" lines, activities delimited by headings containing "Activity",
// with multi-line continuation for free-text fields. The prompt exporter emits
// the same format, so exported prompts re-import cleanly.
package importer

import (
	"bufio"
	"regexp"
	"strings"

	"designmap-cli/internal/model"
	"designmap-cli/internal/mutate"
	"designmap-cli/internal/store"
)

var (
	activityHeading = regexp.MustCompile(`(?i)^#*\s*activity\b`)
	keyValueLine    = regexp.MustCompile(`^([A-Za-z][A-Za-z /()-]*?)\s*:\s*(.*)$`)
)

// Field keys are matched case-insensitively with spaces, slashes, parens and
// hyphens stripped, so "Student Profile", "student-profile" and
// "studentprofile" all resolve.
var metaKeys = map[string]string{
	"topic":                 "topic",
	"title":                 "topic",
	"level":                 "level",
	"studentprofile":        "studentProfile",
	"profile":               "studentProfile",
	"duration":              "duration",
	"durationmins":          "duration",
	"plannedduration":       "duration",
	"learningoutcomes":      "learningOutcomes",
	"outcomes":              "learningOutcomes",
	"prerequisiteknowledge": "prerequisiteKnowledge",
	"prerequisites":         "prerequisiteKnowledge",
	"learningissues":        "learningIssues",
	"learningissue":         "learningIssues",
	"technologyintegration": "techIntegration",
	"techintegration":       "techIntegration",
	"leveloftechnologyintegration": "techIntegration",
}

var activityKeys = map[string]string{
	"interactiontype":            mutate.FieldInteraction,
	"interaction":                mutate.FieldInteraction,
	"activelearningprocess":      mutate.FieldStrategy,
	"alp":                        mutate.FieldStrategy,
	"strategy":                   mutate.FieldStrategy,
	"pedagogicalstrategy":        mutate.FieldStrategy,
	"keyapplication":             mutate.FieldKeyApp,
	"keyapp":                     mutate.FieldKeyApp,
	"keyapplicationoftechnology": mutate.FieldKeyApp,
	"time":                       mutate.FieldTime,
	"timemins":                   mutate.FieldTime,
	"duration":                   mutate.FieldTime,
	"details":                    mutate.FieldDetails,
	"activitydetails":            mutate.FieldDetails,
	"tool":                       mutate.FieldTool,
	"techtool":                   mutate.FieldTool,
	"tech":                       mutate.FieldTool,
}

// Multi-line fields accept continuation lines (a line without a key pattern
// appends to the previously active field).
var multilineFields = map[string]bool{
	"studentProfile":        true,
	"learningOutcomes":      true,
	"prerequisiteKnowledge": true,
	"learningIssues":        true,
	mutate.FieldDetails:     true,
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '/', '(', ')':
			return -1
		}
		return r
	}, k)
}

// Parse reads a lesson document into a fresh snapshot. Unrecognized keys are
// ignored; unmapped enumeration values resolve to unset rather than failing.
func Parse(text string) (*store.DB, error) {
	db := store.NewDB()

	var cur *model.Activity
	activeField := "" // canonical field name receiving continuation lines
	activeIsMeta := false

	flushActivity := func() {
		if cur != nil {
			db.Activities = append(db.Activities, *cur)
			cur = nil
		}
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if activityHeading.MatchString(trimmed) {
			flushActivity()
			a := model.NewActivity(0)
			cur = &a
			activeField = ""
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			// Non-activity heading: document chrome, skip.
			activeField = ""
			continue
		}

		if m := keyValueLine.FindStringSubmatch(trimmed); m != nil {
			key := normalizeKey(m[1])
			value := strings.TrimSpace(m[2])

			if cur != nil {
				if field, ok := activityKeys[key]; ok {
					setActivityField(cur, field, value)
					activeField, activeIsMeta = field, false
					if !multilineFields[field] {
						activeField = ""
					}
					continue
				}
			} else if field, ok := metaKeys[key]; ok {
				setMetaField(&db.Meta, field, value)
				activeField, activeIsMeta = field, true
				if !multilineFields[field] {
					activeField = ""
				}
				continue
			}
			// Unrecognized key: ignored, and it terminates any continuation.
			activeField = ""
			continue
		}

		// Continuation line for the previously active multi-line field.
		if activeField == "" {
			continue
		}
		if activeIsMeta {
			appendMetaField(&db.Meta, activeField, trimmed)
		} else if cur != nil {
			cur.Details = joinContinuation(cur.Details, trimmed)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flushActivity()

	mutate.Renumber(db)
	store.SeedIfEmpty(db)
	return db, nil
}

func joinContinuation(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + " " + extra
}

func setActivityField(a *model.Activity, field, value string) {
	switch field {
	case mutate.FieldInteraction:
		a.Interaction = model.Interactions.Parse(value)
	case mutate.FieldStrategy:
		a.Strategy = model.Strategies.Parse(value)
	case mutate.FieldKeyApp:
		a.KeyApp = model.KeyApplications.Parse(value)
	case mutate.FieldTime:
		a.Time = strings.TrimSuffix(strings.TrimSpace(value), " mins")
	case mutate.FieldDetails:
		a.Details = value
	case mutate.FieldTool:
		a.Tool = value
	}
}

func setMetaField(m *model.Meta, field, value string) {
	switch field {
	case "topic":
		m.Topic = value
	case "level":
		m.Level = value
	case "studentProfile":
		m.StudentProfile = value
	case "duration":
		m.Duration = strings.TrimSuffix(strings.TrimSuffix(value, " minutes"), " mins")
	case "learningOutcomes":
		m.LearningOutcomes = value
	case "prerequisiteKnowledge":
		m.PrerequisiteKnowledge = value
	case "learningIssues":
		m.LearningIssues = value
	case "techIntegration":
		if code := model.TechIntegrations.Parse(value); code != "" {
			m.TechIntegration = code
		} else {
			m.TechIntegration = model.TechIntegrationDefault
		}
	}
}

func appendMetaField(m *model.Meta, field, extra string) {
	switch field {
	case "studentProfile":
		m.StudentProfile = joinContinuation(m.StudentProfile, extra)
	case "learningOutcomes":
		m.LearningOutcomes = joinContinuation(m.LearningOutcomes, extra)
	case "prerequisiteKnowledge":
		m.PrerequisiteKnowledge = joinContinuation(m.PrerequisiteKnowledge, extra)
	case "learningIssues":
		m.LearningIssues = joinContinuation(m.LearningIssues, extra)
	}
}
