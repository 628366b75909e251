package importer

import (
	"testing"
)

const sampleDoc = `# Lesson Design Map

Topic: Fractions
Level: Primary 4
Duration: 60 minutes
Student Profile: Mixed ability class
with two high-progress groups
Learning Outcomes: Compare fractions

## Activity 1

Interaction Type: Class (Teacher - Student)
Active Learning Process: activate
Time: 10 mins
Details: Show a pizza-sharing scenario
and collect predictions
Tool: Kahoot

## Activity 2

Interaction: group
ALP: Promote thinking and discussion
Key Application: Facilitate Learning Together
Time: 20
Details: Jigsaw comparison task
`

func TestParse_MetaAndActivities(t *testing.T) {
	db, err := Parse(sampleDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if db.Meta.Topic != "Fractions" {
		t.Fatalf("topic = %q", db.Meta.Topic)
	}
	if db.Meta.Duration != "60" {
		t.Fatalf("duration should drop the unit suffix, got %q", db.Meta.Duration)
	}
	if db.Meta.StudentProfile != "Mixed ability class with two high-progress groups" {
		t.Fatalf("continuation line not joined: %q", db.Meta.StudentProfile)
	}

	if len(db.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(db.Activities))
	}
	a1, a2 := db.Activities[0], db.Activities[1]
	if a1.ID != 1 || a2.ID != 2 {
		t.Fatalf("ids not renumbered 1..N: %+v", db.Activities)
	}

	// Labels and codes both resolve, case-insensitively.
	if a1.Interaction != "class" || a1.Strategy != "activate" {
		t.Fatalf("enum resolution failed: %+v", a1)
	}
	if a2.Interaction != "group" || a2.Strategy != "promote" || a2.KeyApp != "facilitate-learning-together" {
		t.Fatalf("enum resolution failed: %+v", a2)
	}

	if a1.Time != "10" {
		t.Fatalf("time should drop the unit suffix, got %q", a1.Time)
	}
	if a1.Details != "Show a pizza-sharing scenario and collect predictions" {
		t.Fatalf("details continuation not joined: %q", a1.Details)
	}
	if a1.Tool != "Kahoot" {
		t.Fatalf("tool = %q", a1.Tool)
	}
}

func TestParse_UnknownKeysAndValuesIgnored(t *testing.T) {
	db, err := Parse(`Topic: X
Moon Phase: full

Activity 1
Interaction Type: telepathy
Details: d
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if db.Meta.Topic != "X" {
		t.Fatalf("topic = %q", db.Meta.Topic)
	}
	if len(db.Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(db.Activities))
	}
	// Unmapped enum values resolve to unset rather than failing.
	if db.Activities[0].Interaction != "" {
		t.Fatalf("unknown enum value should parse to unset, got %q", db.Activities[0].Interaction)
	}
}

func TestParse_EmptyDocumentSeedsOneActivity(t *testing.T) {
	db, err := Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(db.Activities) != 1 || db.Activities[0].ID != 1 {
		t.Fatalf("expected one seeded activity, got %+v", db.Activities)
	}
}

func TestParse_KeyNormalization(t *testing.T) {
	db, err := Parse(`student-profile: P5
Level of Technology Integration: Amplification
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if db.Meta.StudentProfile != "P5" {
		t.Fatalf("hyphenated key not normalized: %+v", db.Meta)
	}
	if db.Meta.TechIntegration != "amplification" {
		t.Fatalf("tech integration = %q", db.Meta.TechIntegration)
	}
}
