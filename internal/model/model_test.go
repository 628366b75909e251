package model

import "testing"

func TestEnumParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"class", "class"},
		{"Class (Teacher - Student)", "class"},
		{"CLASS (TEACHER - STUDENT)", "class"},
		{"  group  ", "group"},
		{"telepathy", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Interactions.Parse(c.in); got != c.want {
			t.Fatalf("Parse(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEnumLabelAndColor(t *testing.T) {
	if got := Strategies.Label("promote"); got != "Promote thinking and discussion" {
		t.Fatalf("Label = %q", got)
	}
	if got := Strategies.Label("unknown-code"); got != "unknown-code" {
		t.Fatalf("unknown code should echo back, got %q", got)
	}
	if got := Strategies.Color("activate"); got != "#6aced8" {
		t.Fatalf("Color = %q", got)
	}
	if got := Strategies.Color("unknown-code"); got != "" {
		t.Fatalf("unknown color should be empty, got %q", got)
	}
}

func TestEnumCodesDeclaredOrder(t *testing.T) {
	want := []string{"community", "class", "group", "individual"}
	got := Interactions.Codes()
	if len(got) != len(want) {
		t.Fatalf("Codes = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Codes = %v, want %v", got, want)
		}
	}
}

func TestActivityComplete(t *testing.T) {
	a := Activity{Interaction: "class", Strategy: "activate", Details: "d"}
	if !a.Complete() {
		t.Fatalf("expected complete")
	}
	for _, clear := range []func(*Activity){
		func(a *Activity) { a.Interaction = "" },
		func(a *Activity) { a.Strategy = " " },
		func(a *Activity) { a.Details = "\t" },
	} {
		b := a
		clear(&b)
		if b.Complete() {
			t.Fatalf("expected incomplete: %+v", b)
		}
	}
	// Key application, time and tool are optional.
	if !(Activity{Interaction: "class", Strategy: "activate", Details: "d", KeyApp: "", Time: "", Tool: ""}).Complete() {
		t.Fatalf("optional fields must not affect completeness")
	}
}

func TestActivityMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{" 12 ", 12},
		{"-3", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := (Activity{Time: c.in}).Minutes(); got != c.want {
			t.Fatalf("Minutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMetaPlannedMinutes(t *testing.T) {
	if n, ok := (Meta{Duration: "60"}).PlannedMinutes(); !ok || n != 60 {
		t.Fatalf("PlannedMinutes = %d, %v", n, ok)
	}
	if _, ok := (Meta{Duration: "an hour"}).PlannedMinutes(); ok {
		t.Fatalf("unparseable duration must not validate")
	}
	if _, ok := (Meta{Duration: "-5"}).PlannedMinutes(); ok {
		t.Fatalf("negative duration must not validate")
	}
}
