package mutate

import (
	"testing"

	"designmap-cli/internal/model"
	"designmap-cli/internal/store"
)

func TestJoinIDs(t *testing.T) {
	cases := []struct {
		ids  []int
		want string
	}{
		{nil, ""},
		{[]int{2}, "2"},
		{[]int{2, 5}, "2 and 5"},
		{[]int{2, 5, 7}, "2, 5 and 7"},
		{[]int{1, 2, 3, 4}, "1, 2, 3 and 4"},
	}
	for _, c := range cases {
		if got := JoinIDs(c.ids); got != c.want {
			t.Fatalf("JoinIDs(%v) = %q, want %q", c.ids, got, c.want)
		}
	}
}

func TestValidationMessage(t *testing.T) {
	got := ValidationMessage([]int{2, 5, 7})
	want := "Activity 2, 5 and 7's compulsory fields are not keyed in: " +
		"Interaction Type, Active Learning Process and Activity Details."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	if ValidationMessage(nil) != "" {
		t.Fatalf("expected empty message for no ids")
	}
}

func TestCompleteAndIncompleteIDs(t *testing.T) {
	db := store.NewDB()
	db.Activities = []model.Activity{
		{ID: 1, Interaction: "class", Strategy: "activate", Details: "intro", Time: "5"},
		{ID: 2, Interaction: "group", Time: "5"}, // missing strategy and details
		{ID: 3, Interaction: "class", Strategy: "monitor", Details: "  ", Time: "5"},
	}
	if got := CompleteActivities(db); len(got) != 1 || got[0] != 1 {
		t.Fatalf("CompleteActivities = %v, want [1]", got)
	}
	if got := IncompleteIDs(db); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("IncompleteIDs = %v, want [2 3]", got)
	}
}
