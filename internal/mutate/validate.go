package mutate

import (
	"strconv"
	"strings"

	"designmap-cli/internal/store"
)

// CompleteActivities returns the activities that participate in rendering and
// export, in id order.
func CompleteActivities(db *store.DB) []int {
	var ids []int
	for _, a := range db.Activities {
		if a.Complete() {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// IncompleteIDs lists the ids whose compulsory fields (interaction type,
// strategy, details) are not all keyed in.
func IncompleteIDs(db *store.DB) []int {
	var ids []int
	for _, a := range db.Activities {
		if !a.Complete() {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// JoinIDs joins ids with list grammar: "2", "2 and 5", "2, 5 and 7".
func JoinIDs(ids []int) string {
	switch len(ids) {
	case 0:
		return ""
	case 1:
		return strconv.Itoa(ids[0])
	}
	parts := make([]string, len(ids)-1)
	for i, id := range ids[:len(ids)-1] {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ") + " and " + strconv.Itoa(ids[len(ids)-1])
}

// ValidationMessage names the incomplete activities and the required fields.
func ValidationMessage(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	return "Activity " + JoinIDs(ids) +
		"'s compulsory fields are not keyed in: Interaction Type, Active Learning Process and Activity Details."
}
