package mutate

import (
	"strconv"
	"strings"

	"designmap-cli/internal/model"
	"designmap-cli/internal/store"
)

// Canonical field names for UpdateActivity, matching the snapshot json tags.
const (
	FieldInteraction = "interaction"
	FieldStrategy    = "alp"
	FieldKeyApp      = "keyApp"
	FieldTime        = "time"
	FieldDetails     = "details"
	FieldTool        = "tech"
)

// AddActivity appends a default-valued record, optionally overridden by the
// provided fields (id is always assigned here), and returns the new id.
// Callers are responsible for saving the snapshot afterwards.
func AddActivity(db *store.DB, initial model.Activity) int {
	id := len(db.Activities) + 1
	a := model.NewActivity(id)
	applyInitial(&a, initial)
	db.Activities = append(db.Activities, a)
	return id
}

// InsertAfter inserts a new default-valued activity immediately after the
// given id (the inline-editor "insert after" action) and renumbers.
func InsertAfter(db *store.DB, id int, initial model.Activity) (int, error) {
	idx := -1
	for i := range db.Activities {
		if db.Activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, NotFoundError{ID: id}
	}
	a := model.NewActivity(0)
	applyInitial(&a, initial)
	db.Activities = append(db.Activities, model.Activity{})
	copy(db.Activities[idx+2:], db.Activities[idx+1:])
	db.Activities[idx+1] = a
	Renumber(db)
	return db.Activities[idx+1].ID, nil
}

func applyInitial(a *model.Activity, initial model.Activity) {
	if initial.Interaction != "" {
		a.Interaction = initial.Interaction
	}
	if initial.Strategy != "" {
		a.Strategy = initial.Strategy
	}
	if initial.KeyApp != "" {
		a.KeyApp = initial.KeyApp
	}
	if initial.Time != "" {
		a.Time = initial.Time
	}
	if initial.Details != "" {
		a.Details = initial.Details
	}
	if initial.Tool != "" {
		a.Tool = initial.Tool
	}
}

type UpdateResult struct {
	Activity *model.Activity
	Changed  bool
}

// UpdateActivity mutates one field. A missing id is a silent no-op. Negative
// numeric input for the time field clamps to "0" before storing. Unknown
// fields are reported so form wiring mistakes surface in tests.
func UpdateActivity(db *store.DB, id int, field, value string) (UpdateResult, error) {
	a := db.FindActivity(id)
	if a == nil {
		return UpdateResult{}, nil
	}

	if field == FieldTime {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n < 0 {
			value = "0"
		}
	}

	var slot *string
	switch field {
	case FieldInteraction:
		slot = &a.Interaction
	case FieldStrategy:
		slot = &a.Strategy
	case FieldKeyApp:
		slot = &a.KeyApp
	case FieldTime:
		slot = &a.Time
	case FieldDetails:
		slot = &a.Details
	case FieldTool:
		slot = &a.Tool
	default:
		return UpdateResult{}, UnknownFieldError{Field: field}
	}

	if *slot == value {
		return UpdateResult{Activity: a, Changed: false}, nil
	}
	*slot = value
	return UpdateResult{Activity: a, Changed: true}, nil
}

// DeleteActivity removes the record and renumbers the rest.
func DeleteActivity(db *store.DB, id int) bool {
	kept := db.Activities[:0]
	found := false
	for _, a := range db.Activities {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return false
	}
	db.Activities = kept
	Renumber(db)
	return true
}

// DeleteLast removes the final activity, if any.
func DeleteLast(db *store.DB) bool {
	if len(db.Activities) == 0 {
		return false
	}
	return DeleteActivity(db, db.Activities[len(db.Activities)-1].ID)
}

// ClearActivities drops every activity and re-seeds one blank record,
// mirroring the fresh-store lifecycle.
func ClearActivities(db *store.DB) {
	db.Activities = db.Activities[:0]
	store.SeedIfEmpty(db)
}

// Renumber reassigns ids 1..N in current display order, carrying each record's
// data forward under its new id. Invariant: after any structural mutation
// settles, ids are exactly 1..N in list order.
func Renumber(db *store.DB) {
	byOldID := make(map[int]model.Activity, len(db.Activities))
	for _, a := range db.Activities {
		byOldID[a.ID] = a
	}
	for i := range db.Activities {
		a, ok := byOldID[db.Activities[i].ID]
		if !ok {
			a = model.Activity{Time: model.DefaultTime}
		}
		a.ID = i + 1
		db.Activities[i] = a
	}
}
