package store

import (
	"os"
	"path/filepath"
	"testing"

	"designmap-cli/internal/model"
)

func sampleDB() *DB {
	db := NewDB()
	db.Meta.Topic = "Photosynthesis"
	db.Meta.Duration = "60"
	db.Activities = []model.Activity{
		{ID: 1, Interaction: "class", Strategy: "activate", Details: "intro", Time: "10"},
		{ID: 2, Interaction: "group", Strategy: "promote", Details: "jigsaw", Time: "20", Tool: "Padlet"},
	}
	return db
}

func TestSaveLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	want := sampleDB()
	if err := SaveJSON(path, want); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got.Meta != want.Meta {
		t.Fatalf("meta mismatch: %+v vs %+v", got.Meta, want.Meta)
	}
	if len(got.Activities) != 2 || got.Activities[1] != want.Activities[1] {
		t.Fatalf("activities mismatch: %+v", got.Activities)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := sampleDB()
	clone := orig.Clone()

	orig.Meta.Topic = "Respiration"
	orig.Activities[0].Details = "changed"
	orig.Activities = orig.Activities[:1]

	if clone.Meta.Topic != "Photosynthesis" {
		t.Fatalf("clone meta tracked the original: %q", clone.Meta.Topic)
	}
	if len(clone.Activities) != 2 || clone.Activities[0].Details != "intro" {
		t.Fatalf("clone activities tracked the original: %+v", clone.Activities)
	}
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")
	if err := os.WriteFile(path, []byte(`{"meta":{},"activities":null}`), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if db.Activities == nil {
		t.Fatalf("expected non-nil activities slice")
	}
	if db.Meta.TechIntegration != model.TechIntegrationDefault {
		t.Fatalf("expected default tech integration, got %q", db.Meta.TechIntegration)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	db := NewDB()
	if !SeedIfEmpty(db) {
		t.Fatalf("expected seed on empty db")
	}
	if len(db.Activities) != 1 || db.Activities[0].ID != 1 {
		t.Fatalf("unexpected seed: %+v", db.Activities)
	}
	if SeedIfEmpty(db) {
		t.Fatalf("expected no re-seed on populated db")
	}
}

func TestDiscoverDirWalksUp(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, ".designmap")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := DiscoverDir(nested)
	if !ok || got != target {
		t.Fatalf("DiscoverDir = %q, %v; want %q", got, ok, target)
	}
	if _, ok := DiscoverDir(filepath.Join(string(filepath.Separator), "nonexistent-designmap-root")); ok {
		t.Fatalf("expected no discovery outside any store")
	}
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	want := sampleDB()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Meta.Topic != "Photosynthesis" || len(got.Activities) != 2 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Activities[1].Tool != "Padlet" {
		t.Fatalf("activity fields lost: %+v", got.Activities[1])
	}
}

func TestSQLiteLoadEmptyStore(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	db, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(db.Activities) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", db.Activities)
	}
}

func TestSQLiteImportsLegacyJSONOnce(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	if err := SaveJSON(filepath.Join(dir, "db.json"), sampleDB()); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	db, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db.Meta.Topic != "Photosynthesis" {
		t.Fatalf("legacy snapshot not imported: %+v", db.Meta)
	}

	// The sqlite state is authoritative after the import.
	if err := os.Remove(filepath.Join(dir, "db.json")); err != nil {
		t.Fatal(err)
	}
	again, err := s.Load()
	if err != nil {
		t.Fatalf("Load after import: %v", err)
	}
	if again.Meta.Topic != "Photosynthesis" {
		t.Fatalf("imported snapshot not persisted in sqlite: %+v", again.Meta)
	}
}
