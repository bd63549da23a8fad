package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/talgya/terragen/internal/mapgen"
	"github.com/talgya/terragen/internal/template"
)

func smallRun(t *testing.T) (*mapgen.Result, *RunRecord) {
	t.Helper()
	res, err := mapgen.New(template.Small()).Run()
	if err != nil {
		t.Fatal(err)
	}
	return res, NewRunRecord(res)
}

func TestNewRunRecordCoversGrid(t *testing.T) {
	res, rec := smallRun(t)
	if len(rec.CellRows) != res.Grid.CellCount() {
		t.Fatalf("cells = %d, want %d", len(rec.CellRows), res.Grid.CellCount())
	}
	if rec.Regions != len(res.Regions()) {
		t.Errorf("regions = %d, want %d", rec.Regions, len(res.Regions()))
	}
	for i, c := range rec.CellRows {
		if c.Index != i {
			t.Fatalf("cell row %d has index %d", i, c.Index)
		}
		if c.Section < 0 {
			t.Fatalf("cell %d has no section", i)
		}
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, rec := smallRun(t)
	if err := db.SaveRun(rec); err != nil {
		t.Fatal(err)
	}

	runs, err := db.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != rec.ID || runs[0].Seed != rec.Seed {
		t.Fatalf("runs = %+v", runs)
	}

	got, err := db.Run(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.RegionRows) != len(rec.RegionRows) {
		t.Errorf("regions = %d, want %d", len(got.RegionRows), len(rec.RegionRows))
	}
	for i := range got.RegionRows {
		if got.RegionRows[i] != rec.RegionRows[i] {
			t.Errorf("region %d = %+v, want %+v", i, got.RegionRows[i], rec.RegionRows[i])
		}
	}

	cells, err := db.RunCells(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != len(rec.CellRows) {
		t.Fatalf("cells = %d, want %d", len(cells), len(rec.CellRows))
	}
	for i := range cells {
		if cells[i] != rec.CellRows[i] {
			t.Fatalf("cell %d = %+v, want %+v", i, cells[i], rec.CellRows[i])
		}
	}
}

func TestRunNotFound(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Run("missing"); !errors.Is(err, ErrNoRun) {
		t.Fatalf("err = %v, want ErrNoRun", err)
	}
}

func TestSaveRunTwiceFails(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, rec := smallRun(t)
	if err := db.SaveRun(rec); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRun(rec); err == nil {
		t.Fatal("duplicate run id accepted")
	}
	cells, err := db.RunCells(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != len(rec.CellRows) {
		t.Errorf("failed save left %d cells, want %d", len(cells), len(rec.CellRows))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	res, rec := smallRun(t)
	path := filepath.Join(t.TempDir(), "out", "run.snap.zst")

	if err := WriteSnapshot(path, NewSnapshot(rec, res.Template, res.Warnings)); err != nil {
		t.Fatal(err)
	}
	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Header.RunID != rec.ID || snap.Header.Version != SnapshotVersion {
		t.Errorf("header = %+v", snap.Header)
	}
	if snap.Template == nil || snap.Template.Name != res.Template.Name {
		t.Errorf("template not carried")
	}
	if len(snap.Run.Starts) != len(rec.Starts) || len(rec.Starts) == 0 {
		t.Errorf("starts = %d, want %d", len(snap.Run.Starts), len(rec.Starts))
	}
	if len(snap.Run.CellRows) != len(rec.CellRows) {
		t.Fatalf("cells = %d, want %d", len(snap.Run.CellRows), len(rec.CellRows))
	}
	for i := range rec.CellRows {
		if snap.Run.CellRows[i] != rec.CellRows[i] {
			t.Fatalf("cell %d differs", i)
		}
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}
