package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"svw.info/forestfill/internal/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	fs := NewFS(t.TempDir())
	ctx := context.Background()

	g := domain.NewGrid(3, 2, 0)
	g.Set(0, 1, 0xA0)
	g.Set(1, 2, 0x3F)
	snap := domain.SnapshotOf(g, "course-07", "hole seven")
	snap.CreatedAt = 1756600000

	if err := fs.SaveSnapshot(ctx, snap); err != nil {
		t.Fatal(err)
	}
	got, err := fs.LoadSnapshot(ctx, "course-07")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "hole seven" || got.Width != 3 || got.Height != 2 {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	back := got.Grid()
	if back.At(0, 1) != 0xA0 || back.At(1, 2) != 0x3F {
		t.Fatal("tiles did not survive the round trip")
	}
}

func TestSaveSnapshotRejectsBadShape(t *testing.T) {
	fs := NewFS(t.TempDir())
	snap := &domain.Snapshot{ID: "bad", Width: 4, Height: 4, Tiles: make([]domain.Tile, 3)}
	if err := fs.SaveSnapshot(context.Background(), snap); err == nil {
		t.Fatal("mis-shaped snapshot accepted")
	}
	if err := fs.SaveSnapshot(context.Background(), &domain.Snapshot{}); err == nil {
		t.Fatal("snapshot without ID accepted")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	fs := NewFS(t.TempDir())
	if _, err := fs.LoadSnapshot(context.Background(), "nope"); !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestLoadSnapshotCorrupt(t *testing.T) {
	dir := t.TempDir()
	fs := NewFS(dir)
	if err := os.MkdirAll(filepath.Join(dir, "snapshots"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "snapshots", "torn.json")
	if err := os.WriteFile(path, []byte(`{"width":4,"height":4,"tiles":[1]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.LoadSnapshot(context.Background(), "torn"); err == nil {
		t.Fatal("corrupt snapshot loaded without error")
	}
}

func TestListSnapshots(t *testing.T) {
	fs := NewFS(t.TempDir())
	ctx := context.Background()

	// Empty store lists cleanly.
	metas, err := fs.ListSnapshots(ctx)
	if err != nil || len(metas) != 0 {
		t.Fatalf("empty store: %v, %v", metas, err)
	}

	g := domain.NewGrid(2, 2, 0)
	for _, id := range []string{"a", "b"} {
		if err := fs.SaveSnapshot(ctx, domain.SnapshotOf(g, id, "")); err != nil {
			t.Fatal(err)
		}
	}
	metas, err = fs.ListSnapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 2 {
		t.Fatalf("listed %d snapshots, want 2", len(metas))
	}
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	fs := NewFS(dir)

	res := &domain.FillResult{
		Assignments: domain.Assignment{
			{Row: 1, Col: 2}: 0xA8,
			{Row: 1, Col: 1}: 0xB6,
		},
		Orientation: domain.Orientation0,
		Status:      domain.StatusSuccess,
		FillTiles:   0,
	}
	rep := &domain.Report{
		SnapshotID: "course-07",
		CreatedAt:  1756600000,
		Regions:    []domain.RegionReport{domain.RegionReportOf(res)},
	}
	if err := fs.SaveReport(context.Background(), rep); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "reports", "course-07.json")); err != nil {
		t.Fatal(err)
	}

	// Changes come out row-major regardless of map order.
	changes := rep.Regions[0].Changes
	if len(changes) != 2 || changes[0].Col != 1 || changes[1].Col != 2 {
		t.Fatalf("changes not sorted: %+v", changes)
	}

	if err := fs.SaveReport(context.Background(), &domain.Report{}); err == nil {
		t.Fatal("report without snapshot ID accepted")
	}
}
