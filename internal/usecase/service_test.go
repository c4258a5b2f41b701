package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/diagnose"
	"svw.info/forestfill/internal/domain"
	"svw.info/forestfill/internal/infrastructure/storage"
	"svw.info/forestfill/internal/preview"
	"svw.info/forestfill/internal/region"
	"svw.info/forestfill/internal/solver"
	"svw.info/forestfill/internal/validator"
)

func fullService(t *testing.T) *Service {
	t.Helper()
	return NewService(
		solver.NewArcFiller(),
		region.New(),
		validator.New(),
		diagnose.New(),
		storage.NewFS(t.TempDir()),
		preview.NewWebP(4),
	)
}

func courseGrid() *domain.Grid {
	g := domain.NewGrid(8, 8, 0)
	for r := 1; r <= 6; r++ {
		for c := 1; c <= 6; c++ {
			g.Set(r, c, catalog.Placeholder)
		}
	}
	return g
}

func TestFillAllEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := fullService(t)
	g := courseGrid()

	results, stats, err := svc.FillAll(ctx, g, domain.DefaultFillOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Status != domain.StatusSuccess {
		t.Fatalf("status = %s", results[0].Status)
	}
	if stats.Cells != 36 {
		t.Fatalf("stats.Cells = %d, want 36", stats.Cells)
	}

	applied := svc.Apply(g, results)
	for _, tile := range g.Tiles {
		if catalog.IsForest(tile) {
			t.Fatal("input grid was mutated")
		}
	}
	for _, tile := range applied.Tiles {
		if catalog.IsPlaceholder(tile) {
			t.Fatal("placeholder survived the fill")
		}
	}

	ok, mismatches, err := svc.Validate(ctx, applied)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("applied grid invalid: %v", mismatches)
	}
}

func TestFillAtTargetsOneRegion(t *testing.T) {
	ctx := context.Background()
	svc := fullService(t)

	g := domain.NewGrid(10, 4, 0)
	g.Set(1, 1, catalog.Placeholder)
	g.Set(1, 2, catalog.Placeholder)
	g.Set(2, 7, catalog.Placeholder)

	res, _, err := svc.FillAt(ctx, g, domain.Coord{Row: 1, Col: 2}, domain.DefaultFillOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(res.Assignments))
	}
	if _, touched := res.Assignments[domain.Coord{Row: 2, Col: 7}]; touched {
		t.Fatal("targeted fill touched the other region")
	}

	if _, _, err := svc.FillAt(ctx, g, domain.Coord{Row: 0, Col: 0}, domain.DefaultFillOptions()); !errors.Is(err, ErrNoRegion) {
		t.Fatalf("err = %v, want ErrNoRegion", err)
	}
}

func TestDiagnoseThroughService(t *testing.T) {
	ctx := context.Background()
	svc := fullService(t)

	g := domain.NewGrid(6, 4, 0)
	g.Set(1, 1, catalog.Placeholder)
	g.Set(1, 2, 0xAC)

	regions, err := svc.Detect(ctx, g)
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(regions))
	}
	rep, found, err := svc.Diagnose(ctx, regions[0])
	if err != nil {
		t.Fatal(err)
	}
	if !found || rep.Suggested != domain.Orientation1 || rep.Conflict {
		t.Fatalf("report = %+v found=%v", rep, found)
	}
}

func TestSnapshotAndReportPersistence(t *testing.T) {
	ctx := context.Background()
	svc := fullService(t)
	g := courseGrid()

	results, _, err := svc.FillAll(ctx, g, domain.DefaultFillOptions())
	if err != nil {
		t.Fatal(err)
	}
	applied := svc.Apply(g, results)

	if err := svc.SaveSnapshot(ctx, domain.SnapshotOf(applied, "filled", "after fill")); err != nil {
		t.Fatal(err)
	}
	rep := &domain.Report{SnapshotID: "filled"}
	for _, res := range results {
		rep.Regions = append(rep.Regions, domain.RegionReportOf(res))
	}
	if err := svc.SaveReport(ctx, rep); err != nil {
		t.Fatal(err)
	}

	loaded, err := svc.LoadSnapshot(ctx, "filled")
	if err != nil {
		t.Fatal(err)
	}
	if !tilesEqual(loaded.Grid().Tiles, applied.Tiles) {
		t.Fatal("loaded snapshot differs from applied grid")
	}
	metas, err := svc.ListSnapshots(ctx)
	if err != nil || len(metas) != 1 {
		t.Fatalf("metas = %v, err = %v", metas, err)
	}
}

func TestRenderPreviewProducesWebP(t *testing.T) {
	svc := fullService(t)
	g := courseGrid()

	data, err := svc.RenderPreview(context.Background(), g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data[:16], []byte("WEBP")) {
		t.Fatalf("output is not a WebP container (%d bytes)", len(data))
	}
}

func TestUnconfiguredServiceRefuses(t *testing.T) {
	ctx := context.Background()
	var svc Service

	if _, err := svc.Detect(ctx, nil); !errors.Is(err, errNotConfigured) {
		t.Fatalf("Detect err = %v", err)
	}
	if _, _, err := svc.FillAll(ctx, nil, domain.DefaultFillOptions()); !errors.Is(err, errNotConfigured) {
		t.Fatalf("FillAll err = %v", err)
	}
	if _, _, err := svc.Validate(ctx, nil); !errors.Is(err, errNotConfigured) {
		t.Fatalf("Validate err = %v", err)
	}
	if _, _, err := svc.Diagnose(ctx, nil); !errors.Is(err, errNotConfigured) {
		t.Fatalf("Diagnose err = %v", err)
	}
	if _, err := svc.RenderPreview(ctx, nil, nil); !errors.Is(err, errNotConfigured) {
		t.Fatalf("RenderPreview err = %v", err)
	}
	if err := svc.SaveSnapshot(ctx, nil); !errors.Is(err, errNotConfigured) {
		t.Fatalf("SaveSnapshot err = %v", err)
	}
	if _, err := svc.ListSnapshots(ctx); !errors.Is(err, errNotConfigured) {
		t.Fatalf("ListSnapshots err = %v", err)
	}
}

func tilesEqual(a, b []domain.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
