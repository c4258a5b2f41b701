package validator

import (
	"context"
	"testing"

	"svw.info/forestfill/internal/domain"
)

// band lays down the 2x4 closed forest band starting at (1,1): every internal
// edge matches and every outward edge exerts zero.
func band() *domain.Grid {
	g := domain.NewGrid(6, 4, 0)
	tiles := [2][4]domain.Tile{
		{0xB6, 0xA8, 0xAD, 0xB1},
		{0xAA, 0xB4, 0xB9, 0xA5},
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			g.Set(r+1, c+1, tiles[r][c])
		}
	}
	return g
}

func TestValidateCleanGrid(t *testing.T) {
	ok, mismatches, err := New().Validate(context.Background(), band())
	if err != nil {
		t.Fatal(err)
	}
	if !ok || len(mismatches) != 0 {
		t.Fatalf("clean grid reported %d mismatches", len(mismatches))
	}
}

func TestValidateDetectsLeakingEdge(t *testing.T) {
	g := band()
	// Swapping the corner for a bare fill tile leaks exertion up and left
	// into terrain; its forest neighbors still match.
	g.Set(1, 1, 0xA0)

	ok, mismatches, err := New().Validate(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("corrupted grid validated clean")
	}
	if len(mismatches) != 2 {
		t.Fatalf("mismatches = %d, want 2", len(mismatches))
	}
	for _, m := range mismatches {
		if m.Cell != (domain.Coord{Row: 1, Col: 1}) {
			t.Fatalf("mismatch reported from %v, want the corrupted cell", m.Cell)
		}
	}
}

func TestValidateScreenEdgeFree(t *testing.T) {
	// A fill tile in the corner exerts off grid on two sides; only its
	// in-grid terrain neighbors count.
	g := domain.NewGrid(3, 3, 0)
	g.Set(0, 0, 0xA0)

	ok, mismatches, err := New().Validate(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected in-grid mismatches")
	}
	if len(mismatches) != 2 {
		t.Fatalf("mismatches = %d, want 2 (right and down)", len(mismatches))
	}
}

func TestValidateEmptyTerrain(t *testing.T) {
	ok, mismatches, err := New().Validate(context.Background(), domain.NewGrid(4, 4, 0))
	if err != nil || !ok || len(mismatches) != 0 {
		t.Fatalf("terrain-only grid: ok=%v mismatches=%d err=%v", ok, len(mismatches), err)
	}
}
