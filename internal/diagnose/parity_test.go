package diagnose

import (
	"context"
	"testing"

	"svw.info/forestfill/internal/domain"
)

func TestDiagnoseSingleVote(t *testing.T) {
	reg := &domain.Region{
		Fill:        []domain.Coord{{Row: 1, Col: 1}},
		PreAssigned: map[domain.Coord]domain.Tile{{Row: 1, Col: 2}: 0xAC},
	}

	rep, found, err := New().Diagnose(context.Background(), reg)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected a report")
	}
	if rep.Conflict {
		t.Fatal("single vote reported as conflict")
	}
	if rep.Suggested != domain.Orientation1 {
		t.Fatalf("suggested = %s, want phase1", rep.Suggested)
	}
	if rep.Votes != [4]int{0, 1, 0, 0} {
		t.Fatalf("votes = %v", rep.Votes)
	}
}

func TestDiagnoseConflictingVotes(t *testing.T) {
	// Two same-family fill tiles one column apart imply different phases.
	reg := &domain.Region{
		PreAssigned: map[domain.Coord]domain.Tile{
			{Row: 1, Col: 1}: 0xA0,
			{Row: 1, Col: 2}: 0xA0,
		},
	}

	rep, found, err := New().Diagnose(context.Background(), reg)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected a report")
	}
	if !rep.Conflict {
		t.Fatal("split votes not flagged as conflict")
	}
	if rep.Votes[0]+rep.Votes[1]+rep.Votes[2]+rep.Votes[3] != 2 {
		t.Fatalf("votes = %v, want total 2", rep.Votes)
	}
}

func TestDiagnoseAgreeingVotes(t *testing.T) {
	// Tiles four columns apart land on the same phase of the repeating
	// pattern and agree.
	reg := &domain.Region{
		PreAssigned: map[domain.Coord]domain.Tile{
			{Row: 1, Col: 1}: 0xA0,
			{Row: 1, Col: 5}: 0xA0,
		},
	}

	rep, found, err := New().Diagnose(context.Background(), reg)
	if err != nil {
		t.Fatal(err)
	}
	if !found || rep.Conflict {
		t.Fatalf("found=%v conflict=%v, want report without conflict", found, rep.Conflict)
	}
}

func TestDiagnoseNothingToLearnFrom(t *testing.T) {
	_, found, err := New().Diagnose(context.Background(), &domain.Region{
		Fill: []domain.Coord{{Row: 0, Col: 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("report without any pre-assigned tiles")
	}

	// Non-forest pre-assigned codes contribute nothing either.
	_, found, err = New().Diagnose(context.Background(), &domain.Region{
		PreAssigned: map[domain.Coord]domain.Tile{{Row: 0, Col: 0}: 0x3F},
	})
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("report from non-forest tiles")
	}
}
