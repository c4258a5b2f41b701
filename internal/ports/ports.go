package ports

import (
	"context"
	"time"

	"svw.info/forestfill/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Cells      int // to-be-filled cells examined
	Attempts   int // orientation attempts evaluated
	Iterations int // propagation worklist items processed
	Duration   time.Duration
}

// Filler solves one region into a tile assignment. It never mutates the grid.
type Filler interface {
	FillRegion(ctx context.Context, g *domain.Grid, r *domain.Region, opts domain.FillOptions) (*domain.FillResult, Stats, error)
}

// Detector finds the placeholder regions of a grid.
type Detector interface {
	Detect(ctx context.Context, g *domain.Grid) ([]*domain.Region, error)
}

// Validator checks a grid's forest adjacency invariants.
type Validator interface {
	Validate(ctx context.Context, g *domain.Grid) (ok bool, mismatches []domain.EdgeMismatch, err error)
}

// Diagnoser inspects a region's fixed tiles for orientation parity.
type Diagnoser interface {
	Diagnose(ctx context.Context, r *domain.Region) (domain.ParityReport, bool, error)
}

// Storage persists terrain snapshots and fill reports as JSON.
type Storage interface {
	SaveSnapshot(ctx context.Context, s *domain.Snapshot) error
	LoadSnapshot(ctx context.Context, id string) (*domain.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]domain.SnapshotMeta, error)
	SaveReport(ctx context.Context, r *domain.Report) error
}

// Renderer produces a preview image of a grid with an assignment overlaid.
type Renderer interface {
	Render(ctx context.Context, g *domain.Grid, a domain.Assignment) ([]byte, error)
}
