package usecase

import (
	"context"
	"errors"
	"fmt"

	"svw.info/forestfill/internal/domain"
	"svw.info/forestfill/internal/ports"
)

type Service struct {
	Filler    ports.Filler
	Detector  ports.Detector
	Validator ports.Validator
	Diagnoser ports.Diagnoser
	Storage   ports.Storage
	Renderer  ports.Renderer
}

func NewService(f ports.Filler, d ports.Detector, v ports.Validator, dg ports.Diagnoser, st ports.Storage, r ports.Renderer) *Service {
	return &Service{Filler: f, Detector: d, Validator: v, Diagnoser: dg, Storage: st, Renderer: r}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// ErrNoRegion is returned when a targeted fill finds no placeholder cluster
// at the requested coordinate.
var ErrNoRegion = errors.New("no placeholder region at coordinate")

// Detect finds the placeholder regions of g.
func (u *Service) Detect(ctx context.Context, g *domain.Grid) ([]*domain.Region, error) {
	if u.Detector == nil {
		return nil, errNotConfigured
	}
	return u.Detector.Detect(ctx, g)
}

// FillAll detects every region and solves each one. Stats are aggregated
// across regions.
func (u *Service) FillAll(ctx context.Context, g *domain.Grid, opts domain.FillOptions) ([]*domain.FillResult, ports.Stats, error) {
	if u.Filler == nil || u.Detector == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	regions, err := u.Detector.Detect(ctx, g)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	var total ports.Stats
	results := make([]*domain.FillResult, 0, len(regions))
	for _, reg := range regions {
		res, st, err := u.Filler.FillRegion(ctx, g, reg, opts)
		if err != nil {
			return results, total, fmt.Errorf("fill region: %w", err)
		}
		total.Cells += st.Cells
		total.Attempts += st.Attempts
		total.Iterations += st.Iterations
		total.Duration += st.Duration
		results = append(results, res)
	}
	return results, total, nil
}

// FillAt solves only the region containing the given coordinate.
func (u *Service) FillAt(ctx context.Context, g *domain.Grid, at domain.Coord, opts domain.FillOptions) (*domain.FillResult, ports.Stats, error) {
	if u.Filler == nil || u.Detector == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	regions, err := u.Detector.Detect(ctx, g)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	for _, reg := range regions {
		if reg.Contains(at) {
			return u.Filler.FillRegion(ctx, g, reg, opts)
		}
	}
	return nil, ports.Stats{}, ErrNoRegion
}

// Validate checks a grid's forest adjacency invariants.
func (u *Service) Validate(ctx context.Context, g *domain.Grid) (bool, []domain.EdgeMismatch, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, g)
}

// Diagnose reports a region's orientation parity votes.
func (u *Service) Diagnose(ctx context.Context, r *domain.Region) (domain.ParityReport, bool, error) {
	if u.Diagnoser == nil {
		return domain.ParityReport{}, false, errNotConfigured
	}
	return u.Diagnoser.Diagnose(ctx, r)
}

// Apply writes fill results into a copy of g; the original stays untouched
// so callers keep preview and undo entirely on their side.
func (u *Service) Apply(g *domain.Grid, results []*domain.FillResult) *domain.Grid {
	out := g.Clone()
	for _, res := range results {
		for c, t := range res.Assignments {
			if out.InBounds(c.Row, c.Col) {
				out.Set(c.Row, c.Col, t)
			}
		}
	}
	return out
}

// RenderPreview draws g with the given assignment overlaid.
func (u *Service) RenderPreview(ctx context.Context, g *domain.Grid, a domain.Assignment) ([]byte, error) {
	if u.Renderer == nil {
		return nil, errNotConfigured
	}
	return u.Renderer.Render(ctx, g, a)
}

// Persistence
func (u *Service) SaveSnapshot(ctx context.Context, s *domain.Snapshot) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.SaveSnapshot(ctx, s)
}
func (u *Service) LoadSnapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.LoadSnapshot(ctx, id)
}
func (u *Service) ListSnapshots(ctx context.Context) ([]domain.SnapshotMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.ListSnapshots(ctx)
}
func (u *Service) SaveReport(ctx context.Context, r *domain.Report) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.SaveReport(ctx, r)
}
