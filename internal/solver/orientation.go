package solver

import (
	"context"
	"sync"
	"time"

	"svw.info/forestfill/internal/domain"
	"svw.info/forestfill/internal/ports"
)

// ArcFiller solves regions by arc-consistency propagation with inner-border
// fallback, searching all four pattern phases unless one is forced.
type ArcFiller struct{}

func NewArcFiller() *ArcFiller { return &ArcFiller{} }

// better reports whether a strictly beats b: fewer mismatches, then fewer
// fallback tiles, then more fill tiles.
func better(a, b attemptResult) bool {
	if a.mismatches != b.mismatches {
		return a.mismatches < b.mismatches
	}
	if a.innerBorder != b.innerBorder {
		return a.innerBorder < b.innerBorder
	}
	return a.fillTiles > b.fillTiles
}

// FillRegion solves one region and returns the best assignment found. The
// input grid is never mutated; the caller applies the result.
func (f *ArcFiller) FillRegion(ctx context.Context, g *domain.Grid, reg *domain.Region, opts domain.FillOptions) (*domain.FillResult, ports.Stats, error) {
	start := time.Now()
	if reg == nil || len(reg.Fill) == 0 {
		return &domain.FillResult{
			Assignments: domain.Assignment{},
			Orientation: domain.Orientation0,
			Status:      domain.StatusSuccess,
		}, ports.Stats{Duration: time.Since(start)}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, ports.Stats{}, err
	}

	stats := ports.Stats{Cells: len(reg.Fill)}
	var best attemptResult
	chosen := domain.Orientation0

	if opts.Orientation != domain.OrientationAuto {
		best = solveOrientation(g, reg, opts.Orientation)
		chosen = opts.Orientation
		stats.Attempts = 1
		stats.Iterations = best.iterations
	} else {
		// The four attempts share only read-only inputs and own their
		// constraint state, so they can run side by side; the reduction
		// below is a fixed-order scan, keeping the result deterministic.
		var results [domain.OrientationCount]attemptResult
		var wg sync.WaitGroup
		for o := 0; o < domain.OrientationCount; o++ {
			wg.Add(1)
			go func(o int) {
				defer wg.Done()
				results[o] = solveOrientation(g, reg, domain.Orientation(o))
			}(o)
		}
		wg.Wait()

		best = results[0]
		for o := 1; o < domain.OrientationCount; o++ {
			if better(results[o], best) {
				best = results[o]
				chosen = domain.Orientation(o)
			}
			stats.Iterations += results[o].iterations
		}
		stats.Iterations += results[0].iterations
		stats.Attempts = domain.OrientationCount

		for o := range results {
			solvLog.Debug().
				Int("orientation", o).
				Int("mismatches", results[o].mismatches).
				Int("innerBorder", results[o].innerBorder).
				Int("fillTiles", results[o].fillTiles).
				Msg("orientation attempt scored")
		}
	}

	status := domain.StatusSuccess
	switch {
	case best.mismatches > opts.MaxMismatches:
		status = domain.StatusUnsatisfiable
	case best.innerBorder > 0:
		status = domain.StatusPartialInnerBorder
	}

	stats.Duration = time.Since(start)
	return &domain.FillResult{
		Assignments: best.assign,
		Orientation: chosen,
		Status:      status,
		Mismatches:  best.mismatches,
		InnerBorder: best.innerBorder,
		FillTiles:   best.fillTiles,
	}, stats, nil
}
