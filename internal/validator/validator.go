package validator

import (
	"context"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

// ExertionChecker scans a grid for violated forest adjacency invariants:
// adjacent forest tiles must exert bit-identical values toward each other,
// and a forest tile must exert zero toward any in-grid non-forest neighbor.
// Edges leaving the grid are not checked.
type ExertionChecker struct{}

func New() *ExertionChecker { return &ExertionChecker{} }

func (v *ExertionChecker) Validate(ctx context.Context, g *domain.Grid) (bool, []domain.EdgeMismatch, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	mismatches := make([]domain.EdgeMismatch, 0, 8)

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p, ok := catalog.ExertionsOf(g.At(row, col))
			if !ok {
				continue
			}
			c := domain.Coord{Row: row, Col: col}
			for _, d := range domain.Directions {
				nb := c.Step(d)
				if !g.InBounds(nb.Row, nb.Col) {
					continue
				}
				nt := g.At(nb.Row, nb.Col)
				if np, forest := catalog.ExertionsOf(nt); forest {
					// Report each bad pair once, from its lesser end.
					if c.Less(nb) && p[d] != np[d.Opposite()] {
						mismatches = append(mismatches, domain.EdgeMismatch{Cell: c, Direction: d, Neighbor: nb})
					}
				} else if !p[d].IsZero() {
					mismatches = append(mismatches, domain.EdgeMismatch{Cell: c, Direction: d, Neighbor: nb})
				}
			}
		}
	}
	return len(mismatches) == 0, mismatches, nil
}
