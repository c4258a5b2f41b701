package solver

import (
	"sort"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

// attemptResult is the outcome of solving one region at one orientation.
// Attempts are pure functions of (grid, region, orientation); nothing is
// shared between them.
type attemptResult struct {
	assign      domain.Assignment
	mismatches  int // wrong-family pre-assigned tiles + residual edge failures
	innerBorder int
	fillTiles   int
	iterations  int
}

// solveOrientation runs the full pipeline for a single phase: partition,
// family assignment, propagation with inner-border repair, greedy selection,
// and failure counting.
func solveOrientation(g *domain.Grid, reg *domain.Region, o domain.Orientation) attemptResult {
	fill, preAssigned := partition(g, reg)
	if len(fill) == 0 {
		out := make(domain.Assignment, len(preAssigned))
		for c, t := range preAssigned {
			out[c] = t
		}
		return attemptResult{assign: out, fillTiles: countFillTiles(out)}
	}

	families := make(map[domain.Coord]catalog.FamilyID, len(fill))
	for _, c := range fill {
		families[c] = catalog.FamilyForPosition(c.Row, c.Col, o)
	}

	familyMismatches := 0
	for c, t := range preAssigned {
		if catalog.FamilyOf(t) != catalog.FamilyForPosition(c.Row, c.Col, o) {
			familyMismatches++
		}
	}

	res := attemptResult{assign: make(domain.Assignment, len(fill)+len(preAssigned))}
	innerBorder := make(map[domain.Coord]bool)

	// Each repair pass converts every dead cell to the fallback tile and
	// re-solves from scratch; bounded because a pass without conversions
	// stops the loop and the fallback set can only grow.
	for pass := 0; pass <= len(fill); pass++ {
		current := remaining(fill, innerBorder)
		if len(current) == 0 {
			break
		}
		ar := buildArena(g, current, families, preAssigned, innerBorder)
		res.iterations += propagate(ar)

		converted := false
		for i := range ar.cells {
			if ar.cells[i].valid == 0 {
				innerBorder[ar.coords[i]] = true
				converted = true
			}
		}
		if !converted {
			break
		}
	}

	for c := range innerBorder {
		res.assign[c] = catalog.InnerBorder
	}

	// Final solve with the fallback set frozen, then greedy selection.
	if final := remaining(fill, innerBorder); len(final) > 0 {
		ar := buildArena(g, final, families, preAssigned, innerBorder)
		res.iterations += propagate(ar)
		for i := range ar.cells {
			if t, ok := ar.cells[i].bestTile(); ok {
				res.assign[ar.coords[i]] = t
			} else {
				res.assign[ar.coords[i]] = catalog.InnerBorder
				innerBorder[ar.coords[i]] = true
			}
		}
	}

	res.mismatches = familyMismatches + countEdgeFailures(g, fill, res.assign, families, preAssigned, innerBorder)
	res.innerBorder = len(innerBorder)

	for c, t := range preAssigned {
		res.assign[c] = t
	}
	res.fillTiles = countFillTiles(res.assign)
	return res
}

// partition splits a region into to-be-filled cells and fixed forest cells.
// Detector output arrives pre-partitioned; caller-built regions may not.
func partition(g *domain.Grid, reg *domain.Region) ([]domain.Coord, map[domain.Coord]domain.Tile) {
	fill := make([]domain.Coord, 0, len(reg.Fill))
	pre := make(map[domain.Coord]domain.Tile, len(reg.PreAssigned))
	for c, t := range reg.PreAssigned {
		pre[c] = t
	}
	for _, c := range reg.Fill {
		if g.InBounds(c.Row, c.Col) && catalog.IsForest(g.At(c.Row, c.Col)) {
			pre[c] = g.At(c.Row, c.Col)
			continue
		}
		fill = append(fill, c)
	}
	sort.Slice(fill, func(i, j int) bool { return fill[i].Less(fill[j]) })
	return fill, pre
}

func remaining(fill []domain.Coord, innerBorder map[domain.Coord]bool) []domain.Coord {
	out := make([]domain.Coord, 0, len(fill))
	for _, c := range fill {
		if !innerBorder[c] {
			out = append(out, c)
		}
	}
	return out
}

func countFillTiles(a domain.Assignment) int {
	n := 0
	for _, t := range a {
		if catalog.IsFillTile(t) {
			n++
		}
	}
	return n
}

// exertionsAt resolves a cell's pattern for failure counting; the fallback
// tile exerts zero at whatever widths the cell's family carries.
func exertionsAt(t domain.Tile, fam catalog.FamilyID) domain.Pattern {
	if t == catalog.InnerBorder {
		var p domain.Pattern
		for _, d := range domain.Directions {
			p[d] = catalog.ZeroExertion(fam, d)
		}
		return p
	}
	p, _ := catalog.ExertionsOf(t)
	return p
}

// countEdgeFailures verifies the finished assignment edge by edge: internal
// pairs once each, pre-assigned and external edges from the fill side,
// screen edges free.
func countEdgeFailures(
	g *domain.Grid,
	fill []domain.Coord,
	assign domain.Assignment,
	families map[domain.Coord]catalog.FamilyID,
	preAssigned map[domain.Coord]domain.Tile,
	innerBorder map[domain.Coord]bool,
) int {
	inFill := make(map[domain.Coord]bool, len(fill))
	for _, c := range fill {
		inFill[c] = true
	}

	failures := 0
	for _, c := range fill {
		tile, ok := assign[c]
		if !ok {
			continue
		}
		fam := families[c]
		ex := exertionsAt(tile, fam)

		for _, d := range domain.Directions {
			nb := c.Step(d)
			opp := d.Opposite()
			nbPre, isPre := preAssigned[nb]

			switch {
			case !inFill[nb] && !isPre:
				if !g.InBounds(nb.Row, nb.Col) {
					continue // screen edge
				}
				if nt := g.At(nb.Row, nb.Col); catalog.IsForest(nt) {
					np, _ := catalog.ExertionsOf(nt)
					if ex[d] != np[opp] {
						failures++
					}
				} else if ex[d] != catalog.ZeroExertion(fam, d) {
					failures++
				}
			case isPre:
				np, _ := catalog.ExertionsOf(nbPre)
				if ex[d] != np[opp] {
					failures++
				}
			default:
				// Internal; count each unordered pair once.
				if !c.Less(nb) {
					continue
				}
				nt, ok := assign[nb]
				if !ok {
					continue
				}
				var nex domain.Pattern
				if innerBorder[nb] || nt == catalog.InnerBorder {
					nex = exertionsAt(catalog.InnerBorder, families[nb])
				} else {
					nex = exertionsAt(nt, families[nb])
				}
				if ex[d] != nex[opp] {
					failures++
				}
			}
		}
	}
	return failures
}
