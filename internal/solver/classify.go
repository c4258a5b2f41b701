package solver

import (
	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

// edgeKind classifies what a cell borders in one direction.
type edgeKind uint8

const (
	edgeScreen      edgeKind = iota // off the grid: unconstrained
	edgeInternal                    // another to-be-filled cell: must match exactly
	edgeExternal                    // in-grid non-forest tile: must exert zero
	edgeExtForest                   // in-grid forest tile outside the region: must match its exertion
	edgePreAssigned                 // fixed region tile: must match its exertion
	edgeInnerBorder                 // repaired cell: must exert zero (any width)
)

type edge struct {
	kind     edgeKind
	neighbor int         // arena index, edgeInternal only
	fixed    domain.Tile // edgeExtForest / edgePreAssigned only
}

// arena holds one solve attempt's constraint state, addressed by integer
// index so the worklist never chases object references.
type arena struct {
	coords []domain.Coord
	index  map[domain.Coord]int
	cells  []cellState
	edges  [][4]edge
}

// buildArena classifies every cell edge and applies the unary constraints.
// cells is the current to-be-filled set (inner-border conversions already
// removed), sorted row-major for deterministic indexing.
func buildArena(
	g *domain.Grid,
	cells []domain.Coord,
	families map[domain.Coord]catalog.FamilyID,
	preAssigned map[domain.Coord]domain.Tile,
	innerBorder map[domain.Coord]bool,
) *arena {
	ar := &arena{
		coords: cells,
		index:  make(map[domain.Coord]int, len(cells)),
		cells:  make([]cellState, len(cells)),
		edges:  make([][4]edge, len(cells)),
	}
	for i, c := range cells {
		ar.index[c] = i
	}

	for i, c := range cells {
		fam := families[c]
		cs := &ar.cells[i]
		cs.family = fam
		cs.valid = allValid
		for _, d := range domain.Directions {
			cs.achievable[d] = catalog.AchievableUnion(fam, d)
		}

		for _, d := range domain.Directions {
			nb := c.Step(d)
			switch {
			case ar.hasIndex(nb):
				ar.edges[i][d] = edge{kind: edgeInternal, neighbor: ar.index[nb]}
			case innerBorder[nb]:
				ar.edges[i][d] = edge{kind: edgeInnerBorder}
			default:
				if t, ok := preAssigned[nb]; ok {
					ar.edges[i][d] = edge{kind: edgePreAssigned, fixed: t}
					break
				}
				if !g.InBounds(nb.Row, nb.Col) {
					ar.edges[i][d] = edge{kind: edgeScreen}
					break
				}
				if t := g.At(nb.Row, nb.Col); catalog.IsForest(t) {
					ar.edges[i][d] = edge{kind: edgeExtForest, fixed: t}
				} else {
					ar.edges[i][d] = edge{kind: edgeExternal}
				}
			}
		}

		applyUnary(cs, &ar.edges[i])
	}

	// Unary constraints on one edge can rule out tiles and thereby narrow
	// the other edges of the same cell; settle that before propagation.
	for i := range ar.cells {
		ar.cells[i].recomputeAchievable()
	}
	return ar
}

func (ar *arena) hasIndex(c domain.Coord) bool {
	_, ok := ar.index[c]
	return ok
}

// applyUnary restricts a cell's achievable sets from its non-internal edges.
func applyUnary(cs *cellState, edges *[4]edge) {
	for _, d := range domain.Directions {
		e := edges[d]
		switch e.kind {
		case edgeExternal:
			cs.constrain(d, domain.SetOf(catalog.ZeroExertion(cs.family, d)))
		case edgeExtForest, edgePreAssigned:
			p, _ := catalog.ExertionsOf(e.fixed)
			cs.constrain(d, domain.SetOf(p[d.Opposite()]))
		case edgeInnerBorder:
			// The fallback tile matches any zero regardless of bit width.
			if zeros := cs.achievable[d].Zeros(); !zeros.IsEmpty() {
				cs.constrain(d, zeros)
			} else {
				cs.constrain(d, domain.SetOf(catalog.ZeroExertion(cs.family, d)))
			}
		}
	}
}
