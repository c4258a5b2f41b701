package solver

import "svw.info/forestfill/internal/domain"

// workItem asks the propagator to re-examine one internal edge: the
// constraint cell index exerts toward direction dir.
type workItem struct {
	cell int
	dir  domain.Direction
}

// propagate runs the worklist to a fixpoint and returns the number of items
// processed. Achievable sets are finite and only ever shrink, so the loop
// terminates; the iteration cap bounds the damage should a tile table
// change ever break that monotonicity.
func propagate(ar *arena) int {
	n := len(ar.cells)
	queued := make([]bool, n*4)
	queue := make([]workItem, 0, n*4)

	push := func(cell int, d domain.Direction) {
		slot := cell*4 + int(d)
		if !queued[slot] {
			queued[slot] = true
			queue = append(queue, workItem{cell: cell, dir: d})
		}
	}

	for i := 0; i < n; i++ {
		for _, d := range domain.Directions {
			if ar.edges[i][d].kind == edgeInternal {
				push(i, d)
			}
		}
	}

	// requeue re-examines a cell after its achievable sets shrank: its own
	// changed internal edges, plus every internal neighbor looking back,
	// including the edge that triggered the change.
	requeue := func(i int, changed uint8) {
		for _, d := range domain.Directions {
			if ar.edges[i][d].kind != edgeInternal {
				continue
			}
			if changed&(1<<uint(d)) != 0 {
				push(i, d)
			}
			push(ar.edges[i][d].neighbor, d.Opposite())
		}
	}

	maxIterations := n*50 + 500
	iterations := 0
	head := 0
	for head < len(queue) && iterations < maxIterations {
		iterations++
		item := queue[head]
		head++
		queued[item.cell*4+int(item.dir)] = false

		e := ar.edges[item.cell][item.dir]
		if e.kind != edgeInternal {
			continue
		}
		opp := item.dir.Opposite()
		cell := &ar.cells[item.cell]
		neighbor := &ar.cells[e.neighbor]

		// Both sides must agree on the shared edge; narrow each to the
		// values the other can still achieve.
		common := cell.achievable[item.dir] & neighbor.achievable[opp]
		if common.IsEmpty() {
			// No matching value at all. Leave both sides as they are; the
			// repair pass picks up the dead cell afterwards.
			continue
		}

		if cell.constrain(item.dir, common) {
			requeue(item.cell, cell.recomputeAchievable())
		}
		if neighbor.constrain(opp, common) {
			requeue(e.neighbor, neighbor.recomputeAchievable())
		}
	}
	return iterations
}
