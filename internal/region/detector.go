// Package region finds the placeholder clusters a fill request should
// operate on.
package region

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

var detLog zerolog.Logger = log.With().Str("module", "region").Logger()

// Detector performs 4-connected flood fill over placeholder cells. Existing
// forest tiles reached during expansion join the region as pre-assigned
// fixed cells rather than being overwritten, and the fill continues through
// them, so a forest belt can bridge two placeholder clusters into one region.
type Detector struct{}

func New() *Detector { return &Detector{} }

// Detect returns the disjoint regions of g that contain at least one
// placeholder cell. Runs in O(grid size).
func (d *Detector) Detect(ctx context.Context, g *domain.Grid) ([]*domain.Region, error) {
	if g == nil || g.Width == 0 || g.Height == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	visited := make([]bool, g.Width*g.Height)
	var regions []*domain.Region

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			idx := row*g.Width + col
			if visited[idx] || !catalog.IsPlaceholder(g.At(row, col)) {
				continue
			}
			regions = append(regions, d.expand(g, visited, domain.Coord{Row: row, Col: col}))
		}
	}

	detLog.Debug().Int("regions", len(regions)).Msg("placeholder detection done")
	return regions, nil
}

// expand runs one BFS starting at a placeholder seed.
func (d *Detector) expand(g *domain.Grid, visited []bool, seed domain.Coord) *domain.Region {
	reg := &domain.Region{PreAssigned: make(map[domain.Coord]domain.Tile)}
	queue := []domain.Coord{seed}
	visited[seed.Row*g.Width+seed.Col] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		tile := g.At(cur.Row, cur.Col)
		if catalog.IsPlaceholder(tile) {
			reg.Fill = append(reg.Fill, cur)
		} else {
			reg.PreAssigned[cur] = tile
		}

		for _, dir := range domain.Directions {
			nb := cur.Step(dir)
			if !g.InBounds(nb.Row, nb.Col) {
				continue
			}
			nidx := nb.Row*g.Width + nb.Col
			if visited[nidx] {
				continue
			}
			nt := g.At(nb.Row, nb.Col)
			if catalog.IsPlaceholder(nt) || catalog.IsForest(nt) {
				visited[nidx] = true
				queue = append(queue, nb)
			}
		}
	}

	sort.Slice(reg.Fill, func(i, j int) bool { return reg.Fill[i].Less(reg.Fill[j]) })
	return reg
}
