// Package solver implements the forest fill constraint engine: edge
// classification, arc-consistency propagation over a cell arena, inner-border
// repair, orientation search, and tile selection.
package solver

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

var solvLog zerolog.Logger = log.With().Str("module", "solver").Logger()

// Family tile tables flattened for the hot path, in the catalog's canonical
// (popcount-descending) order.
var (
	famTiles    [catalog.NumFamilies][catalog.FamilySize]domain.Tile
	famPatterns [catalog.NumFamilies][catalog.FamilySize]domain.Pattern
)

func init() {
	for f := 0; f < catalog.NumFamilies; f++ {
		famTiles[f] = catalog.TilesInFamily(catalog.FamilyID(f))
		for i, t := range famTiles[f] {
			famPatterns[f][i], _ = catalog.ExertionsOf(t)
		}
	}
}

// cellState is one to-be-filled cell's constraint record: the achievable
// exertions per direction and the family tiles still consistent with them.
// A tile stays valid only while its entire 4-direction pattern lies within
// the achievable sets; the sets are a summary, not independent choices.
type cellState struct {
	family     catalog.FamilyID
	achievable [4]domain.ExertionSet
	valid      uint8 // bitmask over famTiles[family] indices
}

const allValid = 1<<catalog.FamilySize - 1

// constrain intersects one direction's achievable set with allowed and
// reports whether it shrank.
func (cs *cellState) constrain(d domain.Direction, allowed domain.ExertionSet) bool {
	next := cs.achievable[d] & allowed
	if next == cs.achievable[d] {
		return false
	}
	cs.achievable[d] = next
	return true
}

// recomputeValid re-derives the valid tile list from the achievable sets.
func (cs *cellState) recomputeValid() {
	cs.valid = 0
	for i := 0; i < catalog.FamilySize; i++ {
		p := famPatterns[cs.family][i]
		ok := true
		for _, d := range domain.Directions {
			if !cs.achievable[d].Has(p[d]) {
				ok = false
				break
			}
		}
		if ok {
			cs.valid |= 1 << i
		}
	}
}

// recomputeAchievable narrows the achievable sets to the union over the
// valid tiles and returns a bitmask of the directions that changed. A cell
// with no valid tiles is left untouched; the caller detects that separately.
func (cs *cellState) recomputeAchievable() uint8 {
	cs.recomputeValid()
	if cs.valid == 0 {
		return 0
	}
	var changed uint8
	for _, d := range domain.Directions {
		var next domain.ExertionSet
		for i := 0; i < catalog.FamilySize; i++ {
			if cs.valid&(1<<i) != 0 {
				next |= domain.SetOf(famPatterns[cs.family][i][d])
			}
		}
		if next != cs.achievable[d] {
			cs.achievable[d] = next
			changed |= 1 << uint(d)
		}
	}
	return changed
}

// bestTile picks the highest-popcount valid tile; canonical order breaks
// ties, so the result is deterministic.
func (cs *cellState) bestTile() (domain.Tile, bool) {
	for i := 0; i < catalog.FamilySize; i++ {
		if cs.valid&(1<<i) != 0 {
			return famTiles[cs.family][i], true
		}
	}
	return 0, false
}
