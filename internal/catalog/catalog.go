// Package catalog holds the immutable forest tile tables: which codes are
// forest tiles, which family each belongs to, and the exertion pattern each
// edge carries. All tables are fixed at load time; nothing here mutates.
package catalog

import (
	"sort"

	"svw.info/forestfill/internal/domain"
)

const (
	// Placeholder marks a cell awaiting forest fill. It sits outside the
	// 8-bit tile range so it can never be mistaken for real tile data.
	Placeholder domain.Tile = 0x100

	// InnerBorder is the universal fallback tile. It belongs to no family
	// and exerts zero on every edge, so it can sit next to anything that
	// expects emptiness.
	InnerBorder domain.Tile = 0x3F

	firstForest domain.Tile = 0xA0
	lastForest  domain.Tile = 0xBB
)

// FamilyID indexes the four tile families; FamilyNone marks non-forest codes.
type FamilyID int8

const (
	FamilyNone FamilyID = -1

	// NumFamilies is the number of tile families; FamilySize the tiles per
	// family (one fill tile plus six border variants).
	NumFamilies = 4
	FamilySize  = 7
)

// patterns maps code-0xA0 to the tile's per-direction exertions
// (up, right, down, left). Families A0/A3 carry two tree bits on Down,
// A1/A2 on Up; every border tile's bits are a subset of its fill tile's.
var patterns = [28]domain.Pattern{
	// 0xA0 family
	0xA0 - 0xA0: {domain.Ex1(1), domain.Ex1(1), domain.Ex2(1, 1), domain.Ex1(1)},
	0xA4 - 0xA0: {domain.Ex1(1), domain.Ex1(1), domain.Ex2(0, 1), domain.Ex1(0)},
	0xA5 - 0xA0: {domain.Ex1(1), domain.Ex1(0), domain.Ex2(0, 0), domain.Ex1(0)},
	0xA6 - 0xA0: {domain.Ex1(1), domain.Ex1(0), domain.Ex2(1, 0), domain.Ex1(1)},
	0xA7 - 0xA0: {domain.Ex1(0), domain.Ex1(0), domain.Ex2(1, 0), domain.Ex1(1)},
	0xA8 - 0xA0: {domain.Ex1(0), domain.Ex1(1), domain.Ex2(1, 1), domain.Ex1(1)},
	0xA9 - 0xA0: {domain.Ex1(0), domain.Ex1(1), domain.Ex2(0, 1), domain.Ex1(0)},

	// 0xA1 family
	0xA1 - 0xA0: {domain.Ex2(1, 1), domain.Ex1(1), domain.Ex1(1), domain.Ex1(1)},
	0xAA - 0xA0: {domain.Ex2(1, 1), domain.Ex1(1), domain.Ex1(0), domain.Ex1(0)},
	0xAB - 0xA0: {domain.Ex2(1, 0), domain.Ex1(0), domain.Ex1(0), domain.Ex1(0)},
	0xAC - 0xA0: {domain.Ex2(1, 0), domain.Ex1(0), domain.Ex1(1), domain.Ex1(1)},
	0xAD - 0xA0: {domain.Ex2(0, 0), domain.Ex1(0), domain.Ex1(1), domain.Ex1(1)},
	0xAE - 0xA0: {domain.Ex2(0, 1), domain.Ex1(1), domain.Ex1(1), domain.Ex1(1)},
	0xAF - 0xA0: {domain.Ex2(0, 1), domain.Ex1(1), domain.Ex1(0), domain.Ex1(0)},

	// 0xA2 family
	0xA2 - 0xA0: {domain.Ex2(1, 1), domain.Ex1(1), domain.Ex1(1), domain.Ex1(1)},
	0xB0 - 0xA0: {domain.Ex2(0, 1), domain.Ex1(1), domain.Ex1(1), domain.Ex1(0)},
	0xB1 - 0xA0: {domain.Ex2(0, 0), domain.Ex1(0), domain.Ex1(1), domain.Ex1(0)},
	0xB2 - 0xA0: {domain.Ex2(1, 0), domain.Ex1(0), domain.Ex1(1), domain.Ex1(1)},
	0xB3 - 0xA0: {domain.Ex2(1, 0), domain.Ex1(0), domain.Ex1(0), domain.Ex1(1)},
	0xB4 - 0xA0: {domain.Ex2(1, 1), domain.Ex1(1), domain.Ex1(0), domain.Ex1(1)},
	0xB5 - 0xA0: {domain.Ex2(0, 1), domain.Ex1(1), domain.Ex1(0), domain.Ex1(0)},

	// 0xA3 family
	0xA3 - 0xA0: {domain.Ex1(1), domain.Ex1(1), domain.Ex2(1, 1), domain.Ex1(1)},
	0xB6 - 0xA0: {domain.Ex1(0), domain.Ex1(1), domain.Ex2(1, 1), domain.Ex1(0)},
	0xB7 - 0xA0: {domain.Ex1(0), domain.Ex1(0), domain.Ex2(1, 0), domain.Ex1(0)},
	0xB8 - 0xA0: {domain.Ex1(1), domain.Ex1(0), domain.Ex2(1, 0), domain.Ex1(1)},
	0xB9 - 0xA0: {domain.Ex1(1), domain.Ex1(0), domain.Ex2(0, 0), domain.Ex1(1)},
	0xBA - 0xA0: {domain.Ex1(1), domain.Ex1(1), domain.Ex2(0, 1), domain.Ex1(1)},
	0xBB - 0xA0: {domain.Ex1(0), domain.Ex1(1), domain.Ex2(0, 1), domain.Ex1(0)},
}

// declared lists each family's tiles in data order: fill tile first, then
// border variants by ascending code.
var declared = [NumFamilies][FamilySize]domain.Tile{
	{0xA0, 0xA4, 0xA5, 0xA6, 0xA7, 0xA8, 0xA9},
	{0xA1, 0xAA, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF},
	{0xA2, 0xB0, 0xB1, 0xB2, 0xB3, 0xB4, 0xB5},
	{0xA3, 0xB6, 0xB7, 0xB8, 0xB9, 0xBA, 0xBB},
}

// Derived at load time, never mutated afterwards.
var (
	familyOf [28]FamilyID
	// ordered holds each family's tiles sorted by descending bit popcount,
	// declared order breaking ties. Tile selection walks this front to back,
	// so the fill tile always wins when it is still valid.
	ordered [NumFamilies][FamilySize]domain.Tile
	// unions holds, per family and direction, the union of exertion values
	// over the family's seven tiles: the starting achievable set of a cell.
	unions [NumFamilies][4]domain.ExertionSet
)

func init() {
	for i := range familyOf {
		familyOf[i] = FamilyNone
	}
	for f := 0; f < NumFamilies; f++ {
		for _, t := range declared[f] {
			familyOf[t-firstForest] = FamilyID(f)
			for _, d := range domain.Directions {
				unions[f][d] |= domain.SetOf(patterns[t-firstForest][d])
			}
		}
		tiles := declared[f]
		sort.SliceStable(tiles[:], func(i, j int) bool {
			return patterns[tiles[i]-firstForest].OnesCount() > patterns[tiles[j]-firstForest].OnesCount()
		})
		ordered[f] = tiles
	}
}

// IsForest reports whether code is a forest family tile.
func IsForest(t domain.Tile) bool { return t >= firstForest && t <= lastForest }

// IsPlaceholder reports whether code marks a cell awaiting fill.
func IsPlaceholder(t domain.Tile) bool { return t == Placeholder }

// FamilyOf returns the family of a forest tile, or FamilyNone.
func FamilyOf(t domain.Tile) FamilyID {
	if !IsForest(t) {
		return FamilyNone
	}
	return familyOf[t-firstForest]
}

// ExertionsOf returns a forest tile's per-direction pattern. Malformed codes
// simply report ok=false; they are not forest tiles.
func ExertionsOf(t domain.Tile) (domain.Pattern, bool) {
	if !IsForest(t) {
		return domain.Pattern{}, false
	}
	return patterns[t-firstForest], true
}

// FillTile returns the family's densest tile.
func FillTile(f FamilyID) domain.Tile { return firstForest + domain.Tile(f) }

// IsFillTile reports whether t is one of the four pure fill tiles.
func IsFillTile(t domain.Tile) bool { return t >= 0xA0 && t <= 0xA3 }

// TilesInFamily returns the family's seven tiles by descending popcount.
func TilesInFamily(f FamilyID) [FamilySize]domain.Tile { return ordered[f] }

// AchievableUnion is the full achievable set of a family edge before any
// constraint has been applied.
func AchievableUnion(f FamilyID, d domain.Direction) domain.ExertionSet { return unions[f][d] }

// ZeroExertion returns the all-zero value at the bit width the family's fill
// tile carries in direction d.
func ZeroExertion(f FamilyID, d domain.Direction) domain.Exertion {
	p := patterns[FillTile(f)-firstForest]
	if p[d].Width() == 2 {
		return domain.Ex2(0, 0)
	}
	return domain.Ex1(0)
}

// FamilyForPosition maps an absolute grid coordinate to its family under the
// given phase. The fill pattern tiles the plane in a 2-row by 4-column cycle:
//
//	row 0: o, o+1, o+2, o+3, ...
//	row 1: o+2, o+3, o,   o+1, ...
func FamilyForPosition(row, col int, o domain.Orientation) FamilyID {
	offset := (col + 2*(row&1)) % 4
	return FamilyID((int(o) + offset) % 4)
}

// OrientationForFamily inverts FamilyForPosition: the phase that would place
// family f at (row, col).
func OrientationForFamily(row, col int, f FamilyID) domain.Orientation {
	offset := (col + 2*(row&1)) % 4
	return domain.Orientation(((int(f)-offset)%4 + 4) % 4)
}
