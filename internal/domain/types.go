package domain

// Coord identifies a cell on the terrain grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighboring coordinate in direction d.
func (c Coord) Step(d Direction) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Grid is a terrain snapshot: fixed width, caller-defined height, row-major
// tile codes. The fill engine treats it as read-only.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid allocates a grid with every cell set to fill.
func NewGrid(width, height int, fill Tile) *Grid {
	g := &Grid{Width: width, Height: height, Tiles: make([]Tile, width*height)}
	if fill != 0 {
		for i := range g.Tiles {
			g.Tiles[i] = fill
		}
	}
	return g
}

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// At returns the tile at (row, col); the caller must stay in bounds.
func (g *Grid) At(row, col int) Tile { return g.Tiles[row*g.Width+col] }

// Set writes the tile at (row, col).
func (g *Grid) Set(row, col int, t Tile) { g.Tiles[row*g.Width+col] = t }

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{Width: g.Width, Height: g.Height, Tiles: make([]Tile, len(g.Tiles))}
	copy(out.Tiles, g.Tiles)
	return out
}

// Region is a maximal 4-connected cluster of placeholder cells to fill,
// together with the pre-existing forest tiles it touched during detection.
// PreAssigned tiles are read-only boundary constraints; filling never
// overwrites them.
type Region struct {
	Fill        []Coord        // sorted row-major
	PreAssigned map[Coord]Tile // fixed neighbors, keyed by position
}

// Contains reports whether c is one of the region's to-be-filled cells.
func (r *Region) Contains(c Coord) bool {
	for _, f := range r.Fill {
		if f == c {
			return true
		}
	}
	return false
}

// Assignment maps grid coordinates to resolved tile codes. The engine
// returns assignments; applying them to a grid is the caller's business.
type Assignment map[Coord]Tile

// Apply writes the assignment into a copy of g and returns the copy.
func (a Assignment) Apply(g *Grid) *Grid {
	out := g.Clone()
	for c, t := range a {
		if out.InBounds(c.Row, c.Col) {
			out.Set(c.Row, c.Col, t)
		}
	}
	return out
}

// FillResult is the outcome of solving one region.
type FillResult struct {
	Assignments Assignment
	Orientation Orientation
	Status      Status
	Mismatches  int // residual edge failures plus wrong-family pre-assigned tiles
	InnerBorder int // universal fallback tiles used
	FillTiles   int // pure fill tiles placed (densest pattern)
}

// FillOptions tunes a fill request.
type FillOptions struct {
	// Orientation forces a single phase; OrientationAuto searches all four.
	Orientation Orientation
	// MaxMismatches is the acceptability threshold: a best attempt exceeding
	// it is reported as Unsatisfiable (with its partial assignment attached).
	MaxMismatches int
}

// DefaultFillOptions searches all orientations and accepts no mismatches.
func DefaultFillOptions() FillOptions {
	return FillOptions{Orientation: OrientationAuto}
}

// EdgeMismatch is one violated adjacency: the tile at Cell exerts a value
// toward Neighbor that the neighbor does not reciprocate.
type EdgeMismatch struct {
	Cell      Coord     `json:"cell"`
	Direction Direction `json:"direction"`
	Neighbor  Coord     `json:"neighbor"`
}

// ParityReport summarizes which orientations a region's pre-assigned tiles
// imply. Conflicting votes mean no single orientation can match every fixed
// tile; such regions are reported, not repaired.
type ParityReport struct {
	Votes     [4]int
	Suggested Orientation
	Conflict  bool
}
