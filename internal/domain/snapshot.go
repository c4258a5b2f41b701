package domain

import "sort"

// Snapshot is a persisted terrain grid with metadata. This is tooling
// interchange, not the cartridge format; the ROM codec lives elsewhere.
type Snapshot struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Tiles     []Tile `json:"tiles"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Grid materializes the snapshot as a terrain grid.
func (s *Snapshot) Grid() *Grid {
	g := &Grid{Width: s.Width, Height: s.Height, Tiles: make([]Tile, len(s.Tiles))}
	copy(g.Tiles, s.Tiles)
	return g
}

// SnapshotOf captures a grid under the given identity.
func SnapshotOf(g *Grid, id, name string) *Snapshot {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Snapshot{ID: id, Name: name, Width: g.Width, Height: g.Height, Tiles: tiles}
}

// SnapshotMeta is a lightweight listing entry.
type SnapshotMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt int64  `json:"createdAt"`
}

// TileChange is one resolved cell in a persisted report.
type TileChange struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Tile Tile `json:"tile"`
}

// RegionReport records the outcome of filling one region.
type RegionReport struct {
	Orientation Orientation  `json:"orientation"`
	Status      string       `json:"status"`
	Mismatches  int          `json:"mismatches"`
	InnerBorder int          `json:"innerBorder"`
	FillTiles   int          `json:"fillTiles"`
	Changes     []TileChange `json:"changes"`
}

// Report is a persisted fill run over one snapshot.
type Report struct {
	SnapshotID string         `json:"snapshotId"`
	CreatedAt  int64          `json:"createdAt"`
	Regions    []RegionReport `json:"regions"`
}

// RegionReportOf flattens a fill result into its persisted form, with
// changes sorted row-major for stable output.
func RegionReportOf(res *FillResult) RegionReport {
	changes := make([]TileChange, 0, len(res.Assignments))
	for c, t := range res.Assignments {
		changes = append(changes, TileChange{Row: c.Row, Col: c.Col, Tile: t})
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Row != changes[j].Row {
			return changes[i].Row < changes[j].Row
		}
		return changes[i].Col < changes[j].Col
	})
	return RegionReport{
		Orientation: res.Orientation,
		Status:      res.Status.String(),
		Mismatches:  res.Mismatches,
		InnerBorder: res.InnerBorder,
		FillTiles:   res.FillTiles,
		Changes:     changes,
	}
}
