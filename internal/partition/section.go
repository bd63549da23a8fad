// Package partition clusters grid cells into sections with a Voronoi-style
// Lloyd relaxation and answers section adjacency and membership queries.
package partition

import "github.com/talgya/terragen/internal/world"

// Section is a non-empty cluster of cells.
type Section struct {
	ID           int          // Stable index into Partition.Sections
	Cells        []*world.Hex // Member cells in grid index order
	Centroid     world.Vec2   // Mean world position of the members
	CentroidCell *world.Hex   // Member cell closest to Centroid

	members map[int]struct{}
}

func newSection(id int, cells []*world.Hex) *Section {
	s := &Section{
		ID:      id,
		Cells:   cells,
		members: make(map[int]struct{}, len(cells)),
	}
	for _, h := range cells {
		s.members[h.Index] = struct{}{}
	}
	s.Centroid = centroid(cells)
	s.CentroidCell = closestTo(cells, s.Centroid)
	return s
}

// Size returns the number of member cells.
func (s *Section) Size() int {
	return len(s.Cells)
}

// Contains reports whether h belongs to the section.
func (s *Section) Contains(h *world.Hex) bool {
	_, ok := s.members[h.Index]
	return ok
}

// IsLand reports whether the section's centroid cell holds land terrain.
func (s *Section) IsLand() bool {
	return s.CentroidCell != nil && !s.CentroidCell.IsWater()
}

func centroid(cells []*world.Hex) world.Vec2 {
	var c world.Vec2
	if len(cells) == 0 {
		return c
	}
	for _, h := range cells {
		p := h.Coord.Position()
		c.X += p.X
		c.Z += p.Z
	}
	c.X /= float64(len(cells))
	c.Z /= float64(len(cells))
	return c
}

func closestTo(cells []*world.Hex, p world.Vec2) *world.Hex {
	var best *world.Hex
	bestDist := 0.0
	for _, h := range cells {
		d := h.Coord.Position().Dist2(p)
		if best == nil || d < bestDist {
			best = h
			bestDist = d
		}
	}
	return best
}

// CellCount totals the member cells of several sections.
func CellCount(sections []*Section) int {
	n := 0
	for _, s := range sections {
		n += s.Size()
	}
	return n
}

// Cells flattens the member cells of several sections, in section order.
func Cells(sections []*Section) []*world.Hex {
	out := make([]*world.Hex, 0, CellCount(sections))
	for _, s := range sections {
		out = append(out, s.Cells...)
	}
	return out
}
