package world

import (
	"fmt"
	"math"
)

// Map holds the complete rectangular hex grid.
// Cells are stored row-major in odd-row offset layout: index = z*Width + x.
type Map struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []*Hex `json:"-"`
}

// NewMap creates a width × height map of ocean cells.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Cells:  make([]*Hex, 0, width*height),
	}
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			m.Cells = append(m.Cells, &Hex{
				Index:   len(m.Cells),
				Coord:   OffsetToAxial(x, z),
				Terrain: TerrainOcean,
			})
		}
	}
	return m
}

// Cell returns the cell at the given index, or nil if out of range.
func (m *Map) Cell(index int) *Hex {
	if index < 0 || index >= len(m.Cells) {
		return nil
	}
	return m.Cells[index]
}

// CellAtOffset returns the cell at offset (x, z), or nil if out of bounds.
func (m *Map) CellAtOffset(x, z int) *Hex {
	if x < 0 || x >= m.Width || z < 0 || z >= m.Height {
		return nil
	}
	return m.Cells[z*m.Width+x]
}

// Get returns the hex at the given axial coordinate, or nil if out of bounds.
func (m *Map) Get(coord HexCoord) *Hex {
	x, z := coord.Offset()
	return m.CellAtOffset(x, z)
}

// InBounds returns true if the coordinate lies on the map.
func (m *Map) InBounds(coord HexCoord) bool {
	return m.Get(coord) != nil
}

// Neighbors returns the in-bounds cells adjacent to h, in direction order.
func (m *Map) Neighbors(h *Hex) []*Hex {
	out := make([]*Hex, 0, 6)
	for _, nc := range h.Coord.Neighbors() {
		if n := m.Get(nc); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// CellsInRadius returns every in-bounds cell within radius of center,
// including center, in index order.
func (m *Map) CellsInRadius(center *Hex, radius int) []*Hex {
	if radius < 0 {
		return nil
	}
	var out []*Hex
	cx, cz := center.Coord.Offset()
	for z := cz - radius; z <= cz+radius; z++ {
		// Offset x drifts by at most radius/2+1 per row; scan a safe window.
		for x := cx - radius - 1; x <= cx+radius+1; x++ {
			h := m.CellAtOffset(x, z)
			if h == nil {
				continue
			}
			if Distance(center.Coord, h.Coord) <= radius {
				out = append(out, h)
			}
		}
	}
	return out
}

// CellsInLine returns the cells on the straight hex line from a to b,
// inclusive of both ends. Points falling off the map are skipped.
func (m *Map) CellsInLine(a, b *Hex) []*Hex {
	n := Distance(a.Coord, b.Coord)
	out := make([]*Hex, 0, n+1)
	if n == 0 {
		return append(out, a)
	}
	seen := make(map[int]bool, n+1)
	// Nudge to avoid landing exactly on cell edges.
	const eps = 1e-6
	aq, ar := float64(a.Coord.Q)+eps, float64(a.Coord.R)+eps
	bq, br := float64(b.Coord.Q)+eps, float64(b.Coord.R)+eps
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		h := m.Get(cubeRound(aq+(bq-aq)*t, ar+(br-ar)*t))
		if h == nil || seen[h.Index] {
			continue
		}
		seen[h.Index] = true
		out = append(out, h)
	}
	return out
}

// Distance returns the hex distance between two cells.
func (m *Map) Distance(a, b *Hex) int {
	return Distance(a.Coord, b.Coord)
}

// Position returns the world-space position of a cell.
func (m *Map) Position(h *Hex) Vec2 {
	return h.Coord.Position()
}

// Bounds returns the world-space bounding rectangle of all cell positions.
func (m *Map) Bounds() (min, max Vec2) {
	min = Vec2{X: math.Inf(1), Z: math.Inf(1)}
	max = Vec2{X: math.Inf(-1), Z: math.Inf(-1)}
	for _, h := range m.Cells {
		p := h.Coord.Position()
		min.X = math.Min(min.X, p.X)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Z = math.Max(max.Z, p.Z)
	}
	return min, max
}

// IsSoftBorder reports whether h lies within width cells of any map edge.
func (m *Map) IsSoftBorder(h *Hex, width int) bool {
	if width <= 0 {
		return false
	}
	x, z := h.Coord.Offset()
	return x < width || z < width || x >= m.Width-width || z >= m.Height-width
}

// CellCount returns the total number of cells in the map.
func (m *Map) CellCount() int {
	return len(m.Cells)
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, hexes=%d)", m.Width, m.Height, m.CellCount())
}

// TerrainCounts returns a summary of terrain type distribution.
func (m *Map) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, h := range m.Cells {
		counts[h.Terrain]++
	}
	return counts
}

func cubeRound(fq, fr float64) HexCoord {
	fs := -fq - fr
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)
	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)
	if dq > dr && dq > ds {
		q = -r - s
	} else if dr > ds {
		r = -q - s
	}
	return HexCoord{Q: int(q), R: int(r)}
}
