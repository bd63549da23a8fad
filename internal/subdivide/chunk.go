package subdivide

import (
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/world"
)

// Chunk is a group of sections grown from one seed section.
type Chunk struct {
	ID       int
	Seed     *partition.Section
	Sections []*partition.Section // In the order they were claimed, seed first

	Finished  bool
	Starved   bool // Finished below its cap
	Oversized bool // Seed section alone exceeds the cap

	cells   int
	members map[int]bool
}

func newChunk(id int, seed *partition.Section) *Chunk {
	c := &Chunk{
		ID:      id,
		Seed:    seed,
		members: make(map[int]bool),
	}
	c.add(seed)
	return c
}

func (c *Chunk) add(s *partition.Section) {
	c.Sections = append(c.Sections, s)
	c.members[s.ID] = true
	c.cells += s.Size()
}

// CellCount returns the number of cells claimed so far.
func (c *Chunk) CellCount() int {
	return c.cells
}

// Contains reports whether s belongs to the chunk.
func (c *Chunk) Contains(s *partition.Section) bool {
	return c.members[s.ID]
}

// Cells returns every cell of the chunk in claim order.
func (c *Chunk) Cells() []*world.Hex {
	return partition.Cells(c.Sections)
}
