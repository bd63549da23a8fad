package mapgen

import (
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/subdivide"
	"github.com/talgya/terragen/internal/template"
	"github.com/talgya/terragen/internal/world"
)

// civWeight favors sections close to the chunk's seed, away from the soft
// border, and not already hemmed in by other civilizations. Only sections
// another chunk owns count as claimed.
func civWeight(grid *world.Map, part *partition.Partition, sub *subdivide.Subdivider, g template.Growth, softBorder int) subdivide.WeightFunc {
	return func(s *partition.Section, c *subdivide.Chunk) float64 {
		w := proximity(grid, s, c, g.SeedProximity)
		if grid.IsSoftBorder(s.CentroidCell, softBorder) {
			w *= 1 - g.BorderAvoidance
		}
		claimed := 0
		for _, n := range part.Neighbors(s) {
			if id, ok := sub.Owner(n); ok && id != c.ID {
				claimed++
			}
		}
		return w / (1 + g.ClaimedNeighbor*float64(claimed))
	}
}

// landWeight keeps land growing around its seed.
func landWeight(grid *world.Map, g template.Growth) subdivide.WeightFunc {
	return func(s *partition.Section, c *subdivide.Chunk) float64 {
		return proximity(grid, s, c, g.SeedProximity)
	}
}

func proximity(grid *world.Map, s *partition.Section, c *subdivide.Chunk, strength float64) float64 {
	d := grid.Distance(s.CentroidCell, c.Seed.CentroidCell)
	return 1 / (1 + strength*float64(d))
}
