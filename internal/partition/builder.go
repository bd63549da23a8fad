package partition

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/world"
)

// ErrInvalidOptions is returned for unusable build parameters.
var ErrInvalidOptions = errors.New("invalid partition options")

// BuildOptions controls the relaxation.
type BuildOptions struct {
	Points     int // Seed points scattered over the grid bounds
	Iterations int // Assignment passes; centroids reseed every pass but the last
}

// Build clusters every cell of grid into sections. P points are scattered
// in the grid's world-space bounds (two draws each, X then Z); each pass
// assigns every cell to its nearest point, and between passes the surviving
// sections' centroids become the new points. Points that attract no cells
// are dropped, so the result may hold fewer than Points sections.
func Build(grid *world.Map, stream *entropy.Stream, opts BuildOptions) (*Partition, error) {
	if opts.Points < 1 || opts.Iterations < 1 {
		return nil, fmt.Errorf("%w: points=%d iterations=%d", ErrInvalidOptions, opts.Points, opts.Iterations)
	}
	if grid.CellCount() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidOptions)
	}

	min, max := grid.Bounds()
	points := make([]world.Vec2, opts.Points)
	for i := range points {
		points[i] = world.Vec2{
			X: stream.Range(min.X, max.X),
			Z: stream.Range(min.Z, max.Z),
		}
	}

	var groups [][]*world.Hex
	for iter := 0; iter < opts.Iterations; iter++ {
		groups = assign(grid, points)
		if iter == opts.Iterations-1 {
			break
		}
		points = points[:0]
		for _, g := range groups {
			points = append(points, centroid(g))
		}
	}

	sections := make([]*Section, 0, len(groups))
	for _, g := range groups {
		sections = append(sections, newSection(len(sections), g))
	}

	slog.Debug("grid partitioned",
		"points", opts.Points,
		"iterations", opts.Iterations,
		"sections", len(sections),
	)
	return newPartition(grid, sections), nil
}

// assign groups every cell under its nearest point and returns the
// non-empty groups in point order. Ties keep the first point found.
func assign(grid *world.Map, points []world.Vec2) [][]*world.Hex {
	buckets := make([][]*world.Hex, len(points))
	for _, h := range grid.Cells {
		p := h.Coord.Position()
		best := 0
		bestDist := p.Dist2(points[0])
		for i := 1; i < len(points); i++ {
			if d := p.Dist2(points[i]); d < bestDist {
				best = i
				bestDist = d
			}
		}
		buckets[best] = append(buckets[best], h)
	}

	groups := make([][]*world.Hex, 0, len(buckets))
	for _, b := range buckets {
		if len(b) > 0 {
			groups = append(groups, b)
		}
	}
	return groups
}
