package subdivide

import (
	"errors"
	"fmt"

	"github.com/talgya/terragen/internal/diag"
	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/world"
)

var (
	ErrInvalidOptions = errors.New("invalid subdivision options")
	ErrTooManyChunks  = errors.New("more chunks requested than unassigned sections")
	ErrNoSeed         = errors.New("no legal seed section")
)

// WeightFunc rates how desirable candidate is as the next section of chunk.
type WeightFunc func(candidate *partition.Section, chunk *Chunk) float64

// Separation draws a north-south line at a random fraction of the grid
// width; sections on or next to it are kept out of every chunk.
type Separation struct {
	MinFraction float64
	MaxFraction float64
}

// Options controls one subdivision call.
type Options struct {
	ChunkCount        int
	MaxCellsPerChunk  int
	MinSeedSeparation int     // Grid distance between seed centroid cells
	SoftBorder        int     // Seeds never sit within this many cells of an edge
	ExpansionDistance float64 // World distance between centroids for non-adjacent growth

	// Share of MaxCellsPerChunk grown strictly through adjacent sections
	// before distant sections become candidates.
	ContiguousPercentage float64

	Separation *Separation // Optional
	Weight     WeightFunc  // nil weighs every candidate equally
}

// Result is the outcome of one subdivision call.
type Result struct {
	Chunks      []*Chunk
	Forbidden   []*partition.Section // Sections withheld by the separation line
	SeparationX int                  // Offset column of the line, -1 without one
	Warnings    []string
}

// Subdivider grows chunks over a partition.
type Subdivider struct {
	part   *partition.Partition
	stream *entropy.Stream
	owner  map[int]int // section ID -> chunk ID for the current call
}

// New returns a subdivider drawing from stream.
func New(part *partition.Partition, stream *entropy.Stream) *Subdivider {
	return &Subdivider{part: part, stream: stream, owner: make(map[int]int)}
}

// Owner returns the ID of the chunk that claimed s during the current or
// most recent Subdivide call.
func (d *Subdivider) Owner(s *partition.Section) (int, bool) {
	id, ok := d.owner[s.ID]
	return id, ok
}

func (d *Subdivider) claim(c *Chunk, s *partition.Section) {
	c.add(s)
	d.owner[s.ID] = c.ID
}

// Subdivide claims sections from pool into opts.ChunkCount chunks. Claimed
// sections leave the pool; sections withheld by the separation line are
// back in the pool when Subdivide returns.
func (d *Subdivider) Subdivide(pool *Pool, opts Options) (*Result, error) {
	if opts.ChunkCount < 1 || opts.MaxCellsPerChunk < 1 {
		return nil, fmt.Errorf("%w: chunks=%d cap=%d", ErrInvalidOptions, opts.ChunkCount, opts.MaxCellsPerChunk)
	}
	if opts.ChunkCount > pool.Len() {
		return nil, fmt.Errorf("%w: %d chunks, %d sections", ErrTooManyChunks, opts.ChunkCount, pool.Len())
	}

	d.owner = make(map[int]int)
	res := &Result{SeparationX: -1}
	if opts.Separation != nil {
		res.SeparationX, res.Forbidden = d.separate(pool, opts.Separation)
		for _, s := range res.Forbidden {
			pool.Remove(s)
		}
		defer func() {
			for _, s := range res.Forbidden {
				pool.Add(s)
			}
		}()
	}

	if err := d.placeSeeds(pool, opts, res); err != nil {
		for _, c := range res.Chunks {
			for _, s := range c.Sections {
				pool.Add(s)
			}
		}
		d.owner = make(map[int]int)
		return nil, err
	}

	weight := opts.Weight
	if weight == nil {
		weight = func(*partition.Section, *Chunk) float64 { return 1 }
	}
	desired := float64(opts.MaxCellsPerChunk) * opts.ContiguousPercentage

	for pool.Len() > 0 {
		open := make([]*Chunk, 0, len(res.Chunks))
		for _, c := range res.Chunks {
			if !c.Finished {
				open = append(open, c)
			}
		}
		if len(open) == 0 {
			break
		}

		c := open[d.stream.Intn(len(open))]
		cands, full := d.candidates(pool, c, desired, opts)
		if len(cands) == 0 {
			reason := "no reachable section"
			if full {
				reason = "no section fits under the cap"
			}
			starve(c, opts, res, reason)
			continue
		}

		pick, _ := entropy.WeightedPick(d.stream, cands, func(s *partition.Section) float64 {
			return weight(s, c)
		})
		pool.Remove(pick)
		d.claim(c, pick)
		if c.cells >= opts.MaxCellsPerChunk {
			c.Finished = true
		}
	}

	for _, c := range res.Chunks {
		if !c.Finished {
			starve(c, opts, res, "pool exhausted")
		}
	}
	return res, nil
}

// starve finishes c below its cap and records why.
func starve(c *Chunk, opts Options, res *Result, reason string) {
	c.Finished = true
	c.Starved = true
	diag.Warn(&res.Warnings, "chunk starved",
		"chunk", c.ID,
		"cells", c.cells,
		"cap", opts.MaxCellsPerChunk,
		"reason", reason,
	)
}

// separate traces the north-south line and collects the pooled sections
// that own a line cell or a cell next to one.
func (d *Subdivider) separate(pool *Pool, sep *Separation) (int, []*partition.Section) {
	grid := d.part.Grid()
	x := int(d.stream.Range(sep.MinFraction, sep.MaxFraction) * float64(grid.Width))
	x = max(0, min(grid.Width-1, x))

	line := grid.CellsInLine(grid.CellAtOffset(x, 0), grid.CellAtOffset(x, grid.Height-1))
	seen := make(map[int]bool)
	var out []*partition.Section
	mark := func(h *world.Hex) {
		s := d.part.SectionOfCell(h)
		if s == nil || seen[s.ID] || !pool.Contains(s) {
			return
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	for _, h := range line {
		mark(h)
		for _, n := range grid.Neighbors(h) {
			mark(n)
		}
	}
	return x, out
}

func (d *Subdivider) placeSeeds(pool *Pool, opts Options, res *Result) error {
	grid := d.part.Grid()
	for i := 0; i < opts.ChunkCount; i++ {
		var cands []*partition.Section
		for _, s := range pool.Sections() {
			if s.Size() == 0 || grid.IsSoftBorder(s.CentroidCell, opts.SoftBorder) {
				continue
			}
			if tooClose(grid, s, res.Chunks, opts.MinSeedSeparation) {
				continue
			}
			cands = append(cands, s)
		}
		if len(cands) == 0 {
			return fmt.Errorf("%w: seed %d of %d (separation %d)", ErrNoSeed, i+1, opts.ChunkCount, opts.MinSeedSeparation)
		}

		seed := cands[d.stream.Intn(len(cands))]
		pool.Remove(seed)
		c := newChunk(i, seed)
		d.owner[seed.ID] = c.ID
		if c.cells >= opts.MaxCellsPerChunk {
			c.Finished = true
		}
		if c.cells > opts.MaxCellsPerChunk {
			c.Oversized = true
			diag.Warn(&res.Warnings, "seed section exceeds chunk cap",
				"chunk", c.ID,
				"cells", c.cells,
				"cap", opts.MaxCellsPerChunk,
			)
		}
		res.Chunks = append(res.Chunks, c)
	}
	return nil
}

func tooClose(grid *world.Map, s *partition.Section, chunks []*Chunk, minDist int) bool {
	for _, c := range chunks {
		if grid.Distance(s.CentroidCell, c.Seed.CentroidCell) < minDist {
			return true
		}
	}
	return false
}

// candidates lists the sections c may claim next. Below the contiguous
// threshold only pooled neighbors of members qualify; above it, pooled
// sections within ExpansionDistance of a member join them, and if any of
// those has no claimed neighbor at all only such interior sections count.
// Sections that would push c past its cap are dropped; full reports that
// candidates existed but none fit. Either way an empty result starves c.
func (d *Subdivider) candidates(pool *Pool, c *Chunk, desired float64, opts Options) (cands []*partition.Section, full bool) {
	seen := make(map[int]bool)
	var all []*partition.Section
	for _, m := range c.Sections {
		for _, n := range d.part.Neighbors(m) {
			if seen[n.ID] || !pool.Contains(n) {
				continue
			}
			seen[n.ID] = true
			all = append(all, n)
		}
	}

	if float64(c.cells) >= desired {
		for _, s := range pool.Sections() {
			if seen[s.ID] {
				continue
			}
			for _, m := range c.Sections {
				if s.Centroid.Dist(m.Centroid) <= opts.ExpansionDistance {
					seen[s.ID] = true
					all = append(all, s)
					break
				}
			}
		}
	}

	var fit, interior []*partition.Section
	for _, s := range all {
		if c.cells+s.Size() > opts.MaxCellsPerChunk {
			continue
		}
		fit = append(fit, s)
		if float64(c.cells) >= desired && d.isInterior(s) {
			interior = append(interior, s)
		}
	}
	if len(interior) > 0 {
		return interior, false
	}
	return fit, len(fit) == 0 && len(all) > 0
}

// isInterior reports whether no neighbor of s has been claimed by a chunk.
func (d *Subdivider) isInterior(s *partition.Section) bool {
	for _, n := range d.part.Neighbors(s) {
		if _, claimed := d.owner[n.ID]; claimed {
			return false
		}
	}
	return true
}
