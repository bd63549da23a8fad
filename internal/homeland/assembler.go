package homeland

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/talgya/terragen/internal/diag"
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/world"
)

var (
	ErrInvalidOptions = errors.New("invalid homeland options")
	ErrLandlessStart  = errors.New("starting region has no land")
)

// Options controls homeland assembly.
type Options struct {
	RegionCount int // Starting region included
	StartRadius int // Sections whose centroid cell is this close to the seed start there
}

// Homeland is one civilization's set of regions.
type Homeland struct {
	Civ      int
	Seed     *world.Hex
	Start    *Region
	Others   []*Region
	Warnings []string
}

// Regions returns the starting region followed by the others.
func (h *Homeland) Regions() []*Region {
	return append([]*Region{h.Start}, h.Others...)
}

// Assembler builds homelands and hands out region IDs.
type Assembler struct {
	part   *partition.Partition
	nextID int
}

// NewAssembler returns an assembler over part.
func NewAssembler(part *partition.Partition) *Assembler {
	return &Assembler{part: part}
}

// NextID reserves a region ID.
func (a *Assembler) NextID() int {
	id := a.nextID
	a.nextID++
	return id
}

// Assemble builds a homeland from a civilization's land and water sections.
// The starting region takes every section within StartRadius of seed; the
// rest is bisected into RegionCount-1 regions. When a group cannot be split
// the homeland ends up with fewer regions and a warning.
func (a *Assembler) Assemble(civ int, land, water []*partition.Section, seed *world.Hex, opts Options) (*Homeland, error) {
	if opts.RegionCount < 1 || opts.StartRadius < 0 {
		return nil, fmt.Errorf("%w: regions=%d radius=%d", ErrInvalidOptions, opts.RegionCount, opts.StartRadius)
	}
	grid := a.part.Grid()
	seedSection := a.part.SectionOfCell(seed)

	var startLand, startWater, restLand, restWater []*partition.Section
	inStart := func(s *partition.Section) bool {
		return s == seedSection || grid.Distance(s.CentroidCell, seed) <= opts.StartRadius
	}
	for _, s := range land {
		if inStart(s) {
			startLand = append(startLand, s)
		} else {
			restLand = append(restLand, s)
		}
	}
	for _, s := range water {
		if inStart(s) {
			startWater = append(startWater, s)
		} else {
			restWater = append(restWater, s)
		}
	}
	if len(startLand) == 0 {
		return nil, fmt.Errorf("%w: civ %d seed cell %d", ErrLandlessStart, civ, seed.Index)
	}

	hl := &Homeland{Civ: civ, Seed: seed}
	target := opts.RegionCount - 1
	if target == 0 {
		startLand = append(startLand, restLand...)
		startWater = append(startWater, restWater...)
		restLand, restWater = nil, nil
	}

	var groups []*group
	if len(restLand)+len(restWater) > 0 {
		groups = hl.bisect(restLand, restWater, target)
	}

	// Groups without land would make landless regions; their water joins
	// the starting region instead.
	var kept []*group
	for _, g := range groups {
		if len(g.land) == 0 {
			startWater = append(startWater, g.water...)
			hl.warn("landless group merged into starting region", "civ", civ, "water_sections", len(g.water))
			continue
		}
		kept = append(kept, g)
	}

	hl.Start = NewRegion(a.NextID(), KindStarting, civ, startLand, startWater)
	for _, g := range kept {
		hl.Others = append(hl.Others, NewRegion(a.NextID(), KindHomeland, civ, g.land, g.water))
	}
	if len(hl.Others) < target {
		hl.warn("homeland has fewer regions than requested", "civ", civ, "regions", len(hl.Others)+1, "wanted", opts.RegionCount)
	}
	return hl, nil
}

// bisect splits the sections into up to target groups, always splitting the
// largest group next. Returned groups are in insertion order.
func (hl *Homeland) bisect(land, water []*partition.Section, target int) []*group {
	seq := 0
	q := &groupQueue{}
	heap.Push(q, newGroup(land, water, seq))
	seq++

	for q.Len() < target {
		g := heap.Pop(q).(*group)
		if len(g.land) < 2 {
			heap.Push(q, g)
			hl.warn("group has too little land to split", "civ", hl.Civ, "land_sections", len(g.land), "groups", q.Len())
			break
		}
		left, right, ok := splitGroup(g)
		if !ok {
			heap.Push(q, g)
			hl.warn("group cannot be split", "civ", hl.Civ, "land_sections", len(g.land), "groups", q.Len())
			break
		}
		heap.Push(q, newGroup(left.land, left.water, seq))
		heap.Push(q, newGroup(right.land, right.water, seq+1))
		seq += 2
	}

	out := make([]*group, 0, q.Len())
	out = append(out, (*q)...)
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (hl *Homeland) warn(msg string, args ...any) {
	diag.Warn(&hl.Warnings, msg, args...)
}

type halves struct {
	land, water []*partition.Section
}

// splitGroup cuts g across its wider axis at the mean land centroid. Both
// halves must keep at least one land section; the narrower axis is tried if
// the wider one cannot manage that.
func splitGroup(g *group) (left, right halves, ok bool) {
	minX, minZ := math.MaxInt, math.MaxInt
	maxX, maxZ := math.MinInt, math.MinInt
	for _, s := range g.sections() {
		for _, h := range s.Cells {
			x, z := h.Coord.Offset()
			minX, maxX = min(minX, x), max(maxX, x)
			minZ, maxZ = min(minZ, z), max(maxZ, z)
		}
	}

	var mean world.Vec2
	for _, s := range g.land {
		mean.X += s.Centroid.X
		mean.Z += s.Centroid.Z
	}
	mean.X /= float64(len(g.land))
	mean.Z /= float64(len(g.land))

	byX := func(s *partition.Section) bool { return s.Centroid.X <= mean.X }
	byZ := func(s *partition.Section) bool { return s.Centroid.Z <= mean.Z }
	axes := []func(*partition.Section) bool{byZ, byX}
	if maxX-minX > maxZ-minZ {
		axes = []func(*partition.Section) bool{byX, byZ}
	}

	for _, low := range axes {
		left, right = halves{}, halves{}
		for _, s := range g.land {
			if low(s) {
				left.land = append(left.land, s)
			} else {
				right.land = append(right.land, s)
			}
		}
		if len(left.land) == 0 || len(right.land) == 0 {
			continue
		}
		for _, s := range g.water {
			if low(s) {
				left.water = append(left.water, s)
			} else {
				right.water = append(right.water, s)
			}
		}
		return left, right, true
	}
	return halves{}, halves{}, false
}
