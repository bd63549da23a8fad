package partition

import (
	"fmt"
	"sort"

	"github.com/talgya/terragen/internal/world"
)

// Partition maps every grid cell to exactly one section. Sections are fixed
// once built; the cell lookup and neighbor lists are filled on first use and
// never invalidated.
type Partition struct {
	grid     *world.Map
	sections []*Section

	sectionOfCell map[int]*Section   // cell index → section
	neighbors     map[int][]*Section // section ID → adjacent sections
}

func newPartition(grid *world.Map, sections []*Section) *Partition {
	return &Partition{
		grid:          grid,
		sections:      sections,
		sectionOfCell: make(map[int]*Section, grid.CellCount()),
		neighbors:     make(map[int][]*Section, len(sections)),
	}
}

// Grid returns the partitioned map.
func (p *Partition) Grid() *world.Map {
	return p.grid
}

// Sections returns every section ordered by ID.
func (p *Partition) Sections() []*Section {
	return p.sections
}

// Section returns the section with the given ID, or nil.
func (p *Partition) Section(id int) *Section {
	if id < 0 || id >= len(p.sections) {
		return nil
	}
	return p.sections[id]
}

// Len returns the number of sections.
func (p *Partition) Len() int {
	return len(p.sections)
}

// SectionOfCell returns the section containing h. The first lookup of a
// cell scans the sections; the answer is cached.
func (p *Partition) SectionOfCell(h *world.Hex) *Section {
	if s, ok := p.sectionOfCell[h.Index]; ok {
		return s
	}
	for _, s := range p.sections {
		if s.Contains(h) {
			p.sectionOfCell[h.Index] = s
			return s
		}
	}
	return nil
}

// Neighbors returns the distinct sections sharing a cell edge with s,
// ordered by ID. Computed on first call and cached.
func (p *Partition) Neighbors(s *Section) []*Section {
	if ns, ok := p.neighbors[s.ID]; ok {
		return ns
	}
	seen := make(map[int]bool)
	var ns []*Section
	for _, h := range s.Cells {
		for _, nh := range p.grid.Neighbors(h) {
			other := p.SectionOfCell(nh)
			if other == nil || other.ID == s.ID || seen[other.ID] {
				continue
			}
			seen[other.ID] = true
			ns = append(ns, other)
		}
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].ID < ns[j].ID })
	p.neighbors[s.ID] = ns
	return ns
}

// Adjacent reports whether a and b share a cell edge.
func (p *Partition) Adjacent(a, b *Section) bool {
	for _, n := range p.Neighbors(a) {
		if n.ID == b.ID {
			return true
		}
	}
	return false
}

// New builds a partition from explicit cell groups. Every grid cell must
// appear in exactly one non-empty group.
func New(grid *world.Map, groups [][]*world.Hex) (*Partition, error) {
	owner := make(map[int]bool, grid.CellCount())
	sections := make([]*Section, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			return nil, fmt.Errorf("%w: empty section", ErrInvalidOptions)
		}
		for _, h := range g {
			if owner[h.Index] {
				return nil, fmt.Errorf("%w: cell %d in two sections", ErrInvalidOptions, h.Index)
			}
			owner[h.Index] = true
		}
		sections = append(sections, newSection(len(sections), g))
	}
	if len(owner) != grid.CellCount() {
		return nil, fmt.Errorf("%w: %d of %d cells covered", ErrInvalidOptions, len(owner), grid.CellCount())
	}
	return newPartition(grid, sections), nil
}
