// Package subdivide grows chunks of sections out of a pool of unassigned
// sections, one section at a time.
package subdivide

import (
	"sort"

	"github.com/talgya/terragen/internal/partition"
)

// Pool is the set of sections not yet claimed by any chunk.
type Pool struct {
	in map[int]*partition.Section
}

// NewPool returns a pool holding the given sections.
func NewPool(sections []*partition.Section) *Pool {
	p := &Pool{in: make(map[int]*partition.Section, len(sections))}
	for _, s := range sections {
		p.in[s.ID] = s
	}
	return p
}

// Add returns s to the pool.
func (p *Pool) Add(s *partition.Section) {
	p.in[s.ID] = s
}

// Remove takes s out of the pool.
func (p *Pool) Remove(s *partition.Section) {
	delete(p.in, s.ID)
}

// Contains reports whether s is unassigned.
func (p *Pool) Contains(s *partition.Section) bool {
	_, ok := p.in[s.ID]
	return ok
}

// Len returns the number of sections in the pool.
func (p *Pool) Len() int {
	return len(p.in)
}

// CellCount totals the cells of every pooled section.
func (p *Pool) CellCount() int {
	n := 0
	for _, s := range p.in {
		n += s.Size()
	}
	return n
}

// Sections returns the pooled sections ordered by ID.
func (p *Pool) Sections() []*partition.Section {
	out := make([]*partition.Section, 0, len(p.in))
	for _, s := range p.in {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
