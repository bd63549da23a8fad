package homeland

import (
	"container/heap"

	"github.com/talgya/terragen/internal/partition"
)

// group is a set of sections waiting to become a region.
type group struct {
	land  []*partition.Section
	water []*partition.Section
	key   float64 // 100 / cell count: the largest group has the lowest key
	seq   int     // Insertion order, breaks key ties
}

func newGroup(land, water []*partition.Section, seq int) *group {
	g := &group{land: land, water: water, seq: seq}
	if n := g.cellCount(); n > 0 {
		g.key = 100 / float64(n)
	}
	return g
}

func (g *group) cellCount() int {
	return partition.CellCount(g.land) + partition.CellCount(g.water)
}

func (g *group) sections() []*partition.Section {
	out := make([]*partition.Section, 0, len(g.land)+len(g.water))
	out = append(out, g.land...)
	return append(out, g.water...)
}

// groupQueue is a min-heap on key.
type groupQueue []*group

func (q groupQueue) Len() int { return len(q) }

func (q groupQueue) Less(i, j int) bool {
	if q[i].key != q[j].key {
		return q[i].key < q[j].key
	}
	return q[i].seq < q[j].seq
}

func (q groupQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *groupQueue) Push(x any) { *q = append(*q, x.(*group)) }

func (q *groupQueue) Pop() any {
	old := *q
	n := len(old)
	g := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return g
}

var _ heap.Interface = (*groupQueue)(nil)
