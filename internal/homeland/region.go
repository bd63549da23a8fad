// Package homeland turns a civilization's land and water sections into a
// starting region plus several other regions.
package homeland

import (
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/world"
)

// Kind classifies a region.
type Kind uint8

const (
	KindStarting Kind = iota // Where a civilization begins
	KindHomeland             // The rest of a civilization's land
	KindOcean                // Open water between homelands
)

// KindName returns the lowercase name of a region kind.
func KindName(k Kind) string {
	switch k {
	case KindStarting:
		return "starting"
	case KindHomeland:
		return "homeland"
	case KindOcean:
		return "ocean"
	default:
		return "unknown"
	}
}

// Region is a finalized grouping of land and water cells.
// LandCells and WaterCells are disjoint and together make up Cells.
type Region struct {
	ID   int
	Kind Kind
	Civ  int // Owning civilization, -1 for oceans

	LandSections  []*partition.Section
	WaterSections []*partition.Section

	Cells      []*world.Hex
	LandCells  []*world.Hex
	WaterCells []*world.Hex
}

// NewRegion builds a region from its land and water sections.
func NewRegion(id int, kind Kind, civ int, land, water []*partition.Section) *Region {
	r := &Region{
		ID:            id,
		Kind:          kind,
		Civ:           civ,
		LandSections:  land,
		WaterSections: water,
		LandCells:     partition.Cells(land),
		WaterCells:    partition.Cells(water),
	}
	r.Cells = make([]*world.Hex, 0, len(r.LandCells)+len(r.WaterCells))
	r.Cells = append(r.Cells, r.LandCells...)
	r.Cells = append(r.Cells, r.WaterCells...)
	return r
}

// Sections returns land sections followed by water sections.
func (r *Region) Sections() []*partition.Section {
	out := make([]*partition.Section, 0, len(r.LandSections)+len(r.WaterSections))
	out = append(out, r.LandSections...)
	return append(out, r.WaterSections...)
}
