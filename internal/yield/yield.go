// Package yield computes per-cell yields and the weighted score used to
// judge how desirable a region is.
package yield

import (
	"fmt"

	"github.com/talgya/terragen/internal/world"
)

// Type is a yield category.
type Type uint8

const (
	Food Type = iota
	Production
	Gold
	Science
	NumTypes
)

// Types lists every yield category in evaluation order.
var Types = [NumTypes]Type{Food, Production, Gold, Science}

// Name returns the lowercase name of a yield type.
func (t Type) Name() string {
	switch t {
	case Food:
		return "food"
	case Production:
		return "production"
	case Gold:
		return "gold"
	case Science:
		return "science"
	default:
		return "unknown"
	}
}

// Parse maps a name back to a yield type.
func Parse(name string) (Type, error) {
	for _, t := range Types {
		if t.Name() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown yield type %q", name)
}

// Yields holds one value per yield category.
type Yields [NumTypes]float64

// Add returns y + o.
func (y Yields) Add(o Yields) Yields {
	for i := range y {
		y[i] += o[i]
	}
	return y
}

// Sub returns y - o.
func (y Yields) Sub(o Yields) Yields {
	for i := range y {
		y[i] -= o[i]
	}
	return y
}

// Weights scales each yield category when computing a score.
type Weights [NumTypes]float64

// DefaultWeights values food and production above the rest.
func DefaultWeights() Weights {
	return Weights{Food: 1.0, Production: 1.0, Gold: 0.5, Science: 0.5}
}

var terrainBase = map[world.Terrain]Yields{
	world.TerrainOcean:     {Food: 1, Gold: 0.5},
	world.TerrainCoast:     {Food: 1, Gold: 1},
	world.TerrainGrassland: {Food: 2},
	world.TerrainPlains:    {Food: 1, Production: 1},
	world.TerrainDesert:    {},
	world.TerrainTundra:    {Food: 1},
	world.TerrainSnow:      {},
}

var shapeMod = map[world.Shape]Yields{
	world.ShapeHills:     {Production: 1},
	world.ShapeMountains: {Food: -9, Production: -9, Gold: -9, Science: 1},
}

var vegetationMod = map[world.Vegetation]Yields{
	world.VegetationForest: {Food: -1, Production: 1},
	world.VegetationJungle: {Food: 0, Production: -1, Science: 1},
	world.VegetationMarsh:  {Food: 1, Production: -1},
}

var resourceBonus = map[world.Resource]Yields{
	world.ResourceWheat:  {Food: 1},
	world.ResourceCattle: {Food: 1, Production: 0.5},
	world.ResourceStone:  {Production: 1},
	world.ResourceIron:   {Production: 1, Science: 0.5},
	world.ResourceGold:   {Gold: 3},
	world.ResourceSpices: {Gold: 2, Food: 0.5},
	world.ResourceFish:   {Food: 1},
	world.ResourcePearls: {Gold: 2},
	world.ResourceHorses: {Production: 1, Food: 0.5},
}

// Cell returns the yields of a single cell. No category goes below zero.
func Cell(h *world.Hex) Yields {
	y := terrainBase[h.Terrain]
	y = y.Add(shapeMod[h.Shape])
	y = y.Add(vegetationMod[h.Vegetation])
	y = y.Add(resourceBonus[h.Resource])
	for i := range y {
		if y[i] < 0 {
			y[i] = 0
		}
	}
	return y
}

// ResourceYields returns the bonus a resource adds to its cell.
func ResourceYields(r world.Resource) Yields {
	return resourceBonus[r]
}

// Sum totals the yields of a set of cells.
func Sum(cells []*world.Hex) Yields {
	var total Yields
	for _, h := range cells {
		total = total.Add(Cell(h))
	}
	return total
}

// Score collapses yields into one weighted scalar.
func Score(y Yields, w Weights) float64 {
	s := 0.0
	for i := range y {
		s += y[i] * w[i]
	}
	return s
}

// CellScore is the weighted score of one cell.
func CellScore(h *world.Hex, w Weights) float64 {
	return Score(Cell(h), w)
}

// RegionScore is the weighted score of a set of cells.
func RegionScore(cells []*world.Hex, w Weights) float64 {
	return Score(Sum(cells), w)
}
