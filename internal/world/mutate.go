package world

import (
	"errors"
	"fmt"
)

// ErrIllegalMutation is returned when a cell change breaks a terrain rule.
var ErrIllegalMutation = errors.New("illegal cell mutation")

// resourceTerrains lists the terrains each resource may be placed on.
var resourceTerrains = map[Resource][]Terrain{
	ResourceWheat:  {TerrainGrassland, TerrainPlains},
	ResourceCattle: {TerrainGrassland},
	ResourceStone:  {TerrainGrassland, TerrainPlains, TerrainDesert, TerrainTundra},
	ResourceIron:   {TerrainPlains, TerrainDesert, TerrainTundra, TerrainSnow},
	ResourceGold:   {TerrainPlains, TerrainDesert},
	ResourceSpices: {TerrainGrassland, TerrainPlains},
	ResourceFish:   {TerrainCoast, TerrainOcean},
	ResourcePearls: {TerrainCoast},
	ResourceHorses: {TerrainPlains, TerrainTundra},
}

// Mutator is the only writer of cell terrain state during generation.
// Every setter checks the change against the terrain rules first.
type Mutator struct {
	m       *Map
	changes int
}

// NewMutator returns a mutator for the given map.
func NewMutator(m *Map) *Mutator {
	return &Mutator{m: m}
}

// Map returns the map being mutated.
func (mu *Mutator) Map() *Map {
	return mu.m
}

// Changes returns how many successful mutations were applied.
func (mu *Mutator) Changes() int {
	return mu.changes
}

// CanSetTerrain reports whether h may switch to terrain t.
func (mu *Mutator) CanSetTerrain(h *Hex, t Terrain) bool {
	_, ok := terrainChange(h, t)
	return ok
}

// SetTerrain changes the terrain of h. A resource that is not allowed on the
// new terrain is dropped.
func (mu *Mutator) SetTerrain(h *Hex, t Terrain) error {
	if h.Terrain == t {
		return nil
	}
	next, ok := terrainChange(h, t)
	if !ok {
		return fmt.Errorf("%w: cell %d %s -> %s", ErrIllegalMutation, h.Index, TerrainName(h.Terrain), TerrainName(t))
	}
	h.Terrain = next.Terrain
	h.Resource = next.Resource
	mu.changes++
	return nil
}

func terrainChange(h *Hex, t Terrain) (Hex, bool) {
	next := *h
	next.Terrain = t
	if t.IsWater() && !h.IsWater() {
		// Land becomes water only once it is flat and bare.
		if h.Shape != ShapeFlat || h.Vegetation != VegetationNone {
			return next, false
		}
	}
	if next.Resource != ResourceNone && !resourceAllowed(next.Resource, t) {
		next.Resource = ResourceNone
	}
	return next, legal(&next)
}

// CanSetShape reports whether h may take shape s.
func (mu *Mutator) CanSetShape(h *Hex, s Shape) bool {
	next := *h
	next.Shape = s
	return legal(&next)
}

// SetShape changes the landform of h.
func (mu *Mutator) SetShape(h *Hex, s Shape) error {
	if h.Shape == s {
		return nil
	}
	if !mu.CanSetShape(h, s) {
		return fmt.Errorf("%w: cell %d shape %s -> %s", ErrIllegalMutation, h.Index, ShapeName(h.Shape), ShapeName(s))
	}
	h.Shape = s
	mu.changes++
	return nil
}

// CanSetVegetation reports whether h may grow vegetation v.
func (mu *Mutator) CanSetVegetation(h *Hex, v Vegetation) bool {
	next := *h
	next.Vegetation = v
	return legal(&next)
}

// SetVegetation changes the vegetation of h.
func (mu *Mutator) SetVegetation(h *Hex, v Vegetation) error {
	if h.Vegetation == v {
		return nil
	}
	if !mu.CanSetVegetation(h, v) {
		return fmt.Errorf("%w: cell %d vegetation %s -> %s", ErrIllegalMutation, h.Index, VegetationName(h.Vegetation), VegetationName(v))
	}
	h.Vegetation = v
	mu.changes++
	return nil
}

// CanSetResource reports whether h may carry resource r.
func (mu *Mutator) CanSetResource(h *Hex, r Resource) bool {
	next := *h
	next.Resource = r
	return legal(&next)
}

// SetResource places (or with ResourceNone, clears) the resource on h.
func (mu *Mutator) SetResource(h *Hex, r Resource) error {
	if h.Resource == r {
		return nil
	}
	if !mu.CanSetResource(h, r) {
		return fmt.Errorf("%w: cell %d resource %s -> %s", ErrIllegalMutation, h.Index, ResourceName(h.Resource), ResourceName(r))
	}
	h.Resource = r
	mu.changes++
	return nil
}

// CanReplace reports whether h may take the terrain state of next.
func (mu *Mutator) CanReplace(h *Hex, next Hex) bool {
	if next.Terrain.IsWater() && !h.IsWater() && (h.Shape != ShapeFlat || h.Vegetation != VegetationNone) {
		return false
	}
	next.Index, next.Coord = h.Index, h.Coord
	return legal(&next)
}

// Replace writes terrain, shape, vegetation and resource of next onto h in
// one legality-checked step. Counts as a single change.
func (mu *Mutator) Replace(h *Hex, next Hex) error {
	if !mu.CanReplace(h, next) {
		return fmt.Errorf("%w: cell %d replace %s/%s/%s/%s", ErrIllegalMutation, h.Index,
			TerrainName(next.Terrain), ShapeName(next.Shape), VegetationName(next.Vegetation), ResourceName(next.Resource))
	}
	if h.Terrain == next.Terrain && h.Shape == next.Shape && h.Vegetation == next.Vegetation && h.Resource == next.Resource {
		return nil
	}
	h.Terrain = next.Terrain
	h.Shape = next.Shape
	h.Vegetation = next.Vegetation
	h.Resource = next.Resource
	mu.changes++
	return nil
}

// Legal reports whether the cell's current combination of state is valid.
func Legal(h *Hex) bool {
	return legal(h)
}

func legal(h *Hex) bool {
	if h.Terrain.IsWater() {
		if h.Shape != ShapeFlat || h.Vegetation != VegetationNone {
			return false
		}
		return h.Resource == ResourceNone || resourceAllowed(h.Resource, h.Terrain)
	}

	if h.Shape == ShapeMountains && (h.Vegetation != VegetationNone || h.Resource != ResourceNone) {
		return false
	}

	switch h.Vegetation {
	case VegetationForest:
		if h.Terrain == TerrainDesert || h.Terrain == TerrainSnow {
			return false
		}
	case VegetationJungle:
		if h.Terrain != TerrainGrassland && h.Terrain != TerrainPlains {
			return false
		}
	case VegetationMarsh:
		if h.Shape != ShapeFlat {
			return false
		}
		if h.Terrain != TerrainGrassland && h.Terrain != TerrainPlains && h.Terrain != TerrainTundra {
			return false
		}
	}

	if h.Resource != ResourceNone && !resourceAllowed(h.Resource, h.Terrain) {
		return false
	}
	return true
}

func resourceAllowed(r Resource, t Terrain) bool {
	for _, allowed := range resourceTerrains[r] {
		if allowed == t {
			return true
		}
	}
	return false
}
