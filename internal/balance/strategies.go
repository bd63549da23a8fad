package balance

import (
	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// improveTerrain steps land terrain up the fertility ladder
// snow → tundra → plains → grassland, and desert → plains.
func newImproveTerrain(env *Env) Strategy {
	up := map[world.Terrain]world.Terrain{
		world.TerrainSnow:   world.TerrainTundra,
		world.TerrainTundra: world.TerrainPlains,
		world.TerrainDesert: world.TerrainPlains,
		world.TerrainPlains: world.TerrainGrassland,
	}
	down := map[world.Terrain]world.Terrain{
		world.TerrainGrassland: world.TerrainPlains,
		world.TerrainPlains:    world.TerrainDesert,
	}
	step := func(ladder map[world.Terrain]world.Terrain) edit {
		return func(h world.Hex) (world.Hex, bool) {
			t, ok := ladder[h.Terrain]
			if !ok || h.Shape == world.ShapeMountains {
				return h, false
			}
			h.Terrain = t
			return h, true
		}
	}
	return &cellStrategy{name: "improve_terrain", env: env, raise: step(up), lower: step(down)}
}

// addHills raises flat land into hills; lowering flattens hills again.
func newAddHills(env *Env) Strategy {
	raise := func(h world.Hex) (world.Hex, bool) {
		if h.Shape != world.ShapeFlat || h.Terrain == world.TerrainSnow {
			return h, false
		}
		h.Shape = world.ShapeHills
		return h, true
	}
	lower := func(h world.Hex) (world.Hex, bool) {
		if h.Shape != world.ShapeHills {
			return h, false
		}
		h.Shape = world.ShapeFlat
		return h, true
	}
	return &cellStrategy{name: "add_hills", env: env, raise: raise, lower: lower}
}

// addForest plants forest on bare land.
func newAddForest(env *Env) Strategy {
	raise := func(h world.Hex) (world.Hex, bool) {
		if h.Vegetation != world.VegetationNone {
			return h, false
		}
		h.Vegetation = world.VegetationForest
		return h, true
	}
	lower := func(h world.Hex) (world.Hex, bool) {
		if h.Vegetation != world.VegetationForest {
			return h, false
		}
		h.Vegetation = world.VegetationNone
		return h, true
	}
	return &cellStrategy{name: "add_forest", env: env, raise: raise, lower: lower}
}

// removeVegetation clears any vegetation.
func newRemoveVegetation(env *Env) Strategy {
	bare := func(h world.Hex) (world.Hex, bool) {
		if h.Vegetation == world.VegetationNone {
			return h, false
		}
		h.Vegetation = world.VegetationNone
		return h, true
	}
	return &cellStrategy{name: "remove_vegetation", env: env, raise: bare, lower: bare}
}

// hillsToMountains only lowers: bare hills become mountains, best cell first.
func newHillsToMountains(env *Env) Strategy {
	lower := func(h world.Hex) (world.Hex, bool) {
		if h.Shape != world.ShapeHills || h.Vegetation != world.VegetationNone || h.Resource != world.ResourceNone {
			return h, false
		}
		h.Shape = world.ShapeMountains
		return h, true
	}
	return &cellStrategy{name: "hills_to_mountains", env: env, lower: lower, lowerByScore: true}
}

// placeResource drops a resource chosen by the region's resource weights on
// a free cell of the region; lowering strips the resource from the best cell.
type placeResource struct {
	env *Env
}

func newPlaceResource(env *Env) Strategy {
	return &placeResource{env: env}
}

func (p *placeResource) Name() string { return "place_resource" }

func (p *placeResource) TryIncreaseYield(r *homeland.Region, d *RegionData, y yield.Type) (bool, float64) {
	ok, delta := p.place(r, d, func(res world.Resource) bool { return yield.ResourceYields(res)[y] > 0 })
	if !ok {
		return false, 0
	}
	return true, delta[y]
}

func (p *placeResource) TryIncreaseScore(r *homeland.Region, d *RegionData) (bool, float64) {
	ok, delta := p.place(r, d, func(res world.Resource) bool {
		return yield.Score(yield.ResourceYields(res), d.ScoreWeights) > 0
	})
	if !ok {
		return false, 0
	}
	return true, yield.Score(delta, d.ScoreWeights)
}

func (p *placeResource) TryDecreaseScore(r *homeland.Region, d *RegionData) (bool, float64) {
	strip := &cellStrategy{
		name: "place_resource",
		env:  p.env,
		lower: func(h world.Hex) (world.Hex, bool) {
			if h.Resource == world.ResourceNone {
				return h, false
			}
			h.Resource = world.ResourceNone
			return h, true
		},
		lowerByScore: true,
	}
	return strip.TryDecreaseScore(r, d)
}

// place picks a resource by weight among those wanted and placeable
// somewhere in the region, then a free cell for it uniformly.
func (p *placeResource) place(r *homeland.Region, d *RegionData, wanted func(world.Resource) bool) (bool, yield.Yields) {
	spots := make(map[world.Resource][]*world.Hex)
	var options []world.Resource
	for _, res := range world.Resources() {
		if d.ResourceWeights[res] <= 0 || !wanted(res) {
			continue
		}
		for _, h := range r.Cells {
			if h.Resource == world.ResourceNone && p.env.Mutator.CanSetResource(h, res) {
				spots[res] = append(spots[res], h)
			}
		}
		if len(spots[res]) > 0 {
			options = append(options, res)
		}
	}
	res, ok := entropy.WeightedPick(p.env.Stream, options, func(res world.Resource) float64 {
		return d.ResourceWeights[res]
	})
	if !ok {
		return false, yield.Yields{}
	}

	cells := spots[res]
	h := cells[p.env.Stream.Intn(len(cells))]
	before := yield.Cell(h)
	if err := p.env.Mutator.SetResource(h, res); err != nil {
		return false, yield.Yields{}
	}
	return true, yield.Cell(h).Sub(before)
}
