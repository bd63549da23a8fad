package mapgen

import (
	"fmt"
	"log/slog"

	"github.com/talgya/terragen/internal/balance"
	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/template"
	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// describeRegions picks a biome and topology for every homeland region,
// paints its land cells, and records the region data. Strategies are
// resolved once and shared in template order.
func (r *run) describeRegions() error {
	env := &balance.Env{Stream: r.stream, Mutator: r.mutator}
	strategies, err := balance.Resolve(r.tpl.Strategies, env)
	if err != nil {
		return fmt.Errorf("resolve strategies: %w", err)
	}
	weights := scoreWeights(r.tpl.ScoreWeights)

	for _, hl := range r.res.Homelands {
		for _, reg := range hl.Regions() {
			biome, _ := entropy.WeightedPick(r.stream, r.tpl.Biomes, func(b template.Biome) float64 { return b.Weight })
			topo, _ := entropy.WeightedPick(r.stream, r.tpl.Topologies, func(t template.Topology) float64 { return t.Weight })
			if err := r.paint(reg, biome, topo); err != nil {
				return fmt.Errorf("paint region %d: %w", reg.ID, err)
			}
			r.res.RegionData[reg.ID] = &balance.RegionData{
				RegionID:        reg.ID,
				Biome:           biome.Name,
				Topology:        topo.Name,
				Strategies:      strategies,
				ResourceWeights: resourceWeights(biome.Resources),
				ScoreWeights:    weights,
			}
			slog.Debug("region described", "region", reg.ID, "kind", homeland.KindName(reg.Kind), "biome", biome.Name, "topology", topo.Name)
		}
	}
	for _, reg := range r.res.Oceans {
		r.res.RegionData[reg.ID] = &balance.RegionData{
			RegionID:     reg.ID,
			Biome:        "ocean",
			ScoreWeights: weights,
		}
	}
	return nil
}

// paint sets base terrain from moisture, shape from elevation and
// vegetation from moisture on every land cell of reg. Vegetation the
// terrain cannot carry is skipped.
func (r *run) paint(reg *homeland.Region, biome template.Biome, topo template.Topology) error {
	veg, _ := world.ParseVegetation(biome.Vegetation)
	for _, h := range reg.LandCells {
		if err := r.mutator.SetTerrain(h, bandTerrain(biome.Bands, h.Moisture)); err != nil {
			return err
		}

		shape := world.ShapeFlat
		switch {
		case h.Elevation >= topo.MountainsAbove:
			shape = world.ShapeMountains
		case h.Elevation >= topo.HillsAbove:
			shape = world.ShapeHills
		}
		if err := r.mutator.SetShape(h, shape); err != nil {
			return err
		}

		if veg != world.VegetationNone && h.Moisture >= biome.VegetationAbove && r.mutator.CanSetVegetation(h, veg) {
			if err := r.mutator.SetVegetation(h, veg); err != nil {
				return err
			}
		}
	}
	return nil
}

// bandTerrain returns the first band whose ceiling lies above moisture,
// or the last band.
func bandTerrain(bands []template.Band, moisture float64) world.Terrain {
	for _, b := range bands {
		if moisture < b.Below {
			t, _ := world.ParseTerrain(b.Terrain)
			return t
		}
	}
	t, _ := world.ParseTerrain(bands[len(bands)-1].Terrain)
	return t
}

// paintCoasts turns every water cell next to land into coast.
func (r *run) paintCoasts() {
	for _, h := range r.grid.Cells {
		if !h.IsWater() {
			continue
		}
		for _, n := range r.grid.Neighbors(h) {
			if !n.IsWater() {
				// Water to water never fails.
				_ = r.mutator.SetTerrain(h, world.TerrainCoast)
				break
			}
		}
	}
}

// balance pushes every homeland region into its target band.
func (r *run) balance() {
	b := balance.NewBalancer()
	starting := target(r.tpl.Targets.Starting)
	other := target(r.tpl.Targets.Other)
	for _, hl := range r.res.Homelands {
		for _, reg := range hl.Regions() {
			t := other
			if reg.Kind == homeland.KindStarting {
				t = starting
			}
			rep := b.Balance(reg, r.res.RegionData[reg.ID], t)
			r.res.Reports = append(r.res.Reports, rep)
			slog.Info("region balanced",
				"region", reg.ID,
				"kind", homeland.KindName(reg.Kind),
				"rounds", rep.Rounds,
				"score", fmt.Sprintf("%.1f", rep.Score),
				"met", rep.Met,
			)
		}
	}
}

func target(t template.Target) balance.Target {
	out := balance.Target{
		MinYields: make(map[yield.Type]float64, len(t.MinYields)),
		MinScore:  t.MinScore,
		MaxScore:  t.MaxScore,
	}
	for name, v := range t.MinYields {
		// The schema limits names to known yields.
		if y, err := yield.Parse(name); err == nil {
			out.MinYields[y] = v
		}
	}
	return out
}

func scoreWeights(w template.ScoreWeights) yield.Weights {
	return yield.Weights{
		yield.Food:       w.Food,
		yield.Production: w.Production,
		yield.Gold:       w.Gold,
		yield.Science:    w.Science,
	}
}

func resourceWeights(m map[string]float64) map[world.Resource]float64 {
	out := make(map[world.Resource]float64, len(m))
	for name, w := range m {
		if res, ok := world.ParseResource(name); ok {
			out[res] = w
		}
	}
	return out
}
