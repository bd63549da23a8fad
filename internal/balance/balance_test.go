package balance

import (
	"errors"
	"testing"

	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// landRegion returns a region covering a whole width×height grid of the
// given terrain, plus the env to balance it with.
func landRegion(t *testing.T, width, height int, terrain world.Terrain) (*homeland.Region, *Env) {
	t.Helper()
	grid := world.NewMap(width, height)
	mu := world.NewMutator(grid)
	for _, h := range grid.Cells {
		if err := mu.SetTerrain(h, terrain); err != nil {
			t.Fatal(err)
		}
	}
	part, err := partition.New(grid, [][]*world.Hex{grid.Cells})
	if err != nil {
		t.Fatal(err)
	}
	r := homeland.NewRegion(0, homeland.KindStarting, 0, part.Sections(), nil)
	return r, &Env{Stream: entropy.NewStream(7), Mutator: mu}
}

func regionData(t *testing.T, env *Env, names ...string) *RegionData {
	t.Helper()
	strategies, err := Resolve(names, env)
	if err != nil {
		t.Fatal(err)
	}
	return &RegionData{
		Strategies:      strategies,
		ResourceWeights: map[world.Resource]float64{world.ResourceWheat: 1, world.ResourceIron: 1},
		ScoreWeights:    yield.DefaultWeights(),
	}
}

func TestResolveKeepsOrder(t *testing.T) {
	_, env := landRegion(t, 2, 2, world.TerrainPlains)
	names := []string{"place_resource", "add_hills", "improve_terrain"}
	d := regionData(t, env, names...)
	got := d.StrategyNames()
	for i := range names {
		if got[i] != names[i] {
			t.Fatalf("order = %v, want %v", got, names)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	_, env := landRegion(t, 2, 2, world.TerrainPlains)
	_, err := Resolve([]string{"add_hills", "terraform"}, env)
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("err = %v, want ErrUnknownStrategy", err)
	}
}

func TestEveryRegisteredNameResolves(t *testing.T) {
	_, env := landRegion(t, 2, 2, world.TerrainPlains)
	if _, err := Resolve(Names(), env); err != nil {
		t.Fatal(err)
	}
}

func TestStrategyMutatesOneCell(t *testing.T) {
	r, env := landRegion(t, 5, 5, world.TerrainPlains)
	d := regionData(t, env, "add_hills")

	before := yield.Sum(r.Cells)
	ok, delta := d.Strategies[0].TryIncreaseYield(r, d, yield.Production)
	if !ok {
		t.Fatal("add_hills found no cell")
	}
	if delta != 1 {
		t.Errorf("production delta = %v, want 1", delta)
	}
	if env.Mutator.Changes() != 25+1 {
		t.Errorf("changes = %d, want one mutation after setup", env.Mutator.Changes())
	}
	after := yield.Sum(r.Cells)
	if after[yield.Production]-before[yield.Production] != delta {
		t.Errorf("reported delta %v does not match region change", delta)
	}
}

func TestStrategyReportsNoCandidate(t *testing.T) {
	r, env := landRegion(t, 3, 3, world.TerrainPlains)
	d := regionData(t, env, "hills_to_mountains")

	// Flat plains carry no hills to promote.
	if ok, _ := d.Strategies[0].TryDecreaseScore(r, d); ok {
		t.Fatal("hills_to_mountains acted on a flat region")
	}
	// It never raises anything.
	if ok, _ := d.Strategies[0].TryIncreaseScore(r, d); ok {
		t.Fatal("hills_to_mountains raised a score")
	}
	if env.Mutator.Changes() != 9 {
		t.Errorf("changes = %d, want only setup changes", env.Mutator.Changes())
	}
}

func TestHillsToMountainsTakesBestHillFirst(t *testing.T) {
	r, env := landRegion(t, 4, 1, world.TerrainTundra)
	for _, h := range r.Cells {
		if err := env.Mutator.SetShape(h, world.ShapeHills); err != nil {
			t.Fatal(err)
		}
	}
	// Cell 2 becomes the best hill.
	if err := env.Mutator.SetTerrain(r.Cells[2], world.TerrainPlains); err != nil {
		t.Fatal(err)
	}
	d := regionData(t, env, "hills_to_mountains")

	ok, delta := d.Strategies[0].TryDecreaseScore(r, d)
	if !ok || delta >= 0 {
		t.Fatalf("ok=%v delta=%v, want a decrease", ok, delta)
	}
	if r.Cells[2].Shape != world.ShapeMountains {
		t.Errorf("best hill not promoted, shapes: %v %v %v %v",
			r.Cells[0].Shape, r.Cells[1].Shape, r.Cells[2].Shape, r.Cells[3].Shape)
	}
}

func TestPlaceResourceUsesWeights(t *testing.T) {
	r, env := landRegion(t, 4, 4, world.TerrainGrassland)
	d := regionData(t, env, "place_resource")
	d.ResourceWeights = map[world.Resource]float64{world.ResourceCattle: 1}

	ok, delta := d.Strategies[0].TryIncreaseYield(r, d, yield.Food)
	if !ok || delta != 1 {
		t.Fatalf("ok=%v delta=%v, want cattle food bonus", ok, delta)
	}
	n := 0
	for _, h := range r.Cells {
		if h.Resource == world.ResourceCattle {
			n++
		}
	}
	if n != 1 {
		t.Errorf("cattle on %d cells, want 1", n)
	}

	// Gold is not offered by any weighted resource.
	if ok, _ := d.Strategies[0].TryIncreaseYield(r, d, yield.Gold); ok {
		t.Error("placed a resource that adds no gold")
	}
}

func TestBalancerReachesBand(t *testing.T) {
	r, env := landRegion(t, 6, 6, world.TerrainDesert)
	d := regionData(t, env, "improve_terrain", "add_hills", "place_resource")

	target := Target{
		MinYields: map[yield.Type]float64{yield.Food: 20},
		MinScore:  40,
		MaxScore:  60,
	}
	rep := NewBalancer().Balance(r, d, target)
	if !rep.Met {
		t.Fatalf("target not met: %+v", rep)
	}
	if rep.Yields[yield.Food] < 20 {
		t.Errorf("food = %v, want >= 20", rep.Yields[yield.Food])
	}
	if rep.Score < 40 || rep.Score > 60 {
		t.Errorf("score = %v, want in [40, 60]", rep.Score)
	}
	total := 0
	for _, n := range rep.Mutations {
		total += n
	}
	if total != rep.Rounds {
		t.Errorf("mutations %d != rounds %d", total, rep.Rounds)
	}
	for _, h := range r.Cells {
		if !world.Legal(h) {
			t.Fatalf("cell %d left illegal", h.Index)
		}
	}
}

func TestBalancerLowersScore(t *testing.T) {
	r, env := landRegion(t, 4, 4, world.TerrainGrassland)
	for _, h := range r.Cells {
		if err := env.Mutator.SetShape(h, world.ShapeHills); err != nil {
			t.Fatal(err)
		}
	}
	d := regionData(t, env, "hills_to_mountains")
	start := yield.RegionScore(r.Cells, d.ScoreWeights)

	rep := NewBalancer().Balance(r, d, Target{MaxScore: start - 10})
	if !rep.Met {
		t.Fatalf("target not met: %+v", rep)
	}
	if rep.Mutations["hills_to_mountains"] == 0 {
		t.Error("no hills promoted")
	}
}

func TestBalancerStopsWhenNothingActs(t *testing.T) {
	r, env := landRegion(t, 3, 3, world.TerrainSnow)
	d := regionData(t, env, "add_forest")

	rep := NewBalancer().Balance(r, d, Target{MinScore: 1000})
	if rep.Met {
		t.Fatal("impossible target reported met")
	}
	if rep.Rounds != 0 {
		t.Errorf("rounds = %d, want 0 (forest cannot grow on snow)", rep.Rounds)
	}
}

func TestBalancerRoundLimit(t *testing.T) {
	r, env := landRegion(t, 6, 6, world.TerrainPlains)
	d := regionData(t, env, "add_hills")

	b := &Balancer{MaxRounds: 3}
	rep := b.Balance(r, d, Target{MinScore: 1000})
	if rep.Rounds != 3 {
		t.Errorf("rounds = %d, want 3", rep.Rounds)
	}
}

func TestBalanceIsDeterministic(t *testing.T) {
	run := func() []world.Hex {
		r, env := landRegion(t, 6, 6, world.TerrainTundra)
		d := regionData(t, env, "improve_terrain", "add_forest", "place_resource")
		NewBalancer().Balance(r, d, Target{MinScore: 45})
		out := make([]world.Hex, len(r.Cells))
		for i, h := range r.Cells {
			out[i] = *h
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
