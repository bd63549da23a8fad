package mapgen

import (
	"sort"
	"strconv"

	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// StartPosition is where a civilization's first city goes.
type StartPosition struct {
	Civ   int
	Cell  *world.Hex
	Score float64 // Site desirability
	Name  string
}

// placeStarts picks the best site of every starting region once the map is
// final. Names are drawn from the stream after every other draw.
func (r *run) placeStarts() {
	w := scoreWeights(r.tpl.ScoreWeights)
	for _, hl := range r.res.Homelands {
		cell, score := bestSite(r.grid, hl.Start, w)
		if cell == nil {
			r.warn("no site for a start position", "civ", hl.Civ)
			continue
		}
		r.res.Starts = append(r.res.Starts, StartPosition{Civ: hl.Civ, Cell: cell, Score: score})
	}

	names := siteNames(r.stream, len(r.res.Starts))
	for i := range r.res.Starts {
		r.res.Starts[i].Name = names[i]
	}
}

// bestSite scores every flat or hilly land cell of reg by the yields within
// one step, plus bonuses for water access and terrain variety. Ties go to
// the lower cell index.
func bestSite(grid *world.Map, reg *homeland.Region, w yield.Weights) (*world.Hex, float64) {
	type scored struct {
		cell  *world.Hex
		score float64
	}
	var cands []scored
	for _, h := range reg.LandCells {
		if h.Shape == world.ShapeMountains {
			continue
		}
		cands = append(cands, scored{h, siteScore(grid, h, w)})
	}
	if len(cands) == 0 {
		return nil, 0
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	return cands[0].cell, cands[0].score
}

func siteScore(grid *world.Map, h *world.Hex, w yield.Weights) float64 {
	score := yield.RegionScore(grid.CellsInRadius(h, 1), w)

	terrains := make(map[world.Terrain]bool)
	coastal := false
	for _, n := range grid.Neighbors(h) {
		if n.IsWater() {
			coastal = true
			continue
		}
		terrains[n.Terrain] = true
	}
	score += float64(len(terrains)) * 0.3
	if coastal {
		score += 1.5
	}
	return score
}

// siteNames combines syllables into count distinct names. Once a drawn
// name is taken it gets the lowest free numeral, so any count terminates.
func siteNames(s *entropy.Stream, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "High", "Old", "New", "Far",
		"Deep", "Gold", "Frost", "Storm", "Thorn", "Oak", "Pine",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "dale", "crest", "vale", "port", "bury", "moor",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)
	for len(names) < count {
		base := prefixes[s.Intn(len(prefixes))] + suffixes[s.Intn(len(suffixes))]
		name := base
		for n := 2; used[name]; n++ {
			name = base + " " + strconv.Itoa(n)
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}
