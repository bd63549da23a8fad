package balance

import (
	"sort"

	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// edit proposes the next state of a cell, or false if it does not apply.
type edit func(h world.Hex) (world.Hex, bool)

// cellStrategy is a strategy described by a raising edit and an optional
// lowering edit over a region's land cells.
type cellStrategy struct {
	name string
	env  *Env

	raise edit
	lower edit

	// Lowering walks candidates from the highest cell score down instead
	// of picking uniformly.
	lowerByScore bool
}

func (s *cellStrategy) Name() string { return s.name }

func (s *cellStrategy) TryIncreaseYield(r *homeland.Region, d *RegionData, y yield.Type) (bool, float64) {
	if s.raise == nil {
		return false, 0
	}
	better := func(before, after yield.Yields) bool { return after[y] > before[y] }
	ok, before, after := s.apply(r.LandCells, s.raise, better, false, d.ScoreWeights)
	if !ok {
		return false, 0
	}
	return true, after[y] - before[y]
}

func (s *cellStrategy) TryIncreaseScore(r *homeland.Region, d *RegionData) (bool, float64) {
	if s.raise == nil {
		return false, 0
	}
	better := func(before, after yield.Yields) bool {
		return yield.Score(after, d.ScoreWeights) > yield.Score(before, d.ScoreWeights)
	}
	ok, before, after := s.apply(r.LandCells, s.raise, better, false, d.ScoreWeights)
	if !ok {
		return false, 0
	}
	return true, yield.Score(after, d.ScoreWeights) - yield.Score(before, d.ScoreWeights)
}

func (s *cellStrategy) TryDecreaseScore(r *homeland.Region, d *RegionData) (bool, float64) {
	if s.lower == nil {
		return false, 0
	}
	worse := func(before, after yield.Yields) bool {
		return yield.Score(after, d.ScoreWeights) < yield.Score(before, d.ScoreWeights)
	}
	ok, before, after := s.apply(r.LandCells, s.lower, worse, s.lowerByScore, d.ScoreWeights)
	if !ok {
		return false, 0
	}
	return true, yield.Score(after, d.ScoreWeights) - yield.Score(before, d.ScoreWeights)
}

// apply finds the qualifying cells, picks one and mutates it.
func (s *cellStrategy) apply(cells []*world.Hex, ed edit, accept func(before, after yield.Yields) bool, byScore bool, w yield.Weights) (bool, yield.Yields, yield.Yields) {
	type candidate struct {
		cell *world.Hex
		next world.Hex
	}
	var cands []candidate
	for _, h := range cells {
		next, ok := ed(*h)
		if !ok || !s.env.Mutator.CanReplace(h, next) {
			continue
		}
		if !accept(yield.Cell(h), yield.Cell(&next)) {
			continue
		}
		cands = append(cands, candidate{cell: h, next: next})
	}
	if len(cands) == 0 {
		return false, yield.Yields{}, yield.Yields{}
	}

	var pick candidate
	if byScore {
		sort.SliceStable(cands, func(i, j int) bool {
			return yield.CellScore(cands[i].cell, w) > yield.CellScore(cands[j].cell, w)
		})
		pick = cands[0]
	} else {
		pick = cands[s.env.Stream.Intn(len(cands))]
	}

	before := yield.Cell(pick.cell)
	if err := s.env.Mutator.Replace(pick.cell, pick.next); err != nil {
		return false, yield.Yields{}, yield.Yields{}
	}
	return true, before, yield.Cell(pick.cell)
}
