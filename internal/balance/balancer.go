package balance

import (
	"log/slog"

	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/yield"
)

// Target is the band a region should end up in.
type Target struct {
	MinYields map[yield.Type]float64
	MinScore  float64
	MaxScore  float64 // 0 = no upper bound
}

// Report summarizes one region's balancing.
type Report struct {
	RegionID  int
	Rounds    int
	Mutations map[string]int // Successful calls per strategy name
	Yields    yield.Yields
	Score     float64
	Met       bool
}

// Balancer runs greedy hill climbing: one mutation per round, no backtracking.
type Balancer struct {
	MaxRounds int
}

// DefaultMaxRounds bounds a single region's balancing.
const DefaultMaxRounds = 200

// NewBalancer returns a balancer with the default round limit.
func NewBalancer() *Balancer {
	return &Balancer{MaxRounds: DefaultMaxRounds}
}

// Balance pushes r towards target using d's strategies in order.
func (b *Balancer) Balance(r *homeland.Region, d *RegionData, target Target) Report {
	rep := Report{RegionID: r.ID, Mutations: make(map[string]int)}
	maxRounds := b.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	for rep.Rounds < maxRounds {
		y := yield.Sum(r.Cells)
		score := yield.Score(y, d.ScoreWeights)
		if met(y, score, target) {
			break
		}
		name, ok := b.step(r, d, target, y, score)
		if !ok {
			break
		}
		rep.Rounds++
		rep.Mutations[name]++
	}

	rep.Yields = yield.Sum(r.Cells)
	rep.Score = yield.Score(rep.Yields, d.ScoreWeights)
	rep.Met = met(rep.Yields, rep.Score, target)
	if !rep.Met {
		slog.Debug("region left outside target",
			"region", r.ID,
			"rounds", rep.Rounds,
			"score", rep.Score,
		)
	}
	return rep
}

// step applies the single mutation this round calls for.
func (b *Balancer) step(r *homeland.Region, d *RegionData, target Target, y yield.Yields, score float64) (string, bool) {
	for _, t := range yield.Types {
		want, ok := target.MinYields[t]
		if !ok || y[t] >= want {
			continue
		}
		for _, s := range d.Strategies {
			if done, _ := s.TryIncreaseYield(r, d, t); done {
				return s.Name(), true
			}
		}
		// Nothing can raise this yield; fall through to the next deficit.
	}

	switch {
	case score < target.MinScore:
		for _, s := range d.Strategies {
			if done, _ := s.TryIncreaseScore(r, d); done {
				return s.Name(), true
			}
		}
	case target.MaxScore > 0 && score > target.MaxScore:
		for _, s := range d.Strategies {
			if done, _ := s.TryDecreaseScore(r, d); done {
				return s.Name(), true
			}
		}
	}
	return "", false
}

func met(y yield.Yields, score float64, target Target) bool {
	for t, want := range target.MinYields {
		if y[t] < want {
			return false
		}
	}
	if score < target.MinScore {
		return false
	}
	return target.MaxScore <= 0 || score <= target.MaxScore
}
