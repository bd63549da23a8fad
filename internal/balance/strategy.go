// Package balance nudges region terrain one cell at a time until a region's
// yields and score land inside a target band.
package balance

import (
	"errors"
	"fmt"

	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// ErrUnknownStrategy is returned when a template names a strategy that
// does not exist.
var ErrUnknownStrategy = errors.New("unknown balance strategy")

// Strategy performs at most one legal cell mutation per call and reports
// the change it caused. A false result means no cell qualified.
type Strategy interface {
	Name() string
	TryIncreaseYield(r *homeland.Region, d *RegionData, y yield.Type) (bool, float64)
	TryIncreaseScore(r *homeland.Region, d *RegionData) (bool, float64)
	TryDecreaseScore(r *homeland.Region, d *RegionData) (bool, float64)
}

// Env carries the run collaborators every strategy needs.
type Env struct {
	Stream  *entropy.Stream
	Mutator *world.Mutator
}

// RegionData is the template selection made for one region.
type RegionData struct {
	RegionID        int
	Biome           string
	Topology        string
	Strategies      []Strategy // Tried in this order every round
	ResourceWeights map[world.Resource]float64
	ScoreWeights    yield.Weights
}

// StrategyNames lists the strategies in their resolved order.
func (d *RegionData) StrategyNames() []string {
	names := make([]string, len(d.Strategies))
	for i, s := range d.Strategies {
		names[i] = s.Name()
	}
	return names
}

var registry = map[string]func(env *Env) Strategy{
	"improve_terrain":    newImproveTerrain,
	"add_hills":          newAddHills,
	"add_forest":         newAddForest,
	"remove_vegetation":  newRemoveVegetation,
	"place_resource":     newPlaceResource,
	"hills_to_mountains": newHillsToMountains,
}

// Names returns every registered strategy name.
func Names() []string {
	return []string{
		"improve_terrain",
		"add_hills",
		"add_forest",
		"remove_vegetation",
		"place_resource",
		"hills_to_mountains",
	}
}

// Resolve builds the named strategies, keeping their order.
func Resolve(names []string, env *Env) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		ctor, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
		}
		out = append(out, ctor(env))
	}
	return out, nil
}
