// World generation using layered noise.
// Generates elevation and moisture layers over a blank ocean grid. Terrain,
// shape and vegetation are painted later, region by region, from these layers.
package world

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds grid generation parameters.
type GenConfig struct {
	Width  int   // Cells per row
	Height int   // Rows
	Seed   int64 // Noise seed (0 = random)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:  64,
		Height: 40,
		Seed:   0,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:  10,
		Height: 10,
		Seed:   42,
	}
}

// Generate creates a blank grid and fills the elevation and moisture layers.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moist := perlin.NewPerlin(2, 2, 3, seed+1)

	m := NewMap(cfg.Width, cfg.Height)
	for _, h := range m.Cells {
		p := h.Coord.Position()

		// Multi-octave noise for natural-looking terrain.
		h.Elevation = octaveNoise(elevNoise, p.X, p.Z, 4, 0.08, 0.5)

		// Perlin output is roughly [-1, 1].
		h.Moisture = clamp01((moist.Noise2D(p.X*0.09, p.Z*0.09) + 1) * 0.5)
	}
	return m
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
