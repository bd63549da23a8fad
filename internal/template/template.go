// Package template holds the generation template: grid size, partition and
// growth parameters, biomes, topologies, balance strategies and targets.
// Templates are YAML files checked against an embedded JSON schema.
package template

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/talgya/terragen/internal/world"
	"github.com/talgya/terragen/internal/yield"
)

// ErrInvalid is returned for templates that parse but make no sense.
var ErrInvalid = errors.New("invalid template")

//go:embed schema.json
var schemaJSON string

// Template is the full set of knobs for one generation run.
type Template struct {
	Name string `yaml:"name" json:"name"`
	Seed int64  `yaml:"seed" json:"seed"` // 0 = random

	Grid         Grid         `yaml:"grid" json:"grid"`
	Partition    Partition    `yaml:"partition" json:"partition"`
	Homelands    Homelands    `yaml:"homelands" json:"homelands"`
	Oceans       Oceans       `yaml:"oceans" json:"oceans"`
	Borders      Borders      `yaml:"borders" json:"borders"`
	Separation   Separation   `yaml:"separation" json:"separation"`
	Growth       Growth       `yaml:"growth" json:"growth"`
	Biomes       []Biome      `yaml:"biomes" json:"biomes"`
	Topologies   []Topology   `yaml:"topologies" json:"topologies"`
	Strategies   []string     `yaml:"strategies" json:"strategies"` // Balance strategies, in try order
	ScoreWeights ScoreWeights `yaml:"score_weights" json:"score_weights"`
	Targets      Targets      `yaml:"targets" json:"targets"`
}

type Grid struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

type Partition struct {
	Points     int `yaml:"points" json:"points"`
	Iterations int `yaml:"iterations" json:"iterations"`
}

// Homelands controls civilization growth and homeland assembly.
type Homelands struct {
	Civilizations        int     `yaml:"civilizations" json:"civilizations"`
	CellsPerHomeland     int     `yaml:"cells_per_homeland" json:"cells_per_homeland"`
	LandFraction         float64 `yaml:"land_fraction" json:"land_fraction"`
	Regions              int     `yaml:"regions" json:"regions"` // Starting region included
	StartRadius          int     `yaml:"start_radius" json:"start_radius"`
	MinSeedSeparation    int     `yaml:"min_seed_separation" json:"min_seed_separation"`
	ContiguousPercentage float64 `yaml:"contiguous_percentage" json:"contiguous_percentage"`
	ExpansionDistance    float64 `yaml:"expansion_distance" json:"expansion_distance"`
}

type Oceans struct {
	Count         int `yaml:"count" json:"count"`
	CellsPerOcean int `yaml:"cells_per_ocean" json:"cells_per_ocean"`
}

// Borders are measured in cells from the map edge.
type Borders struct {
	Soft int `yaml:"soft" json:"soft"` // No seeds here, growth avoids it
	Hard int `yaml:"hard" json:"hard"` // Always ocean
}

// Separation draws a north-south line no civilization may cross.
type Separation struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	MinFraction float64 `yaml:"min_fraction" json:"min_fraction"`
	MaxFraction float64 `yaml:"max_fraction" json:"max_fraction"`
}

// Growth weights shape how civilization chunks pick their next section.
type Growth struct {
	SeedProximity   float64 `yaml:"seed_proximity" json:"seed_proximity"`
	BorderAvoidance float64 `yaml:"border_avoidance" json:"border_avoidance"`
	ClaimedNeighbor float64 `yaml:"claimed_neighbor" json:"claimed_neighbor"`
}

// Band maps moisture up to Below onto a terrain.
type Band struct {
	Terrain string  `yaml:"terrain" json:"terrain"`
	Below   float64 `yaml:"below" json:"below"`
}

// Biome paints base terrain and vegetation from moisture.
type Biome struct {
	Name            string             `yaml:"name" json:"name"`
	Weight          float64            `yaml:"weight" json:"weight"`
	Bands           []Band             `yaml:"bands" json:"bands"`
	Vegetation      string             `yaml:"vegetation" json:"vegetation"`
	VegetationAbove float64            `yaml:"vegetation_above" json:"vegetation_above"`
	Resources       map[string]float64 `yaml:"resources" json:"resources"`
}

// Topology paints shapes from elevation.
type Topology struct {
	Name           string  `yaml:"name" json:"name"`
	Weight         float64 `yaml:"weight" json:"weight"`
	HillsAbove     float64 `yaml:"hills_above" json:"hills_above"`
	MountainsAbove float64 `yaml:"mountains_above" json:"mountains_above"`
}

type ScoreWeights struct {
	Food       float64 `yaml:"food" json:"food"`
	Production float64 `yaml:"production" json:"production"`
	Gold       float64 `yaml:"gold" json:"gold"`
	Science    float64 `yaml:"science" json:"science"`
}

// Target is a score band plus per-yield minimums.
type Target struct {
	MinYields map[string]float64 `yaml:"min_yields" json:"min_yields"`
	MinScore  float64            `yaml:"min_score" json:"min_score"`
	MaxScore  float64            `yaml:"max_score" json:"max_score"`
}

type Targets struct {
	Starting Target `yaml:"starting" json:"starting"`
	Other    Target `yaml:"other" json:"other"`
}

// Load reads a YAML template. Fields the file leaves out keep their
// Default() values.
func Load(path string) (*Template, error) {
	t := Default()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	if err := Parse(b, t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse overlays a YAML document onto t after checking it against the schema.
func Parse(b []byte, t *Template) error {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc != nil {
		if err := validateSchema(doc); err != nil {
			return err
		}
	}
	if err := yaml.Unmarshal(b, t); err != nil {
		return fmt.Errorf("decode template: %w", err)
	}
	return t.Validate()
}

func validateSchema(doc any) error {
	schema, err := jsonschema.CompileString("template.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	// The validator wants JSON-shaped values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Validate checks cross-field rules the schema cannot express.
func (t *Template) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if t.Grid.Width < 1 || t.Grid.Height < 1 {
		add("grid %dx%d", t.Grid.Width, t.Grid.Height)
	}
	if t.Partition.Points < 1 || t.Partition.Iterations < 1 {
		add("partition needs points and iterations")
	}
	if t.Homelands.Civilizations < 1 {
		add("at least one civilization")
	}
	if t.Homelands.LandFraction <= 0 || t.Homelands.LandFraction > 1 {
		add("land_fraction %v outside (0, 1]", t.Homelands.LandFraction)
	}
	if t.Homelands.Regions < 1 {
		add("homelands need at least one region")
	}
	if t.Separation.Enabled && (t.Separation.MinFraction > t.Separation.MaxFraction) {
		add("separation min_fraction above max_fraction")
	}
	if len(t.Biomes) == 0 || len(t.Topologies) == 0 {
		add("need at least one biome and one topology")
	}
	for _, b := range t.Biomes {
		if len(b.Bands) == 0 {
			add("biome %q has no terrain bands", b.Name)
		}
		for _, band := range b.Bands {
			if tr, ok := world.ParseTerrain(band.Terrain); !ok || tr.IsWater() {
				add("biome %q: band terrain %q is not a land terrain", b.Name, band.Terrain)
			}
		}
		if _, ok := world.ParseVegetation(b.Vegetation); b.Vegetation != "" && !ok {
			add("biome %q: unknown vegetation %q", b.Name, b.Vegetation)
		}
		for name := range b.Resources {
			if r, ok := world.ParseResource(name); !ok || r == world.ResourceNone {
				add("biome %q: unknown resource %q", b.Name, name)
			}
		}
	}
	for _, tp := range t.Topologies {
		if tp.MountainsAbove < tp.HillsAbove {
			add("topology %q: mountains below hills", tp.Name)
		}
	}
	for _, tg := range []Target{t.Targets.Starting, t.Targets.Other} {
		for name := range tg.MinYields {
			if _, err := yield.Parse(name); err != nil {
				add("target: %v", err)
			}
		}
	}
	if m := t.Targets.Starting.MaxScore; m > 0 && m < t.Targets.Starting.MinScore {
		add("starting target band is empty")
	}
	if m := t.Targets.Other.MaxScore; m > 0 && m < t.Targets.Other.MinScore {
		add("other target band is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Cells returns the grid's cell count.
func (t *Template) Cells() int {
	return t.Grid.Width * t.Grid.Height
}
