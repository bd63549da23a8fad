package template

// Default returns a continent-sized template with four civilizations.
func Default() *Template {
	return &Template{
		Name: "continents",
		Grid: Grid{Width: 64, Height: 40},
		Partition: Partition{
			Points:     160,
			Iterations: 4,
		},
		Homelands: Homelands{
			Civilizations:        4,
			CellsPerHomeland:     360,
			LandFraction:         0.6,
			Regions:              4,
			StartRadius:          3,
			MinSeedSeparation:    10,
			ContiguousPercentage: 0.8,
			ExpansionDistance:    6,
		},
		Oceans:     Oceans{Count: 3, CellsPerOcean: 400},
		Borders:    Borders{Soft: 3, Hard: 1},
		Separation: Separation{Enabled: true, MinFraction: 0.4, MaxFraction: 0.6},
		Growth: Growth{
			SeedProximity:   1.0,
			BorderAvoidance: 0.8,
			ClaimedNeighbor: 0.5,
		},
		Biomes:     defaultBiomes(),
		Topologies: defaultTopologies(),
		Strategies: []string{
			"improve_terrain",
			"place_resource",
			"add_hills",
			"add_forest",
			"remove_vegetation",
			"hills_to_mountains",
		},
		ScoreWeights: ScoreWeights{Food: 1, Production: 1, Gold: 0.5, Science: 0.5},
		Targets: Targets{
			Starting: Target{
				MinYields: map[string]float64{"food": 30, "production": 20},
				MinScore:  70,
				MaxScore:  110,
			},
			Other: Target{
				MinYields: map[string]float64{"food": 10},
				MinScore:  30,
				MaxScore:  140,
			},
		},
	}
}

// Small returns a tiny two-civilization template for tests and quick runs.
func Small() *Template {
	t := Default()
	t.Name = "small"
	t.Seed = 42
	t.Grid = Grid{Width: 24, Height: 16}
	t.Partition = Partition{Points: 40, Iterations: 3}
	t.Homelands.Civilizations = 2
	t.Homelands.CellsPerHomeland = 110
	t.Homelands.Regions = 3
	t.Homelands.StartRadius = 2
	t.Homelands.MinSeedSeparation = 5
	t.Homelands.ExpansionDistance = 4
	t.Oceans = Oceans{Count: 2, CellsPerOcean: 120}
	t.Borders = Borders{Soft: 2, Hard: 1}
	t.Separation = Separation{}
	t.Targets.Starting = Target{
		MinYields: map[string]float64{"food": 8},
		MinScore:  20,
		MaxScore:  60,
	}
	t.Targets.Other = Target{MinScore: 5, MaxScore: 80}
	return t
}

func defaultBiomes() []Biome {
	return []Biome{
		{
			Name:   "temperate",
			Weight: 3,
			Bands: []Band{
				{Terrain: "plains", Below: 0.45},
				{Terrain: "grassland", Below: 1.01},
			},
			Vegetation:      "forest",
			VegetationAbove: 0.7,
			Resources:       map[string]float64{"wheat": 2, "cattle": 2, "horses": 1, "iron": 1, "stone": 1, "fish": 1},
		},
		{
			Name:   "arid",
			Weight: 1,
			Bands: []Band{
				{Terrain: "desert", Below: 0.5},
				{Terrain: "plains", Below: 1.01},
			},
			Vegetation:      "none",
			VegetationAbove: 1,
			Resources:       map[string]float64{"gold": 2, "stone": 2, "iron": 1, "pearls": 1},
		},
		{
			Name:   "tropical",
			Weight: 1,
			Bands: []Band{
				{Terrain: "plains", Below: 0.3},
				{Terrain: "grassland", Below: 1.01},
			},
			Vegetation:      "jungle",
			VegetationAbove: 0.55,
			Resources:       map[string]float64{"spices": 3, "wheat": 1, "fish": 2, "pearls": 1},
		},
		{
			Name:   "boreal",
			Weight: 1,
			Bands: []Band{
				{Terrain: "snow", Below: 0.2},
				{Terrain: "tundra", Below: 1.01},
			},
			Vegetation:      "forest",
			VegetationAbove: 0.6,
			Resources:       map[string]float64{"horses": 1, "iron": 2, "stone": 1, "fish": 1},
		},
	}
}

func defaultTopologies() []Topology {
	return []Topology{
		{Name: "lowland", Weight: 2, HillsAbove: 0.75, MountainsAbove: 0.92},
		{Name: "rolling", Weight: 2, HillsAbove: 0.6, MountainsAbove: 0.85},
		{Name: "highland", Weight: 1, HillsAbove: 0.45, MountainsAbove: 0.7},
	}
}
