// Package world provides the hex grid, cell terrain state, and spatial queries.
// Uses axial coordinates (q, r) for hex math and odd-row offset coordinates
// (x, z) for the rectangular map layout.
package world

import (
	"math"
	"strings"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Offset converts the axial coordinate to odd-row offset coordinates.
func (h HexCoord) Offset() (x, z int) {
	z = h.R
	x = h.Q + (h.R-(h.R&1))/2
	return x, z
}

// OffsetToAxial converts odd-row offset coordinates to axial.
func OffsetToAxial(x, z int) HexCoord {
	return HexCoord{Q: x - (z-(z&1))/2, R: z}
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// Vec2 is a world-space position on the ground plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Dist returns the Euclidean distance between two positions.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// Dist2 returns the squared Euclidean distance.
func (v Vec2) Dist2(o Vec2) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

// Position converts hex coords to continuous space.
// Hex axial → cartesian: x = q + r*0.5, z = r * sqrt(3)/2
func (h HexCoord) Position() Vec2 {
	return Vec2{
		X: float64(h.Q) + float64(h.R)*0.5,
		Z: float64(h.R) * math.Sqrt(3.0) / 2.0,
	}
}

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainOcean     Terrain = iota // Deep water
	TerrainCoast                    // Shallow water next to land
	TerrainGrassland                // Best food
	TerrainPlains                   // Balanced food and production
	TerrainDesert                   // Barren unless improved
	TerrainTundra                   // Cold, poor yields
	TerrainSnow                     // Nothing grows
)

// IsWater reports whether the terrain is a water terrain.
func (t Terrain) IsWater() bool {
	return t == TerrainOcean || t == TerrainCoast
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainCoast:
		return "Coast"
	case TerrainGrassland:
		return "Grassland"
	case TerrainPlains:
		return "Plains"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainSnow:
		return "Snow"
	default:
		return "Unknown"
	}
}

// ParseTerrain maps a lowercase name back to a terrain type.
func ParseTerrain(name string) (Terrain, bool) {
	for t := TerrainOcean; t <= TerrainSnow; t++ {
		if strings.ToLower(TerrainName(t)) == name {
			return t, true
		}
	}
	return 0, false
}

// Shape is the landform of a cell.
type Shape uint8

const (
	ShapeFlat Shape = iota
	ShapeHills
	ShapeMountains
)

// ShapeName returns a human-readable name for a shape.
func ShapeName(s Shape) string {
	switch s {
	case ShapeFlat:
		return "Flat"
	case ShapeHills:
		return "Hills"
	case ShapeMountains:
		return "Mountains"
	default:
		return "Unknown"
	}
}

// Vegetation is the feature growing on a cell.
type Vegetation uint8

const (
	VegetationNone Vegetation = iota
	VegetationForest
	VegetationJungle
	VegetationMarsh
)

// VegetationName returns a human-readable name for a vegetation type.
func VegetationName(v Vegetation) string {
	switch v {
	case VegetationNone:
		return "None"
	case VegetationForest:
		return "Forest"
	case VegetationJungle:
		return "Jungle"
	case VegetationMarsh:
		return "Marsh"
	default:
		return "Unknown"
	}
}

// ParseVegetation maps a lowercase name back to a vegetation type.
func ParseVegetation(name string) (Vegetation, bool) {
	for v := VegetationNone; v <= VegetationMarsh; v++ {
		if strings.ToLower(VegetationName(v)) == name {
			return v, true
		}
	}
	return VegetationNone, false
}

// Resource enumerates map resources that can sit on a cell.
type Resource uint8

const (
	ResourceNone   Resource = iota
	ResourceWheat           // Grassland/plains food
	ResourceCattle          // Grassland food
	ResourceStone           // Production on any dry land
	ResourceIron            // Production, hills friendly
	ResourceGold            // Gold, desert and plains
	ResourceSpices          // Gold, jungle lands
	ResourceFish            // Water food
	ResourcePearls          // Water gold
	ResourceHorses          // Plains/tundra production
	numResources
)

var resourceNames = [numResources]string{
	"none", "wheat", "cattle", "stone", "iron", "gold", "spices", "fish", "pearls", "horses",
}

// ResourceName returns the lowercase name of a resource.
func ResourceName(r Resource) string {
	if r >= numResources {
		return "unknown"
	}
	return resourceNames[r]
}

// ParseResource maps a name back to a resource.
func ParseResource(name string) (Resource, bool) {
	for i, n := range resourceNames {
		if n == name {
			return Resource(i), true
		}
	}
	return ResourceNone, false
}

// Resources returns every placeable resource in declaration order.
func Resources() []Resource {
	out := make([]Resource, 0, numResources-1)
	for r := ResourceWheat; r < numResources; r++ {
		out = append(out, r)
	}
	return out
}

// Hex represents a single tile on the world map.
type Hex struct {
	Index int      `json:"index"` // Stable position in Map.Cells
	Coord HexCoord `json:"coord"`

	Terrain    Terrain    `json:"terrain"`
	Shape      Shape      `json:"shape"`
	Vegetation Vegetation `json:"vegetation"`
	Resource   Resource   `json:"resource"`

	// Noise layers (set during world generation), 0.0 to 1.0.
	Elevation float64 `json:"elevation"`
	Moisture  float64 `json:"moisture"`
}

// IsWater reports whether the cell currently holds water terrain.
func (h *Hex) IsWater() bool {
	return h.Terrain.IsWater()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
