package world

import (
	"errors"
	"testing"
)

func TestMutatorRules(t *testing.T) {
	m := NewMap(4, 4)
	mu := NewMutator(m)
	h := m.Cells[5]

	if err := mu.SetShape(h, ShapeHills); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("hills on ocean: err = %v, want ErrIllegalMutation", err)
	}
	if err := mu.SetTerrain(h, TerrainGrassland); err != nil {
		t.Fatalf("ocean -> grassland: %v", err)
	}
	if err := mu.SetVegetation(h, VegetationJungle); err != nil {
		t.Fatalf("jungle on grassland: %v", err)
	}
	if err := mu.SetTerrain(h, TerrainTundra); err == nil {
		t.Error("tundra jungle should be illegal")
	}
	if err := mu.SetShape(h, ShapeMountains); err == nil {
		t.Error("mountains with vegetation should be illegal")
	}
	if err := mu.SetVegetation(h, VegetationNone); err != nil {
		t.Fatal(err)
	}
	if err := mu.SetResource(h, ResourceFish); err == nil {
		t.Error("fish on land should be illegal")
	}
	if err := mu.SetResource(h, ResourceCattle); err != nil {
		t.Fatalf("cattle on grassland: %v", err)
	}
	if err := mu.SetTerrain(h, TerrainCoast); err != nil {
		t.Fatalf("bare grassland -> coast: %v", err)
	}
	if h.Resource != ResourceNone {
		t.Errorf("cattle survived on coast")
	}
	if mu.Changes() != 5 {
		t.Errorf("changes = %d, want 5", mu.Changes())
	}
}

func TestLandToWaterNeedsBareFlatCell(t *testing.T) {
	m := NewMap(3, 3)
	mu := NewMutator(m)
	h := m.Cells[4]
	_ = mu.SetTerrain(h, TerrainPlains)
	_ = mu.SetShape(h, ShapeHills)
	if mu.CanSetTerrain(h, TerrainOcean) {
		t.Error("hills cannot sink")
	}
	_ = mu.SetShape(h, ShapeFlat)
	if !mu.CanSetTerrain(h, TerrainOcean) {
		t.Error("flat bare plains can sink")
	}
}

func TestReplaceChecksFinalState(t *testing.T) {
	m := NewMap(3, 3)
	mu := NewMutator(m)
	h := m.Cells[4]
	_ = mu.SetTerrain(h, TerrainPlains)
	_ = mu.SetVegetation(h, VegetationForest)
	before := mu.Changes()

	next := *h
	next.Vegetation = VegetationNone
	next.Shape = ShapeMountains
	if err := mu.Replace(h, next); err != nil {
		t.Fatalf("forest plains -> bare mountains: %v", err)
	}
	if mu.Changes() != before+1 {
		t.Errorf("replace counted %d changes", mu.Changes()-before)
	}

	bad := *h
	bad.Resource = ResourceWheat
	if err := mu.Replace(h, bad); !errors.Is(err, ErrIllegalMutation) {
		t.Errorf("wheat on mountains: err = %v", err)
	}
	if h.Resource != ResourceNone {
		t.Error("failed replace modified the cell")
	}
}
