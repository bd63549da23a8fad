package mapgen

import (
	"testing"

	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/template"
	"github.com/talgya/terragen/internal/world"
)

func runSmall(t *testing.T, seed int64) *Result {
	t.Helper()
	tpl := template.Small()
	tpl.Seed = seed
	res, err := New(tpl).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestRunAccountsForEverySection(t *testing.T) {
	res := runSmall(t, 42)

	seen := make(map[int]int)
	for _, reg := range res.Regions() {
		for _, s := range reg.Sections() {
			seen[s.ID]++
		}
	}
	for _, s := range res.Unassigned {
		seen[s.ID]++
	}
	for _, s := range res.Partition.Sections() {
		if seen[s.ID] != 1 {
			t.Errorf("section %d appears %d times", s.ID, seen[s.ID])
		}
	}
}

func TestRunRegionsAreConsistent(t *testing.T) {
	res := runSmall(t, 42)

	if len(res.Homelands) != 2 {
		t.Fatalf("homelands = %d, want 2", len(res.Homelands))
	}
	ids := make(map[int]bool)
	for _, reg := range res.Regions() {
		if ids[reg.ID] {
			t.Fatalf("region id %d reused", reg.ID)
		}
		ids[reg.ID] = true
		if len(reg.LandCells)+len(reg.WaterCells) != len(reg.Cells) {
			t.Errorf("region %d: land+water != cells", reg.ID)
		}
		if _, ok := res.RegionData[reg.ID]; !ok {
			t.Errorf("region %d has no region data", reg.ID)
		}
		if reg.Kind == homeland.KindOcean && len(reg.LandCells) != 0 {
			t.Errorf("ocean region %d has land", reg.ID)
		}
	}
	for _, hl := range res.Homelands {
		if hl.Start.Kind != homeland.KindStarting {
			t.Errorf("civ %d start kind = %v", hl.Civ, hl.Start.Kind)
		}
		found := false
		for _, h := range hl.Start.Cells {
			if h == hl.Seed {
				found = true
			}
		}
		if !found {
			t.Errorf("civ %d seed cell outside starting region", hl.Civ)
		}
		for _, reg := range hl.Regions() {
			if len(reg.LandSections) == 0 {
				t.Errorf("civ %d region %d has no land sections", hl.Civ, reg.ID)
			}
		}
	}
	if len(res.Reports) == 0 {
		t.Error("no balance reports")
	}
}

func TestRunLeavesLegalCells(t *testing.T) {
	res := runSmall(t, 42)
	land := 0
	for _, h := range res.Grid.Cells {
		if !world.Legal(h) {
			t.Fatalf("cell %d illegal: %+v", h.Index, *h)
		}
		if !h.IsWater() {
			land++
		}
	}
	if land == 0 {
		t.Fatal("no land generated")
	}

	for _, h := range res.Grid.Cells {
		if h.Terrain != world.TerrainOcean {
			continue
		}
		for _, n := range res.Grid.Neighbors(h) {
			if !n.IsWater() {
				t.Fatalf("ocean cell %d touches land without a coast", h.Index)
			}
		}
	}
}

func TestRunHardBorderStaysWater(t *testing.T) {
	res := runSmall(t, 42)
	hard := res.Template.Borders.Hard
	for _, s := range res.Partition.Sections() {
		if !res.Grid.IsSoftBorder(s.CentroidCell, hard) {
			continue
		}
		for _, h := range s.Cells {
			if !h.IsWater() {
				t.Fatalf("hard border section %d has land at cell %d", s.ID, h.Index)
			}
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a := runSmall(t, 7)
	b := runSmall(t, 7)

	if a.Draws != b.Draws {
		t.Fatalf("draws %d vs %d", a.Draws, b.Draws)
	}
	if a.Mutations != b.Mutations {
		t.Fatalf("mutations %d vs %d", a.Mutations, b.Mutations)
	}
	for i := range a.Grid.Cells {
		if *a.Grid.Cells[i] != *b.Grid.Cells[i] {
			t.Fatalf("cell %d differs", i)
		}
	}
	ra, rb := a.Regions(), b.Regions()
	if len(ra) != len(rb) {
		t.Fatalf("regions %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].ID != rb[i].ID || len(ra[i].Cells) != len(rb[i].Cells) {
			t.Fatalf("region %d differs", i)
		}
		if a.RegionData[ra[i].ID].Biome != b.RegionData[rb[i].ID].Biome {
			t.Fatalf("region %d biome differs", i)
		}
	}
	if a.RunID == b.RunID {
		t.Error("run ids should be unique")
	}
}

func TestRunSeparationLine(t *testing.T) {
	tpl := template.Small()
	tpl.Separation = template.Separation{Enabled: true, MinFraction: 0.5, MaxFraction: 0.5}
	res, err := New(tpl).Run()
	if err != nil {
		t.Fatal(err)
	}
	x := tpl.Grid.Width / 2
	for z := 0; z < tpl.Grid.Height; z++ {
		h := res.Grid.CellAtOffset(x, z)
		if !h.IsWater() {
			t.Fatalf("land on the separation line at z=%d", z)
		}
	}
}

func TestRunRejectsInvalidTemplate(t *testing.T) {
	tpl := template.Small()
	tpl.Homelands.Civilizations = 0
	if _, err := New(tpl).Run(); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunUnknownStrategy(t *testing.T) {
	tpl := template.Small()
	tpl.Strategies = append(tpl.Strategies, "flood")
	if _, err := New(tpl).Run(); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestRunPlacesStartsInStartingRegions(t *testing.T) {
	res := runSmall(t, 42)
	if len(res.Starts) != len(res.Homelands) {
		t.Fatalf("starts = %d, want %d", len(res.Starts), len(res.Homelands))
	}
	names := make(map[string]bool)
	for i, sp := range res.Starts {
		hl := res.Homelands[i]
		if sp.Civ != hl.Civ {
			t.Errorf("start %d civ = %d, want %d", i, sp.Civ, hl.Civ)
		}
		inStart := false
		for _, h := range hl.Start.LandCells {
			if h == sp.Cell {
				inStart = true
			}
		}
		if !inStart {
			t.Errorf("civ %d start cell %d outside its starting land", sp.Civ, sp.Cell.Index)
		}
		if sp.Cell.Shape == world.ShapeMountains {
			t.Errorf("civ %d starts on a mountain", sp.Civ)
		}
		if sp.Name == "" || names[sp.Name] {
			t.Errorf("civ %d name %q empty or reused", sp.Civ, sp.Name)
		}
		names[sp.Name] = true
	}
}
