package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	for name, tpl := range map[string]*Template{"default": Default(), "small": Small()} {
		t.Run(name, func(t *testing.T) {
			if err := tpl.Validate(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestDefaultsDoNotShareMaps(t *testing.T) {
	a, b := Default(), Default()
	a.Targets.Starting.MinYields["food"] = 999
	if b.Targets.Starting.MinYields["food"] == 999 {
		t.Fatal("Default() templates share target maps")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.yaml")
	doc := `
name: islands
seed: 9
grid:
  width: 30
  height: 20
homelands:
  civilizations: 3
  land_fraction: 0.4
topologies:
  - name: flat
    weight: 1
    hills_above: 0.9
    mountains_above: 0.99
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	tpl, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Name != "islands" || tpl.Seed != 9 {
		t.Errorf("name/seed = %q/%d", tpl.Name, tpl.Seed)
	}
	if tpl.Cells() != 600 {
		t.Errorf("cells = %d, want 600", tpl.Cells())
	}
	if tpl.Homelands.Civilizations != 3 || tpl.Homelands.LandFraction != 0.4 {
		t.Errorf("homelands = %+v", tpl.Homelands)
	}
	// Untouched fields keep their defaults.
	if tpl.Homelands.Regions != Default().Homelands.Regions {
		t.Errorf("regions = %d, want default", tpl.Homelands.Regions)
	}
	if len(tpl.Topologies) != 1 || tpl.Topologies[0].Name != "flat" {
		t.Errorf("topologies = %+v", tpl.Topologies)
	}
	if len(tpl.Biomes) != len(Default().Biomes) {
		t.Errorf("biomes replaced unexpectedly")
	}
}

func TestLoadEmptyPathGivesDefault(t *testing.T) {
	tpl, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Name != Default().Name {
		t.Errorf("name = %q", tpl.Name)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "colour: blue\n",
		"bad terrain":     "biomes:\n  - name: x\n    bands: [{terrain: lava, below: 1}]\n",
		"negative radius": "homelands:\n  start_radius: -1\n",
		"bad yield":       "targets:\n  starting:\n    min_yields: {faith: 3}\n",
		"wrong type":      "grid:\n  width: wide\n",
		"empty band":      "targets:\n  other:\n    min_score: 50\n    max_score: 10\n",
		"inverted relief": "topologies:\n  - {name: x, hills_above: 0.8, mountains_above: 0.5}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Parse([]byte(doc), Default())
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidateRejectsUnknownNames(t *testing.T) {
	cases := map[string]func(*Template){
		"misspelled terrain": func(tpl *Template) { tpl.Biomes[0].Bands[0].Terrain = "grasland" },
		"water band":         func(tpl *Template) { tpl.Biomes[0].Bands[0].Terrain = "ocean" },
		"vegetation":         func(tpl *Template) { tpl.Biomes[0].Vegetation = "trees" },
		"resource":           func(tpl *Template) { tpl.Biomes[0].Resources["diamonds"] = 1 },
		"none resource":      func(tpl *Template) { tpl.Biomes[0].Resources["none"] = 1 },
		"yield":              func(tpl *Template) { tpl.Targets.Other.MinYields = map[string]float64{"faith": 1} },
	}
	for name, breakIt := range cases {
		t.Run(name, func(t *testing.T) {
			tpl := Default()
			breakIt(tpl)
			if err := tpl.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}

	tpl := Default()
	tpl.Biomes[0].Vegetation = ""
	if err := tpl.Validate(); err != nil {
		t.Errorf("empty vegetation: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
