package persistence

import (
	"time"

	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/mapgen"
	"github.com/talgya/terragen/internal/world"
)

// RunRecord is the stored summary of one generation run.
type RunRecord struct {
	ID          string `db:"id" json:"id"`
	Seed        int64  `db:"seed" json:"seed"`
	Template    string `db:"template" json:"template"`
	Width       int    `db:"width" json:"width"`
	Height      int    `db:"height" json:"height"`
	Sections    int    `db:"sections" json:"sections"`
	Regions     int    `db:"regions" json:"regions"`
	Mutations   int    `db:"mutations" json:"mutations"`
	Warnings    int    `db:"warnings" json:"warnings"`
	CreatedUnix int64  `db:"created_unix" json:"created_unix"`

	RegionRows []RegionRecord `db:"-" json:"region_rows,omitempty"`
	CellRows   []CellRecord   `db:"-" json:"cell_rows,omitempty"`
	Starts     []StartRecord  `db:"-" json:"starts,omitempty"`
}

// StartRecord is a civilization's start position.
type StartRecord struct {
	Civ   int     `json:"civ"`
	Cell  int     `json:"cell"`
	Score float64 `json:"score"`
	Name  string  `json:"name"`
}

// Created returns the creation time.
func (r *RunRecord) Created() time.Time {
	return time.Unix(r.CreatedUnix, 0)
}

// RegionRecord is one region of a run.
type RegionRecord struct {
	ID         int     `db:"id" json:"id"`
	Kind       string  `db:"kind" json:"kind"`
	Civ        int     `db:"civ" json:"civ"`
	Biome      string  `db:"biome" json:"biome"`
	Topology   string  `db:"topology" json:"topology"`
	LandCells  int     `db:"land_cells" json:"land_cells"`
	WaterCells int     `db:"water_cells" json:"water_cells"`
	Score      float64 `db:"score" json:"score"`
	Met        bool    `db:"met" json:"met"`
}

// CellRecord is the final state of one cell. Region is -1 for cells
// outside every region.
type CellRecord struct {
	Index      int    `db:"idx" json:"idx"`
	Q          int    `db:"q" json:"q"`
	R          int    `db:"r" json:"r"`
	Terrain    string `db:"terrain" json:"terrain"`
	Shape      string `db:"shape" json:"shape"`
	Vegetation string `db:"vegetation" json:"vegetation"`
	Resource   string `db:"resource" json:"resource"`
	Section    int    `db:"section" json:"section"`
	Region     int    `db:"region" json:"region"`
}

// NewRunRecord flattens a generation result.
func NewRunRecord(res *mapgen.Result) *RunRecord {
	rec := &RunRecord{
		ID:          res.RunID.String(),
		Seed:        res.Seed,
		Template:    res.Template.Name,
		Width:       res.Grid.Width,
		Height:      res.Grid.Height,
		Sections:    res.Partition.Len(),
		Mutations:   res.Mutations,
		Warnings:    len(res.Warnings),
		CreatedUnix: time.Now().Unix(),
	}

	reports := make(map[int]int, len(res.Reports))
	for i, rep := range res.Reports {
		reports[rep.RegionID] = i
	}
	regionOf := make(map[int]int, res.Grid.CellCount())
	for _, reg := range res.Regions() {
		row := RegionRecord{
			ID:         reg.ID,
			Kind:       homeland.KindName(reg.Kind),
			Civ:        reg.Civ,
			LandCells:  len(reg.LandCells),
			WaterCells: len(reg.WaterCells),
		}
		if d := res.RegionData[reg.ID]; d != nil {
			row.Biome, row.Topology = d.Biome, d.Topology
		}
		if i, ok := reports[reg.ID]; ok {
			row.Score, row.Met = res.Reports[i].Score, res.Reports[i].Met
		}
		rec.RegionRows = append(rec.RegionRows, row)
		for _, h := range reg.Cells {
			regionOf[h.Index] = reg.ID
		}
	}
	rec.Regions = len(rec.RegionRows)
	for _, sp := range res.Starts {
		rec.Starts = append(rec.Starts, StartRecord{Civ: sp.Civ, Cell: sp.Cell.Index, Score: sp.Score, Name: sp.Name})
	}

	for _, h := range res.Grid.Cells {
		region, ok := regionOf[h.Index]
		if !ok {
			region = -1
		}
		section := -1
		if s := res.Partition.SectionOfCell(h); s != nil {
			section = s.ID
		}
		rec.CellRows = append(rec.CellRows, CellRecord{
			Index:      h.Index,
			Q:          h.Coord.Q,
			R:          h.Coord.R,
			Terrain:    world.TerrainName(h.Terrain),
			Shape:      world.ShapeName(h.Shape),
			Vegetation: world.VegetationName(h.Vegetation),
			Resource:   world.ResourceName(h.Resource),
			Section:    section,
			Region:     region,
		})
	}
	return rec
}
