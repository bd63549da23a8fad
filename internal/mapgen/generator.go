// Package mapgen runs the full terrain pipeline: noise, partition,
// civilization and ocean growth, homeland assembly, painting and balancing.
package mapgen

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/terragen/internal/balance"
	"github.com/talgya/terragen/internal/diag"
	"github.com/talgya/terragen/internal/entropy"
	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/partition"
	"github.com/talgya/terragen/internal/subdivide"
	"github.com/talgya/terragen/internal/template"
	"github.com/talgya/terragen/internal/world"
)

// Result is everything one generation run produced.
type Result struct {
	RunID    uuid.UUID
	Seed     int64
	Template *template.Template

	Grid       *world.Map
	Partition  *partition.Partition
	Homelands  []*homeland.Homeland
	Oceans     []*homeland.Region
	Unassigned []*partition.Section // Left over after ocean growth; still ocean

	RegionData map[int]*balance.RegionData // By region ID
	Reports    []balance.Report
	Starts     []StartPosition
	Warnings   []string
	Mutations  int
	Draws      uint64
}

// Regions returns every homeland region followed by the ocean regions.
func (r *Result) Regions() []*homeland.Region {
	var out []*homeland.Region
	for _, hl := range r.Homelands {
		out = append(out, hl.Regions()...)
	}
	return append(out, r.Oceans...)
}

// Generator runs the pipeline for one template.
type Generator struct {
	tpl *template.Template
}

// New returns a generator for tpl.
func New(tpl *template.Template) *Generator {
	return &Generator{tpl: tpl}
}

// run carries the per-run state between pipeline steps.
type run struct {
	tpl     *template.Template
	stream  *entropy.Stream
	grid    *world.Map
	mutator *world.Mutator
	part    *partition.Partition
	sub     *subdivide.Subdivider
	res     *Result
}

// Run generates a fresh world. A failed run returns no result.
func (g *Generator) Run() (*Result, error) {
	if err := g.tpl.Validate(); err != nil {
		return nil, err
	}
	stream := entropy.NewStream(g.tpl.Seed)
	r := &run{
		tpl:    g.tpl,
		stream: stream,
		res: &Result{
			RunID:      uuid.New(),
			Seed:       stream.Seed(),
			Template:   g.tpl,
			RegionData: make(map[int]*balance.RegionData),
		},
	}

	r.grid = world.Generate(world.GenConfig{
		Width:  g.tpl.Grid.Width,
		Height: g.tpl.Grid.Height,
		Seed:   stream.Seed(),
	})
	r.mutator = world.NewMutator(r.grid)
	r.res.Grid = r.grid

	part, err := partition.Build(r.grid, stream, partition.BuildOptions{
		Points:     g.tpl.Partition.Points,
		Iterations: g.tpl.Partition.Iterations,
	})
	if err != nil {
		return nil, fmt.Errorf("build partition: %w", err)
	}
	r.part = part
	r.res.Partition = part
	r.sub = subdivide.New(part, stream)
	slog.Info("partition built", "sections", part.Len(), "cells", r.grid.CellCount())

	civPool, hard := r.splitHardBorder()
	civs, err := r.growCivilizations(civPool)
	if err != nil {
		return nil, err
	}
	lands, err := r.growLand(civs)
	if err != nil {
		return nil, err
	}

	oceanPool := subdivide.NewPool(append(civPool.Sections(), hard...))
	oceanChunks, err := r.growOceans(oceanPool)
	if err != nil {
		return nil, err
	}

	asm := homeland.NewAssembler(part)
	for i, l := range lands {
		hl, err := asm.Assemble(i, l.land, l.water, l.seed, homeland.Options{
			RegionCount: g.tpl.Homelands.Regions,
			StartRadius: g.tpl.Homelands.StartRadius,
		})
		if err != nil {
			return nil, fmt.Errorf("assemble homeland %d: %w", i, err)
		}
		r.res.Homelands = append(r.res.Homelands, hl)
		r.res.Warnings = append(r.res.Warnings, hl.Warnings...)
	}
	for _, c := range oceanChunks {
		r.res.Oceans = append(r.res.Oceans, homeland.NewRegion(asm.NextID(), homeland.KindOcean, -1, nil, c.Sections))
	}
	r.res.Unassigned = oceanPool.Sections()
	if n := len(r.res.Unassigned); n > 0 {
		r.warn("sections left outside every region", "sections", n, "cells", partition.CellCount(r.res.Unassigned))
	}

	if err := r.describeRegions(); err != nil {
		return nil, err
	}
	r.paintCoasts()
	r.balance()
	r.placeStarts()

	r.res.Mutations = r.mutator.Changes()
	r.res.Draws = stream.Draws()
	slog.Info("generation complete",
		"run", r.res.RunID,
		"seed", r.res.Seed,
		"homelands", len(r.res.Homelands),
		"oceans", len(r.res.Oceans),
		"mutations", r.res.Mutations,
		"warnings", len(r.res.Warnings),
	)
	return r.res, nil
}

// splitHardBorder pools every section whose centroid cell is clear of the
// hard border; the rest can only ever be ocean.
func (r *run) splitHardBorder() (*subdivide.Pool, []*partition.Section) {
	var inner, hard []*partition.Section
	for _, s := range r.part.Sections() {
		if r.grid.IsSoftBorder(s.CentroidCell, r.tpl.Borders.Hard) {
			hard = append(hard, s)
		} else {
			inner = append(inner, s)
		}
	}
	return subdivide.NewPool(inner), hard
}

func (r *run) growCivilizations(pool *subdivide.Pool) ([]*subdivide.Chunk, error) {
	h := r.tpl.Homelands
	opts := subdivide.Options{
		ChunkCount:           h.Civilizations,
		MaxCellsPerChunk:     h.CellsPerHomeland,
		MinSeedSeparation:    h.MinSeedSeparation,
		SoftBorder:           r.tpl.Borders.Soft,
		ExpansionDistance:    h.ExpansionDistance,
		ContiguousPercentage: h.ContiguousPercentage,
		Weight:               civWeight(r.grid, r.part, r.sub, r.tpl.Growth, r.tpl.Borders.Soft),
	}
	if sep := r.tpl.Separation; sep.Enabled {
		opts.Separation = &subdivide.Separation{MinFraction: sep.MinFraction, MaxFraction: sep.MaxFraction}
	}
	res, err := r.sub.Subdivide(pool, opts)
	if err != nil {
		return nil, fmt.Errorf("grow civilizations: %w", err)
	}
	r.res.Warnings = append(r.res.Warnings, res.Warnings...)
	for _, c := range res.Chunks {
		slog.Info("civilization grown", "civ", c.ID, "sections", len(c.Sections), "cells", c.CellCount(), "starved", c.Starved, "oversized", c.Oversized)
	}
	return res.Chunks, nil
}

// civLand is one civilization's chunk split into land and water.
type civLand struct {
	land  []*partition.Section
	water []*partition.Section
	seed  *world.Hex
}

// growLand grows a single land chunk inside each civilization chunk and
// raises its cells out of the sea. The rest of the chunk stays water.
func (r *run) growLand(civs []*subdivide.Chunk) ([]civLand, error) {
	h := r.tpl.Homelands
	out := make([]civLand, 0, len(civs))
	for _, c := range civs {
		pool := subdivide.NewPool(c.Sections)
		res, err := r.sub.Subdivide(pool, subdivide.Options{
			ChunkCount:           1,
			MaxCellsPerChunk:     max(1, int(h.LandFraction*float64(c.CellCount()))),
			ExpansionDistance:    h.ExpansionDistance,
			ContiguousPercentage: h.ContiguousPercentage,
			Weight:               landWeight(r.grid, r.tpl.Growth),
		})
		if err != nil {
			return nil, fmt.Errorf("grow land for civ %d: %w", c.ID, err)
		}
		land := res.Chunks[0]
		for _, hex := range land.Cells() {
			if err := r.mutator.SetTerrain(hex, world.TerrainGrassland); err != nil {
				return nil, fmt.Errorf("raise land for civ %d: %w", c.ID, err)
			}
		}
		out = append(out, civLand{
			land:  land.Sections,
			water: pool.Sections(),
			seed:  land.Seed.CentroidCell,
		})
	}
	return out, nil
}

func (r *run) growOceans(pool *subdivide.Pool) ([]*subdivide.Chunk, error) {
	o := r.tpl.Oceans
	if o.Count == 0 || pool.Len() == 0 {
		return nil, nil
	}
	count := o.Count
	if count > pool.Len() {
		r.warn("fewer ocean sections than oceans", "oceans", o.Count, "sections", pool.Len())
		count = pool.Len()
	}
	res, err := r.sub.Subdivide(pool, subdivide.Options{
		ChunkCount:           count,
		MaxCellsPerChunk:     o.CellsPerOcean,
		ContiguousPercentage: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("grow oceans: %w", err)
	}
	r.res.Warnings = append(r.res.Warnings, res.Warnings...)
	return res.Chunks, nil
}

func (r *run) warn(msg string, args ...any) {
	diag.Warn(&r.res.Warnings, msg, args...)
}
