// Package persistence stores finished generation runs in SQLite and
// exports them as compressed snapshots.
package persistence

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNoRun is returned when a run ID is not in the store.
var ErrNoRun = errors.New("run not found")

// DB wraps a SQLite connection holding generation runs.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		template TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		sections INTEGER NOT NULL,
		regions INTEGER NOT NULL,
		mutations INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		created_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS regions (
		run_id TEXT NOT NULL REFERENCES runs(id),
		id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		civ INTEGER NOT NULL,
		biome TEXT NOT NULL,
		topology TEXT NOT NULL,
		land_cells INTEGER NOT NULL,
		water_cells INTEGER NOT NULL,
		score REAL NOT NULL,
		met INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS cells (
		run_id TEXT NOT NULL REFERENCES runs(id),
		idx INTEGER NOT NULL,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		terrain TEXT NOT NULL,
		shape TEXT NOT NULL,
		vegetation TEXT NOT NULL,
		resource TEXT NOT NULL,
		section INTEGER NOT NULL,
		region INTEGER NOT NULL,
		PRIMARY KEY (run_id, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_cells_region ON cells(run_id, region);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes a run with its regions and cells in one transaction.
func (db *DB) SaveRun(rec *RunRecord) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, seed, template, width, height, sections, regions, mutations, warnings, created_unix)
		VALUES (:id, :seed, :template, :width, :height, :sections, :regions, :mutations, :warnings, :created_unix)`,
		rec)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}

	for _, r := range rec.RegionRows {
		_, err := tx.Exec(`INSERT INTO regions
			(run_id, id, kind, civ, biome, topology, land_cells, water_cells, score, met)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, r.ID, r.Kind, r.Civ, r.Biome, r.Topology, r.LandCells, r.WaterCells, r.Score, r.Met,
		)
		if err != nil {
			return fmt.Errorf("insert region %d: %w", r.ID, err)
		}
	}

	stmt, err := tx.Preparex(`INSERT INTO cells
		(run_id, idx, q, r, terrain, shape, vegetation, resource, section, region)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range rec.CellRows {
		_, err := stmt.Exec(rec.ID, c.Index, c.Q, c.R, c.Terrain, c.Shape, c.Vegetation, c.Resource, c.Section, c.Region)
		if err != nil {
			return fmt.Errorf("insert cell %d: %w", c.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run saved", "run", rec.ID, "regions", len(rec.RegionRows), "cells", len(rec.CellRows))
	return nil
}

// Runs lists stored runs, newest first.
func (db *DB) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs, `SELECT id, seed, template, width, height, sections,
		regions, mutations, warnings, created_unix FROM runs ORDER BY created_unix DESC, id`)
	return runs, err
}

// Run loads one run with its regions, without cells.
func (db *DB) Run(id string) (*RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs, `SELECT id, seed, template, width, height, sections,
		regions, mutations, warnings, created_unix FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRun, id)
	}
	rec := &runs[0]
	err = db.conn.Select(&rec.RegionRows, `SELECT id, kind, civ, biome, topology,
		land_cells, water_cells, score, met FROM regions WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RunCells returns every cell of a run in index order.
func (db *DB) RunCells(runID string) ([]CellRecord, error) {
	var cells []CellRecord
	err := db.conn.Select(&cells, `SELECT idx, q, r, terrain, shape, vegetation, resource,
		section, region FROM cells WHERE run_id = ? ORDER BY idx`, runID)
	return cells, err
}
