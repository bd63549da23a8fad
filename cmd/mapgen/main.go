// Command mapgen generates hex terrain worlds from a template and keeps a
// record of every run.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/terragen/internal/homeland"
	"github.com/talgya/terragen/internal/mapgen"
	"github.com/talgya/terragen/internal/persistence"
	"github.com/talgya/terragen/internal/template"
	"github.com/talgya/terragen/internal/world"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		slog.Error("mapgen failed", "error", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "mapgen",
		Short:         "Procedural hex terrain generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(generateCmd(), runsCmd())
	return root
}

func generateCmd() *cobra.Command {
	var (
		tplPath  string
		seed     int64
		small    bool
		dbPath   string
		snapPath string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a world and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var tpl *template.Template
			switch {
			case small && tplPath != "":
				return errors.New("--small and --template are mutually exclusive")
			case small:
				tpl = template.Small()
			default:
				if tplPath == "" {
					tplPath = os.Getenv("TERRAGEN_TEMPLATE")
				}
				var err error
				if tpl, err = template.Load(tplPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("seed") {
				tpl.Seed = seed
			}

			slog.Info("generating world", "template", tpl.Name, "grid", fmt.Sprintf("%dx%d", tpl.Grid.Width, tpl.Grid.Height))
			res, err := mapgen.New(tpl).Run()
			if err != nil {
				return err
			}
			summarize(res)

			if dbPath == "" && snapPath == "" {
				return nil
			}
			rec := persistence.NewRunRecord(res)
			if dbPath != "" {
				db, err := openDB(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.SaveRun(rec); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}
			if snapPath != "" {
				if err := persistence.WriteSnapshot(snapPath, persistence.NewSnapshot(rec, tpl, res.Warnings)); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				if fi, err := os.Stat(snapPath); err == nil {
					slog.Info("snapshot written", "path", snapPath, "size", humanize.Bytes(uint64(fi.Size())))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tplPath, "template", "t", "", "template YAML file (default $TERRAGEN_TEMPLATE or built-in)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override the template seed (0 = random)")
	cmd.Flags().BoolVar(&small, "small", false, "use the small built-in template")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to record the run in")
	cmd.Flags().StringVar(&snapPath, "snapshot", "", "write a zstd snapshot to this path")
	return cmd
}

func runsCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.Runs()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s  seed=%d  %s  %dx%d  %s regions  %s mutations  %s\n",
					r.ID, r.Seed, r.Template, r.Width, r.Height,
					humanize.Comma(int64(r.Regions)),
					humanize.Comma(int64(r.Mutations)),
					humanize.Time(r.Created()),
				)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs recorded")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "data/terragen.db", "SQLite file holding runs")
	return cmd
}

func openDB(path string) (*persistence.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return persistence.Open(path)
}

func summarize(res *mapgen.Result) {
	counts := res.Grid.TerrainCounts()
	terrains := make([]world.Terrain, 0, len(counts))
	for t := range counts {
		terrains = append(terrains, t)
	}
	sort.Slice(terrains, func(i, j int) bool { return terrains[i] < terrains[j] })
	for _, t := range terrains {
		slog.Info("terrain", "type", world.TerrainName(t), "count", humanize.Comma(int64(counts[t])))
	}

	for _, hl := range res.Homelands {
		for _, reg := range hl.Regions() {
			d := res.RegionData[reg.ID]
			slog.Info("region",
				"id", reg.ID,
				"civ", hl.Civ,
				"kind", homeland.KindName(reg.Kind),
				"biome", d.Biome,
				"topology", d.Topology,
				"land", humanize.Comma(int64(len(reg.LandCells))),
				"water", humanize.Comma(int64(len(reg.WaterCells))),
			)
		}
	}
	for _, w := range res.Warnings {
		slog.Warn("generation warning", "detail", w)
	}
	slog.Info("summary",
		"run", res.RunID,
		"seed", res.Seed,
		"sections", res.Partition.Len(),
		"oceans", len(res.Oceans),
		"mutations", humanize.Comma(int64(res.Mutations)),
		"draws", humanize.Comma(int64(res.Draws)),
		"strategies", strings.Join(res.Template.Strategies, ","),
	)
}
