package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/topoforge/rugosity/internal/config"
	"github.com/topoforge/rugosity/internal/monitoring"
	"github.com/topoforge/rugosity/internal/raster"
	"github.com/topoforge/rugosity/internal/report"
	"github.com/topoforge/rugosity/internal/rugosity"
	"github.com/topoforge/rugosity/internal/store"
	"github.com/topoforge/rugosity/internal/visualize"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		windowSize int
		chunked    bool
		tileRows   int
		tileCols   int
		workers    int
		units      string
		configPath string
		outputPath string
		plotPath   string
		reportPath string
		dbPath     string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <input.asc>",
		Short: "Compute the rugosity index of a DEM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if quiet {
				monitoring.SetLogger(nil)
			}

			g, meta, err := raster.ReadFile(input)
			if err != nil {
				return err
			}
			cellSize, err := raster.NormalizeUnits(g, meta.CellSize, units)
			if err != nil {
				return err
			}

			opts := rugosity.Options{
				WindowSize: windowSize,
				Chunked:    chunked,
				TileRows:   tileRows,
				TileCols:   tileCols,
				Workers:    workers,
			}
			if configPath != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg.Apply(&opts)
			}
			opts.Progress = progressLogger()

			monitoring.Logf("analyzing %s: %dx%d cells, %.2fm spacing, window %d",
				input, g.Rows, g.Cols, cellSize, opts.WindowSize)

			start := time.Now()
			res, err := rugosity.Analyze(g, cellSize, opts)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			s := res.Summary()
			monitoring.Logf("done in %s: rugosity min=%.4f mean=%.4f max=%.4f over %d cells",
				elapsed.Round(time.Millisecond), s.Min, s.Mean, s.Max, s.Valid)

			if outputPath != "" {
				// Georeferencing passes through untouched so the output
				// lines up with the input in GIS tools.
				if err := raster.WriteFile(outputPath, res.Rugosity, meta); err != nil {
					return err
				}
				monitoring.Logf("wrote rugosity raster to %s", outputPath)
			}
			if plotPath != "" {
				if err := visualize.SideBySide(res, filepath.Base(input), plotPath); err != nil {
					return err
				}
				monitoring.Logf("wrote figure to %s", plotPath)
			}
			if reportPath != "" {
				if err := report.WriteHTML(res, filepath.Base(input), reportPath); err != nil {
					return err
				}
				monitoring.Logf("wrote report to %s", reportPath)
			}
			if dbPath != "" {
				st, err := store.Open(dbPath)
				if err != nil {
					return err
				}
				defer st.Close()

				strategy := "sequential"
				if opts.Chunked {
					strategy = "chunked"
				}
				run := &store.Run{
					Input:          input,
					WindowSize:     opts.WindowSize,
					CellSizeMeters: cellSize,
					Rows:           g.Rows,
					Cols:           g.Cols,
					Strategy:       strategy,
					TileRows:       opts.TileRows,
					TileCols:       opts.TileCols,
					Duration:       elapsed,
					RugosityMin:    s.Min,
					RugosityMean:   s.Mean,
					RugosityMax:    s.Max,
				}
				if err := st.RecordRun(run); err != nil {
					return err
				}
				monitoring.Logf("recorded run %s", run.ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&windowSize, "window", "w", 3, "moving window size (odd, >= 3)")
	cmd.Flags().BoolVar(&chunked, "chunked", true, "process the grid as parallel overlapping tiles")
	cmd.Flags().IntVar(&tileRows, "tile-rows", rugosity.DefaultTileSize, "tile height for chunked processing")
	cmd.Flags().IntVar(&tileCols, "tile-cols", rugosity.DefaultTileSize, "tile width for chunked processing")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines for chunked processing (0 = all CPUs)")
	cmd.Flags().StringVar(&units, "units", "meters", "linear units of the input raster (meters or feet)")
	cmd.Flags().StringVar(&configPath, "config", "", "JSON file overriding analysis parameters")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the rugosity grid as an ESRI ASCII raster")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write a hillshade/rugosity PNG figure")
	cmd.Flags().StringVar(&reportPath, "report", "", "write an interactive HTML report")
	cmd.Flags().StringVar(&dbPath, "db", "", "record the run in a SQLite history database")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress logging")

	return cmd
}

// progressLogger logs at ten-percent checkpoints rather than per unit,
// keeping log volume flat no matter the grid size.
func progressLogger() rugosity.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		decile := done * 10 / total
		if decile > lastDecile {
			lastDecile = decile
			monitoring.Logf("progress: %d%% (%d/%d units)", decile*10, done, total)
		}
	}
}
