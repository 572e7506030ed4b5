package rugosity

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/topoforge/rugosity/internal/dem"
)

// Options selects the execution strategy for one analysis run.
type Options struct {
	// WindowSize is the moving-window edge length; odd, >= 3.
	WindowSize int

	// Chunked selects the tiled parallel strategy. The choice affects
	// speed and memory only, never the numeric result.
	Chunked bool

	// TileRows, TileCols and Workers configure the chunked strategy and
	// are ignored by the sequential one. Zero means defaults.
	TileRows int
	TileCols int
	Workers  int

	// Progress, if non-nil, receives per-row (sequential) or per-tile
	// (chunked) checkpoints.
	Progress ProgressFunc
}

// Result is the immutable outcome of one analysis run. Rugosity has the
// same shape as Elevation; fringe cells are NaN.
type Result struct {
	Elevation        *dem.Grid
	Rugosity         *dem.Grid
	CellSizeMeters   float64
	WindowSizeMeters float64
}

// Analyze computes the rugosity index for every cell of g and returns an
// immutable result. cellSize is the grid spacing in meters; callers are
// responsible for unit normalization (see the raster package). The
// border fringe of the output is invalidated regardless of strategy.
//
// Configuration problems (bad window size, grid smaller than the window,
// bad tile shape) return a ConfigError before any cell is visited.
func Analyze(g *dem.Grid, cellSize float64, opts Options) (*Result, error) {
	filter, err := NewFilter(opts.WindowSize, cellSize)
	if err != nil {
		return nil, err
	}

	var raw *dem.Grid
	if opts.Chunked {
		proc, err := NewChunkedProcessor(filter, opts.WindowSize, ChunkedConfig{
			TileRows: opts.TileRows,
			TileCols: opts.TileCols,
			Workers:  opts.Workers,
		}, opts.Progress)
		if err != nil {
			return nil, err
		}
		raw, err = proc.Process(g)
		if err != nil {
			return nil, err
		}
	} else {
		raw, err = NewSequentialProcessor(filter, opts.WindowSize, opts.Progress).Process(g)
		if err != nil {
			return nil, err
		}
	}

	InvalidateFringe(raw, opts.WindowSize)

	return &Result{
		Elevation:        g,
		Rugosity:         raw,
		CellSizeMeters:   cellSize,
		WindowSizeMeters: cellSize * float64(opts.WindowSize),
	}, nil
}

// InvalidateFringe overwrites the border fringe of g with NaN. The
// fringe width is windowSize/2 + 1 on all four sides: windows there read
// mirrored samples, so their values are unreliable whichever strategy
// produced them.
func InvalidateFringe(g *dem.Grid, windowSize int) {
	fringe := windowSize/2 + 1
	nan := math.NaN()
	for r := 0; r < g.Rows; r++ {
		row := g.Samples[r*g.Cols : (r+1)*g.Cols]
		if r < fringe || r >= g.Rows-fringe {
			for c := range row {
				row[c] = nan
			}
			continue
		}
		for c := 0; c < fringe && c < g.Cols; c++ {
			row[c] = nan
		}
		for c := g.Cols - fringe; c < g.Cols; c++ {
			if c >= 0 {
				row[c] = nan
			}
		}
	}
}

// Summary holds NaN-aware descriptive statistics of a rugosity grid.
type Summary struct {
	Min   float64
	Max   float64
	Mean  float64
	Valid int // non-NaN cell count
}

// Summary computes statistics over the non-fringe cells. If every cell
// is NaN (a grid barely larger than the window), the statistics are NaN
// and Valid is zero.
func (res *Result) Summary() Summary {
	valid := ValidValues(res.Rugosity)
	if len(valid) == 0 {
		return Summary{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN()}
	}
	return Summary{
		Min:   floats.Min(valid),
		Max:   floats.Max(valid),
		Mean:  stat.Mean(valid, nil),
		Valid: len(valid),
	}
}

// ValidValues collects the non-NaN samples of g into a fresh slice.
func ValidValues(g *dem.Grid) []float64 {
	valid := make([]float64, 0, len(g.Samples))
	for _, v := range g.Samples {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	return valid
}
