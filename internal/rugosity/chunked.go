package rugosity

import (
	"runtime"
	"sync"

	"github.com/topoforge/rugosity/internal/dem"
	"github.com/topoforge/rugosity/internal/monitoring"
)

// DefaultTileSize is the tile edge used when ChunkedConfig leaves the
// tile shape unset.
const DefaultTileSize = 512

// ChunkedConfig controls the chunked strategy's partitioning. Tile shape
// and worker count only affect speed and peak memory, never the numeric
// result.
type ChunkedConfig struct {
	// TileRows and TileCols set the core tile shape. Zero means
	// DefaultTileSize; negative values are a ConfigError.
	TileRows int
	TileCols int

	// Workers sets the pool size. Zero means runtime.NumCPU().
	Workers int
}

// ChunkedProcessor partitions the grid into tiles, pads each tile with a
// halo of depth windowSize/2, and evaluates tiles on a worker pool.
//
// Halo samples are re-read from the shared read-only input grid: real
// neighboring samples where the tile has a grid-internal edge, mirrored
// samples where the tile touches the true grid boundary. Every window
// evaluated inside a tile core therefore sees exactly the samples the
// sequential processor would, and each output cell is written by exactly
// one tile, so tiles need no coordination at all.
type ChunkedProcessor struct {
	eval       WindowEvaluator
	windowSize int
	cfg        ChunkedConfig
	progress   ProgressFunc
}

// NewChunkedProcessor builds a chunked processor, applying defaults for
// unset config fields. progress may be nil.
func NewChunkedProcessor(eval WindowEvaluator, windowSize int, cfg ChunkedConfig, progress ProgressFunc) (*ChunkedProcessor, error) {
	if cfg.TileRows < 0 || cfg.TileCols < 0 {
		return nil, configErrorf("tile shape %dx%d must be positive", cfg.TileRows, cfg.TileCols)
	}
	if cfg.TileRows == 0 {
		cfg.TileRows = DefaultTileSize
	}
	if cfg.TileCols == 0 {
		cfg.TileCols = DefaultTileSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &ChunkedProcessor{eval: eval, windowSize: windowSize, cfg: cfg, progress: progress}, nil
}

// tile is one core region of the partition. Tiles at the bottom and
// right grid edges may be smaller than the configured shape.
type tile struct {
	row0, col0 int
	rows, cols int
}

// Process evaluates every cell of g and returns the raw output grid,
// numerically identical to SequentialProcessor.Process for any tile
// shape. Returns a ConfigError, before any traversal, if g is smaller
// than the window in either dimension.
func (p *ChunkedProcessor) Process(g *dem.Grid) (*dem.Grid, error) {
	if err := checkGridFits(g, p.windowSize); err != nil {
		return nil, err
	}

	tiles := p.partition(g)
	out := dem.New(g.Rows, g.Cols)

	workers := p.cfg.Workers
	if workers > len(tiles) {
		workers = len(tiles)
	}
	monitoring.Logf("chunked: %d tiles of %dx%d (halo %d) on %d workers",
		len(tiles), p.cfg.TileRows, p.cfg.TileCols, p.windowSize/2, workers)

	jobs := make(chan tile)
	var wg sync.WaitGroup
	var mu sync.Mutex // serializes progress callbacks
	done := 0

	depth := p.windowSize / 2
	maxPadded := (p.cfg.TileRows + 2*depth) * (p.cfg.TileCols + 2*depth)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			padded := make([]float64, maxPadded)
			window := make([]float64, p.windowSize*p.windowSize)
			for t := range jobs {
				p.processTile(g, out, t, padded, window)
				if p.progress != nil {
					mu.Lock()
					done++
					p.progress(done, len(tiles))
					mu.Unlock()
				}
			}
		}()
	}

	for _, t := range tiles {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	return out, nil
}

// partition splits the grid into row-major core tiles of the configured
// shape, clipping at the bottom and right edges.
func (p *ChunkedProcessor) partition(g *dem.Grid) []tile {
	var tiles []tile
	for r0 := 0; r0 < g.Rows; r0 += p.cfg.TileRows {
		rows := min(p.cfg.TileRows, g.Rows-r0)
		for c0 := 0; c0 < g.Cols; c0 += p.cfg.TileCols {
			tiles = append(tiles, tile{row0: r0, col0: c0, rows: rows, cols: min(p.cfg.TileCols, g.Cols-c0)})
		}
	}
	return tiles
}

// processTile fills the tile's padded buffer from the input grid, then
// evaluates a window at every core cell and writes the results into the
// tile's disjoint region of out. padded and window are per-worker
// scratch buffers.
func (p *ChunkedProcessor) processTile(g, out *dem.Grid, t tile, padded, window []float64) {
	depth := p.windowSize / 2
	pcols := t.cols + 2*depth
	prows := t.rows + 2*depth

	// AtReflect resolves halo coordinates to real interior samples where
	// the tile has grid-internal neighbors and to mirrored samples at
	// the true grid boundary.
	k := 0
	for pr := 0; pr < prows; pr++ {
		gr := t.row0 - depth + pr
		for pc := 0; pc < pcols; pc++ {
			padded[k] = g.AtReflect(gr, t.col0-depth+pc)
			k++
		}
	}

	for r := 0; r < t.rows; r++ {
		outBase := (t.row0+r)*out.Cols + t.col0
		for c := 0; c < t.cols; c++ {
			// The window centered on core cell (r, c) spans padded rows
			// r..r+2*depth and columns c..c+2*depth, fully inside the
			// buffer by construction.
			k := 0
			for wr := 0; wr < p.windowSize; wr++ {
				start := (r+wr)*pcols + c
				copy(window[k:k+p.windowSize], padded[start:start+p.windowSize])
				k += p.windowSize
			}
			out.Samples[outBase+c] = p.eval.Evaluate(window)
		}
	}
}
