package rugosity

import "github.com/topoforge/rugosity/internal/dem"

// SequentialProcessor applies a WindowEvaluator to every grid cell in
// strict row-major order on a single goroutine, mirroring samples at the
// grid boundary. It is the correctness baseline the chunked strategy is
// validated against.
type SequentialProcessor struct {
	eval       WindowEvaluator
	windowSize int
	progress   ProgressFunc
}

// NewSequentialProcessor builds a sequential processor. progress may be
// nil; windowSize is assumed already validated by NewFilter.
func NewSequentialProcessor(eval WindowEvaluator, windowSize int, progress ProgressFunc) *SequentialProcessor {
	return &SequentialProcessor{eval: eval, windowSize: windowSize, progress: progress}
}

// Process evaluates every cell of g and returns the raw output grid.
// Border invalidation is the caller's job (see Analyze). Returns a
// ConfigError, before touching any cell, if g is smaller than the window
// in either dimension.
func (p *SequentialProcessor) Process(g *dem.Grid) (*dem.Grid, error) {
	if err := checkGridFits(g, p.windowSize); err != nil {
		return nil, err
	}

	out := dem.New(g.Rows, g.Cols)
	buf := make([]float64, p.windowSize*p.windowSize)
	for r := 0; r < g.Rows; r++ {
		base := r * g.Cols
		for c := 0; c < g.Cols; c++ {
			out.Samples[base+c] = p.eval.Evaluate(g.Window(r, c, p.windowSize, buf))
		}
		if p.progress != nil {
			p.progress(r+1, g.Rows)
		}
	}
	return out, nil
}

func checkGridFits(g *dem.Grid, windowSize int) error {
	if g.Rows < windowSize || g.Cols < windowSize {
		return configErrorf("grid %dx%d is smaller than the %d-sample window", g.Rows, g.Cols, windowSize)
	}
	return nil
}
