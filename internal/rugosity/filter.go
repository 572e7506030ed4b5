package rugosity

// WindowEvaluator maps one flattened window of elevation samples to one
// output value. Both processors accept the interface so tests can inject
// a mock evaluator; production code always uses *Filter.
type WindowEvaluator interface {
	Evaluate(window []float64) float64
}

// Filter converts a window's triangulated surface area into a rugosity
// ratio against the window's planar area. Configuration is validated in
// NewFilter, once, so Evaluate carries no per-window checks.
type Filter struct {
	windowSize int
	cellSize   float64
	planarArea float64
}

// NewFilter builds a Filter for the given window size and cell size.
// windowSize must be an odd integer >= 3 and cellSize must be positive;
// violations return a ConfigError.
func NewFilter(windowSize int, cellSize float64) (*Filter, error) {
	if windowSize%2 == 0 || windowSize < 3 {
		return nil, configErrorf("window size must be an odd integer >= 3, got %d", windowSize)
	}
	if cellSize <= 0 {
		return nil, configErrorf("cell size must be positive, got %g", cellSize)
	}
	side := float64(windowSize-1) * cellSize
	return &Filter{
		windowSize: windowSize,
		cellSize:   cellSize,
		planarArea: side * side,
	}, nil
}

// WindowSize returns the validated window edge length.
func (f *Filter) WindowSize() int { return f.windowSize }

// Evaluate returns surface area over planar area for one window. The
// estimator's fallback guarantees the result is finite; for real terrain
// it is always >= 1.
func (f *Filter) Evaluate(window []float64) float64 {
	return TriangulatedArea(window, f.cellSize) / f.planarArea
}
