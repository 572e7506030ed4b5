package dem

import "fmt"

// Grid is a row-major raster of elevation samples.
// Samples has length Rows*Cols; the sample for row r, column c lives at
// index r*Cols + c.
type Grid struct {
	Rows int
	Cols int

	Samples []float64
}

// New allocates a zero-filled grid with the given shape.
func New(rows, cols int) *Grid {
	return &Grid{
		Rows:    rows,
		Cols:    cols,
		Samples: make([]float64, rows*cols),
	}
}

// FromSamples wraps an existing row-major sample slice. The slice is not
// copied; the caller must not mutate it while the grid is in use.
func FromSamples(rows, cols int, samples []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("dem: invalid grid shape %dx%d", rows, cols)
	}
	if len(samples) != rows*cols {
		return nil, fmt.Errorf("dem: got %d samples for a %dx%d grid (want %d)", len(samples), rows, cols, rows*cols)
	}
	return &Grid{Rows: rows, Cols: cols, Samples: samples}, nil
}

// Idx converts row/column coordinates to a flat Samples index.
func (g *Grid) Idx(r, c int) int { return r*g.Cols + c }

// At returns the sample at row r, column c. It panics if the coordinates
// are out of range, like a slice index would.
func (g *Grid) At(r, c int) float64 { return g.Samples[r*g.Cols+c] }

// Set overwrites the sample at row r, column c.
func (g *Grid) Set(r, c int, v float64) { g.Samples[r*g.Cols+c] = v }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{Rows: g.Rows, Cols: g.Cols, Samples: make([]float64, len(g.Samples))}
	copy(out.Samples, g.Samples)
	return out
}

// AtReflect returns the sample at row r, column c, mirroring coordinates
// that fall outside the grid. The mirror does not repeat the edge sample:
// row -1 maps to row 1, row Rows maps to row Rows-2, and so on for any
// distance out of range.
func (g *Grid) AtReflect(r, c int) float64 {
	return g.Samples[reflectIndex(r, g.Rows)*g.Cols+reflectIndex(c, g.Cols)]
}

// reflectIndex maps i into [0, n) by mirroring about 0 and n-1. The
// mapping is periodic with period 2(n-1), so arbitrarily far out-of-range
// indices still resolve. A single-sample axis always maps to 0.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// Window copies the size-by-size neighborhood centered on row r, column c
// into buf in row-major order, mirroring samples that fall outside the
// grid, and returns buf. buf must have length size*size. size must be
// odd; callers validate that before traversal.
func (g *Grid) Window(r, c, size int, buf []float64) []float64 {
	half := size / 2
	k := 0
	for wr := r - half; wr <= r+half; wr++ {
		rr := reflectIndex(wr, g.Rows)
		base := rr * g.Cols
		for wc := c - half; wc <= c+half; wc++ {
			buf[k] = g.Samples[base+reflectIndex(wc, g.Cols)]
			k++
		}
	}
	return buf
}
