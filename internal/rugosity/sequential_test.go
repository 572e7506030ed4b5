package rugosity

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/topoforge/rugosity/internal/dem"
)

func makeFlatGrid(rows, cols int, v float64) *dem.Grid {
	g := dem.New(rows, cols)
	for i := range g.Samples {
		g.Samples[i] = v
	}
	return g
}

// makeTerrainGrid builds a deterministic pseudo-random elevation field.
func makeTerrainGrid(rows, cols int, seed int64) *dem.Grid {
	rng := rand.New(rand.NewSource(seed))
	g := dem.New(rows, cols)
	for i := range g.Samples {
		g.Samples[i] = 100 + 50*rng.Float64()
	}
	return g
}

func mustFilter(t *testing.T, windowSize int, cellSize float64) *Filter {
	t.Helper()
	f, err := NewFilter(windowSize, cellSize)
	if err != nil {
		t.Fatalf("NewFilter(%d, %g): %v", windowSize, cellSize, err)
	}
	return f
}

func TestSequentialFlatGridAllOnes(t *testing.T) {
	g := makeFlatGrid(7, 7, 10)
	f := mustFilter(t, 3, 1)
	out, err := NewSequentialProcessor(f, 3, nil).Process(g)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out.Samples {
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("raw rugosity[%d] = %v, want 1.0", i, v)
		}
	}
}

func TestSequentialGridSmallerThanWindow(t *testing.T) {
	g := makeFlatGrid(4, 9, 0)
	f := mustFilter(t, 5, 1)
	calls := 0
	p := NewSequentialProcessor(f, 5, func(done, total int) { calls++ })
	_, err := p.Process(g)
	if err == nil {
		t.Fatalf("expected error for 4x9 grid with window 5")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %v is not a ConfigError", err)
	}
	if calls != 0 {
		t.Fatalf("progress reported %d checkpoints before the config error", calls)
	}
}

func TestSequentialProgressPerRow(t *testing.T) {
	g := makeTerrainGrid(9, 6, 1)
	f := mustFilter(t, 3, 1)
	var dones []int
	var lastTotal int
	p := NewSequentialProcessor(f, 3, func(done, total int) {
		dones = append(dones, done)
		lastTotal = total
	})
	if _, err := p.Process(g); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(dones) != g.Rows {
		t.Fatalf("got %d checkpoints, want one per row (%d)", len(dones), g.Rows)
	}
	for i, d := range dones {
		if d != i+1 {
			t.Fatalf("checkpoint %d reported done=%d", i, d)
		}
	}
	if lastTotal != g.Rows {
		t.Fatalf("total = %d, want %d", lastTotal, g.Rows)
	}
}

// orderEvaluator records how many windows it has seen and returns the
// count, so the output grid encodes visit order.
type orderEvaluator struct{ n int }

func (e *orderEvaluator) Evaluate(window []float64) float64 {
	e.n++
	return float64(e.n)
}

func TestSequentialVisitsRowMajor(t *testing.T) {
	g := makeFlatGrid(4, 5, 0)
	eval := &orderEvaluator{}
	out, err := NewSequentialProcessor(eval, 3, nil).Process(g)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out.Samples {
		if v != float64(i+1) {
			t.Fatalf("cell %d evaluated as visit %v, want %d", i, v, i+1)
		}
	}
}

func TestSequentialSpikeStaysFinite(t *testing.T) {
	g := makeFlatGrid(9, 9, 100)
	g.Set(4, 4, 100000) // sharp spike
	f := mustFilter(t, 3, 1)
	out, err := NewSequentialProcessor(f, 3, nil).Process(g)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("raw rugosity[%d] = %v near spike, want finite", i, v)
		}
	}
	if at := out.At(4, 4); !(at > 1) {
		t.Fatalf("rugosity at spike = %v, want > 1", at)
	}
}

func TestSequentialRatiosNeverBelowOne(t *testing.T) {
	g := makeTerrainGrid(16, 13, 7)
	for _, windowSize := range []int{3, 5} {
		f := mustFilter(t, windowSize, 2)
		out, err := NewSequentialProcessor(f, windowSize, nil).Process(g)
		if err != nil {
			t.Fatalf("window %d: %v", windowSize, err)
		}
		for i, v := range out.Samples {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("window %d: rugosity[%d] = %v, want finite", windowSize, i, v)
			}
			if v < 1-1e-9 {
				t.Fatalf("window %d: rugosity[%d] = %v, below 1.0", windowSize, i, v)
			}
		}
	}
}
