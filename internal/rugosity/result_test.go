package rugosity

import (
	"math"
	"testing"

	"github.com/topoforge/rugosity/internal/dem"
)

func TestAnalyzeFlatScenario(t *testing.T) {
	// 7x7 grid, all elevation 10, cell size 1, window 3: fringe width 2,
	// interior 3x3 region exactly flat.
	g := makeFlatGrid(7, 7, 10)
	res, err := Analyze(g, 1, Options{WindowSize: 3})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	const fringe = 2 // 3/2 + 1
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			v := res.Rugosity.At(r, c)
			inFringe := r < fringe || c < fringe || r >= 7-fringe || c >= 7-fringe
			if inFringe {
				if !math.IsNaN(v) {
					t.Fatalf("fringe cell (%d,%d) = %v, want NaN", r, c, v)
				}
				continue
			}
			if math.Abs(v-1) > 1e-9 {
				t.Fatalf("interior cell (%d,%d) = %v, want 1.0", r, c, v)
			}
		}
	}

	if res.WindowSizeMeters != 3 {
		t.Fatalf("WindowSizeMeters = %v, want 3", res.WindowSizeMeters)
	}
	if res.CellSizeMeters != 1 {
		t.Fatalf("CellSizeMeters = %v, want 1", res.CellSizeMeters)
	}
}

func TestFringeWidthPerWindowSize(t *testing.T) {
	g := makeTerrainGrid(24, 21, 13)
	for _, tc := range []struct {
		windowSize int
		chunked    bool
	}{
		{3, false},
		{5, false},
		{7, false},
		{3, true},
		{5, true},
		{7, true},
	} {
		res, err := Analyze(g, 1, Options{
			WindowSize: tc.windowSize,
			Chunked:    tc.chunked,
			TileRows:   8,
			TileCols:   8,
		})
		if err != nil {
			t.Fatalf("window %d chunked=%v: %v", tc.windowSize, tc.chunked, err)
		}
		fringe := tc.windowSize/2 + 1
		out := res.Rugosity
		for r := 0; r < out.Rows; r++ {
			for c := 0; c < out.Cols; c++ {
				inFringe := r < fringe || c < fringe || r >= out.Rows-fringe || c >= out.Cols-fringe
				v := out.At(r, c)
				if inFringe && !math.IsNaN(v) {
					t.Fatalf("window %d chunked=%v: fringe cell (%d,%d) = %v, want NaN", tc.windowSize, tc.chunked, r, c, v)
				}
				if !inFringe && math.IsNaN(v) {
					t.Fatalf("window %d chunked=%v: interior cell (%d,%d) is NaN", tc.windowSize, tc.chunked, r, c)
				}
			}
		}
	}
}

func TestAnalyzeStrategiesAgree(t *testing.T) {
	g := makeTerrainGrid(30, 26, 17)
	seq, err := Analyze(g, 2, Options{WindowSize: 5})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	chunked, err := Analyze(g, 2, Options{WindowSize: 5, Chunked: true, TileRows: 9, TileCols: 6, Workers: 4})
	if err != nil {
		t.Fatalf("chunked: %v", err)
	}
	assertGridsEqual(t, seq.Rugosity, chunked.Rugosity, "Analyze sequential vs chunked")
}

func TestAnalyzeRejectsBadWindowBeforeTraversal(t *testing.T) {
	g := makeFlatGrid(10, 10, 0)
	calls := 0
	for _, windowSize := range []int{2, 4, 1, 0, -5} {
		_, err := Analyze(g, 1, Options{WindowSize: windowSize, Progress: func(int, int) { calls++ }})
		if err == nil {
			t.Fatalf("window %d: expected ConfigError", windowSize)
		}
	}
	if calls != 0 {
		t.Fatalf("progress reported %d checkpoints for rejected configs", calls)
	}
}

func TestSummaryStats(t *testing.T) {
	g := makeTerrainGrid(12, 12, 19)
	res, err := Analyze(g, 1, Options{WindowSize: 3})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	s := res.Summary()
	wantValid := (12 - 4) * (12 - 4) // fringe 2 on each side
	if s.Valid != wantValid {
		t.Fatalf("Valid = %d, want %d", s.Valid, wantValid)
	}
	if s.Min < 1-1e-9 {
		t.Fatalf("Min = %v, below 1.0", s.Min)
	}
	if !(s.Min <= s.Mean && s.Mean <= s.Max) {
		t.Fatalf("stats out of order: min=%v mean=%v max=%v", s.Min, s.Mean, s.Max)
	}
}

func TestSummaryAllFringe(t *testing.T) {
	// A grid barely larger than the window invalidates everything.
	g := makeFlatGrid(4, 4, 0)
	res, err := Analyze(g, 1, Options{WindowSize: 3})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	s := res.Summary()
	if s.Valid != 0 {
		t.Fatalf("Valid = %d, want 0", s.Valid)
	}
	if !math.IsNaN(s.Mean) {
		t.Fatalf("Mean = %v, want NaN", s.Mean)
	}
}

func TestInvalidateFringeNarrowGrid(t *testing.T) {
	// Fringe wider than half the grid wipes it entirely without panics.
	g := dem.New(3, 8)
	InvalidateFringe(g, 5) // fringe 3 > 3 rows
	for i, v := range g.Samples {
		if !math.IsNaN(v) {
			t.Fatalf("cell %d = %v, want NaN", i, v)
		}
	}
}
