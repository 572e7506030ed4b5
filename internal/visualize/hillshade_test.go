package visualize

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/topoforge/rugosity/internal/dem"
	"github.com/topoforge/rugosity/internal/rugosity"
)

func TestHillshadeFlatIsUniform(t *testing.T) {
	g := dem.New(5, 5)
	for i := range g.Samples {
		g.Samples[i] = 250
	}
	shade := Hillshade(g, 1, DefaultAzimuthDeg, DefaultAltitudeDeg, DefaultVertExag)

	// Flat terrain shades to sin(altitude) everywhere.
	want := math.Sin(DefaultAltitudeDeg * math.Pi / 180)
	for i, v := range shade.Samples {
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("shade[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestHillshadeRangeAndOrientation(t *testing.T) {
	// Two opposite ramps must shade differently under directional light,
	// and every value stays inside [0, 1].
	east := dem.New(8, 8)
	west := dem.New(8, 8)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			east.Set(r, c, float64(c)*10)
			west.Set(r, c, float64(7-c)*10)
		}
	}
	se := Hillshade(east, 1, DefaultAzimuthDeg, DefaultAltitudeDeg, DefaultVertExag)
	sw := Hillshade(west, 1, DefaultAzimuthDeg, DefaultAltitudeDeg, DefaultVertExag)
	for i := range se.Samples {
		if se.Samples[i] < 0 || se.Samples[i] > 1 {
			t.Fatalf("shade out of range: %v", se.Samples[i])
		}
	}
	if se.At(4, 4) == sw.At(4, 4) {
		t.Fatalf("opposite slopes shade identically (%v); lighting is not directional", se.At(4, 4))
	}
}

func TestViridisPaletteEndpoints(t *testing.T) {
	p := viridisPalette(64)
	colors := p.Colors()
	if len(colors) != 64 {
		t.Fatalf("palette has %d colors, want 64", len(colors))
	}
	if colors[0] != viridisStops[0] {
		t.Fatalf("palette start = %v, want %v", colors[0], viridisStops[0])
	}
}

func TestSideBySideWritesPNG(t *testing.T) {
	g := dem.New(12, 12)
	for r := 0; r < 12; r++ {
		for c := 0; c < 12; c++ {
			g.Set(r, c, 100+5*float64(r%3)+3*float64(c%4))
		}
	}
	res, err := rugosity.Analyze(g, 1, rugosity.Options{WindowSize: 3})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SideBySide(res, "test dem", path); err != nil {
		t.Fatalf("SideBySide: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("output PNG is empty")
	}
}
