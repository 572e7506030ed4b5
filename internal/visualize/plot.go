package visualize

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/topoforge/rugosity/internal/dem"
	"github.com/topoforge/rugosity/internal/rugosity"
)

// gridXYZ adapts a dem.Grid to gonum/plot's heatmap data interface.
// Row 0 of the grid is the northern edge, so rows are flipped to put it
// at the top of the plot.
type gridXYZ struct {
	g        *dem.Grid
	cellSize float64
}

func (d gridXYZ) Dims() (c, r int)   { return d.g.Cols, d.g.Rows }
func (d gridXYZ) Z(c, r int) float64 { return d.g.At(d.g.Rows-1-r, c) }
func (d gridXYZ) X(c int) float64    { return float64(c) * d.cellSize }
func (d gridXYZ) Y(r int) float64    { return float64(r) * d.cellSize }

// rampPalette interpolates between a fixed set of color stops.
type rampPalette struct {
	colors []color.Color
}

func (p rampPalette) Colors() []color.Color { return p.colors }

func grayPalette(n int) rampPalette {
	colors := make([]color.Color, n)
	for i := range colors {
		v := uint8(255 * i / (n - 1))
		colors[i] = color.Gray{Y: v}
	}
	return rampPalette{colors: colors}
}

// viridisStops is the standard viridis ramp.
var viridisStops = []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x48, 0x27, 0x77, 0xff},
	{0x3e, 0x49, 0x89, 0xff},
	{0x31, 0x68, 0x8e, 0xff},
	{0x26, 0x82, 0x8e, 0xff},
	{0x1f, 0x9e, 0x89, 0xff},
	{0x35, 0xb7, 0x79, 0xff},
	{0x6e, 0xce, 0x58, 0xff},
	{0xb5, 0xde, 0x2b, 0xff},
	{0xfd, 0xe7, 0x25, 0xff},
}

func viridisPalette(n int) rampPalette {
	colors := make([]color.Color, n)
	for i := range colors {
		t := float64(i) / float64(n-1) * float64(len(viridisStops)-1)
		lo := int(t)
		if lo >= len(viridisStops)-1 {
			colors[i] = viridisStops[len(viridisStops)-1]
			continue
		}
		frac := t - float64(lo)
		a, b := viridisStops[lo], viridisStops[lo+1]
		colors[i] = color.RGBA{
			R: uint8(float64(a.R) + frac*(float64(b.R)-float64(a.R))),
			G: uint8(float64(a.G) + frac*(float64(b.G)-float64(a.G))),
			B: uint8(float64(a.B) + frac*(float64(b.B)-float64(a.B))),
			A: 0xff,
		}
	}
	return rampPalette{colors: colors}
}

// clipForDisplay returns a copy of g with values clamped to the 1st/99th
// percentile of its non-NaN cells and NaN replaced by the lower bound,
// so fringe cells and outliers do not wash out the color ramp.
func clipForDisplay(g *dem.Grid) (*dem.Grid, float64, float64) {
	valid := rugosity.ValidValues(g)
	if len(valid) == 0 {
		return g.Clone(), 0, 1
	}
	sort.Float64s(valid)
	lo := stat.Quantile(0.01, stat.Empirical, valid, nil)
	hi := stat.Quantile(0.99, stat.Empirical, valid, nil)
	if hi <= lo {
		hi = lo + 1e-9
	}

	out := g.Clone()
	for i, v := range out.Samples {
		switch {
		case math.IsNaN(v), v < lo:
			out.Samples[i] = lo
		case v > hi:
			out.Samples[i] = hi
		}
	}
	return out, lo, hi
}

// SideBySide renders the input hillshade and the rugosity heatmap next
// to each other and writes a single PNG to path.
func SideBySide(res *rugosity.Result, title, path string) error {
	shade := Hillshade(res.Elevation, res.CellSizeMeters, DefaultAzimuthDeg, DefaultAltitudeDeg, DefaultVertExag)

	pShade := plot.New()
	pShade.Title.Text = title
	pShade.X.Label.Text = "Easting (m)"
	pShade.Y.Label.Text = "Northing (m)"
	pShade.Add(plotter.NewHeatMap(gridXYZ{g: shade, cellSize: res.CellSizeMeters}, grayPalette(256)))

	clipped, lo, hi := clipForDisplay(res.Rugosity)
	pRug := plot.New()
	pRug.Title.Text = fmt.Sprintf("Rugosity Index (~%.2fm x ~%.2fm window, %.2f-%.2f)",
		res.WindowSizeMeters, res.WindowSizeMeters, lo, hi)
	pRug.X.Label.Text = "Easting (m)"
	pRug.Y.Label.Text = "Northing (m)"
	pRug.Add(plotter.NewHeatMap(gridXYZ{g: clipped, cellSize: res.CellSizeMeters}, viridisPalette(256)))

	img := vgimg.New(12*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{pShade, pRug}}
	canvases := plot.Align(plots, tiles, dc)
	pShade.Draw(canvases[0][0])
	pRug.Draw(canvases[0][1])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("visualize: %s: %w", path, err)
	}
	return f.Close()
}
