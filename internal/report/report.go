package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/topoforge/rugosity/internal/rugosity"
)

// maxPoints bounds the number of cells embedded in the HTML so reports
// for large grids stay loadable in a browser.
const maxPoints = 20000

var viridisHex = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// WriteHTML renders the report for res to path. inputName labels the
// chart with the source raster.
func WriteHTML(res *rugosity.Result, inputName, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := Render(f, res, inputName); err != nil {
		f.Close()
		return fmt.Errorf("report: %s: %w", path, err)
	}
	return f.Close()
}

// Render writes the HTML report to w.
func Render(w io.Writer, res *rugosity.Result, inputName string) error {
	g := res.Rugosity

	valid := rugosity.ValidValues(g)
	lo, hi := 1.0, 2.0
	if len(valid) > 0 {
		sort.Float64s(valid)
		lo = stat.Quantile(0.01, stat.Empirical, valid, nil)
		hi = stat.Quantile(0.99, stat.Empirical, valid, nil)
		if hi <= lo {
			hi = lo + 1e-9
		}
	}

	// Downsample by stride to stay within maxPoints.
	stride := 1
	if len(valid) > maxPoints {
		stride = int(math.Ceil(math.Sqrt(float64(len(valid)) / float64(maxPoints))))
	}

	data := make([]opts.ScatterData, 0, maxPoints)
	for r := 0; r < g.Rows; r += stride {
		for c := 0; c < g.Cols; c += stride {
			v := g.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			// Flip rows so north stays up in the chart.
			data = append(data, opts.ScatterData{Value: []interface{}{c, g.Rows - 1 - r, v}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Rugosity Index",
			Width:     "1000px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Rugosity Index",
			Subtitle: fmt.Sprintf("input=%s window=%.2fm x %.2fm cells=%dx%d stride=%d",
				inputName, res.WindowSizeMeters, res.WindowSizeMeters, g.Rows, g.Cols, stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: g.Cols, Name: "Column"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: g.Rows, Name: "Row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridisHex},
		}),
	)
	scatter.AddSeries("rugosity", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	page := components.NewPage()
	page.AddCharts(scatter)
	return page.Render(w)
}
