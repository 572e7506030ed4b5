package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/topoforge/rugosity/internal/dem"
)

// DefaultNoData is written for NaN cells when the source raster carried
// no nodata_value header.
const DefaultNoData = -9999.0

// Metadata carries the ESRI ASCII grid header fields that are not part
// of the sample data. It passes through an analysis untouched so output
// rasters stay georeferenced like their inputs.
type Metadata struct {
	// XLL and YLL locate the lower-left cell; CornerIsCenter records
	// whether the header used xllcenter/yllcenter rather than
	// xllcorner/yllcorner.
	XLL            float64
	YLL            float64
	CornerIsCenter bool

	// CellSize is the grid spacing in the raster's native linear units.
	CellSize float64

	// NoData is the sentinel for missing samples; HasNoData records
	// whether the header declared one.
	NoData    float64
	HasNoData bool
}

// ReadFile reads an ESRI ASCII grid from path.
func ReadFile(path string) (*dem.Grid, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("raster: %w", err)
	}
	defer f.Close()
	g, meta, err := Read(f)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("raster: %s: %w", path, err)
	}
	return g, meta, nil
}

// Read parses an ESRI ASCII grid. Header keys are case-insensitive and
// may appear in any order; the first token that parses as a number ends
// the header. NoData samples are returned as NaN.
func Read(r io.Reader) (*dem.Grid, Metadata, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
	nextFloat := func(key string) (float64, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("missing value for header %q", key)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("bad value %q for header %q", tok, key)
		}
		return v, nil
	}

	var meta Metadata
	rows, cols := -1, -1
	firstSample := math.NaN()
	haveFirst := false

	for {
		tok, ok := next()
		if !ok {
			return nil, Metadata{}, fmt.Errorf("unexpected end of header")
		}
		key := strings.ToLower(tok)
		switch key {
		case "ncols", "nrows":
			v, err := nextFloat(key)
			if err != nil {
				return nil, Metadata{}, err
			}
			if v != math.Trunc(v) || v < 1 {
				return nil, Metadata{}, fmt.Errorf("%s must be a positive integer, got %g", key, v)
			}
			if key == "ncols" {
				cols = int(v)
			} else {
				rows = int(v)
			}
		case "xllcorner", "xllcenter":
			v, err := nextFloat(key)
			if err != nil {
				return nil, Metadata{}, err
			}
			meta.XLL = v
			meta.CornerIsCenter = key == "xllcenter"
		case "yllcorner", "yllcenter":
			v, err := nextFloat(key)
			if err != nil {
				return nil, Metadata{}, err
			}
			meta.YLL = v
		case "cellsize":
			v, err := nextFloat(key)
			if err != nil {
				return nil, Metadata{}, err
			}
			if v <= 0 {
				return nil, Metadata{}, fmt.Errorf("cellsize must be positive, got %g", v)
			}
			meta.CellSize = v
		case "nodata_value":
			v, err := nextFloat(key)
			if err != nil {
				return nil, Metadata{}, err
			}
			meta.NoData = v
			meta.HasNoData = true
		default:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, Metadata{}, fmt.Errorf("unknown header key %q", tok)
			}
			firstSample = v
			haveFirst = true
		}
		if haveFirst {
			break
		}
	}

	if rows < 1 || cols < 1 {
		return nil, Metadata{}, fmt.Errorf("header is missing ncols/nrows")
	}
	if meta.CellSize == 0 {
		return nil, Metadata{}, fmt.Errorf("header is missing cellsize")
	}

	g := dem.New(rows, cols)
	g.Samples[0] = firstSample
	for i := 1; i < rows*cols; i++ {
		tok, ok := next()
		if !ok {
			return nil, Metadata{}, fmt.Errorf("got %d of %d samples", i, rows*cols)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("bad sample %q at index %d", tok, i)
		}
		g.Samples[i] = v
	}
	if err := sc.Err(); err != nil {
		return nil, Metadata{}, err
	}

	if meta.HasNoData {
		nan := math.NaN()
		for i, v := range g.Samples {
			if v == meta.NoData {
				g.Samples[i] = nan
			}
		}
	}
	return g, meta, nil
}

// WriteFile writes g as an ESRI ASCII grid at path.
func WriteFile(path string, g *dem.Grid, meta Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := Write(f, g, meta); err != nil {
		f.Close()
		return fmt.Errorf("raster: %s: %w", path, err)
	}
	return f.Close()
}

// Write serializes g with meta's georeferencing. NaN samples are written
// as the metadata's nodata value, or DefaultNoData if none was declared.
func Write(w io.Writer, g *dem.Grid, meta Metadata) error {
	noData := meta.NoData
	if !meta.HasNoData {
		noData = DefaultNoData
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", g.Cols)
	fmt.Fprintf(bw, "nrows %d\n", g.Rows)
	if meta.CornerIsCenter {
		fmt.Fprintf(bw, "xllcenter %g\n", meta.XLL)
		fmt.Fprintf(bw, "yllcenter %g\n", meta.YLL)
	} else {
		fmt.Fprintf(bw, "xllcorner %g\n", meta.XLL)
		fmt.Fprintf(bw, "yllcorner %g\n", meta.YLL)
	}
	fmt.Fprintf(bw, "cellsize %g\n", meta.CellSize)
	fmt.Fprintf(bw, "nodata_value %g\n", noData)

	for r := 0; r < g.Rows; r++ {
		row := g.Samples[r*g.Cols : (r+1)*g.Cols]
		for c, v := range row {
			if c > 0 {
				bw.WriteByte(' ')
			}
			if math.IsNaN(v) {
				fmt.Fprintf(bw, "%g", noData)
			} else {
				fmt.Fprintf(bw, "%g", v)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
