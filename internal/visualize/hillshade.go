package visualize

import (
	"math"

	"github.com/topoforge/rugosity/internal/dem"
)

// Hillshade illumination defaults: light from the northwest, as in most
// cartographic renderings.
const (
	DefaultAzimuthDeg  = 315.0
	DefaultAltitudeDeg = 45.0
	DefaultVertExag    = 2.0
)

// Hillshade computes an illumination raster for g in [0, 1]. azimuthDeg
// is the light direction measured clockwise from north, altitudeDeg its
// angle above the horizon, and vertExag scales the terrain gradients
// before shading. Gradients use central differences with mirrored
// samples at the boundary.
func Hillshade(g *dem.Grid, cellSize, azimuthDeg, altitudeDeg, vertExag float64) *dem.Grid {
	out := dem.New(g.Rows, g.Cols)

	// Convert the compass azimuth to math convention (counterclockwise
	// from east) so it lines up with atan2's aspect angle.
	az := (90 - azimuthDeg) * math.Pi / 180
	alt := altitudeDeg * math.Pi / 180
	sinAlt, cosAlt := math.Sincos(alt)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			dzdx := vertExag * (g.AtReflect(r, c+1) - g.AtReflect(r, c-1)) / (2 * cellSize)
			// Row indices grow southward, so the north gradient flips sign.
			dzdy := vertExag * (g.AtReflect(r-1, c) - g.AtReflect(r+1, c)) / (2 * cellSize)

			slope := math.Atan(math.Hypot(dzdx, dzdy))
			aspect := math.Atan2(dzdy, -dzdx)
			sinSlope, cosSlope := math.Sincos(slope)

			v := sinAlt*cosSlope + cosAlt*sinSlope*math.Cos(az-aspect)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			out.Samples[out.Idx(r, c)] = v
		}
	}
	return out
}
