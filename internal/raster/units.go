package raster

import (
	"fmt"
	"strings"

	"github.com/topoforge/rugosity/internal/dem"
)

// Conversion factors to meters.
const (
	// MetersPerUSSurveyFoot is the exact US survey foot definition.
	MetersPerUSSurveyFoot = 1200.0 / 3937.0
	// MetersPerIntlFoot is the international foot.
	MetersPerIntlFoot = 0.3048
)

// NormalizeUnits converts a grid's elevation samples and cell size to
// meters in place, returning the converted cell size. The unit string is
// matched the way raster CRS descriptions spell it: anything mentioning
// meters passes through, feet variants are scaled (US survey feet when
// the string mentions the US), and anything else is an error.
func NormalizeUnits(g *dem.Grid, cellSize float64, unit string) (float64, error) {
	u := strings.ToLower(unit)
	switch {
	case containsAny(u, "metre", "meter"):
		return cellSize, nil
	case containsAny(u, "foot", "feet", "ft"):
		factor := MetersPerIntlFoot
		if containsAny(u, "us", "united states") {
			factor = MetersPerUSSurveyFoot
		}
		for i := range g.Samples {
			g.Samples[i] *= factor
		}
		return cellSize * factor, nil
	default:
		return 0, fmt.Errorf("raster: elevation unit %q must be feet or meters", unit)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
