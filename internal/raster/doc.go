// Package raster reads and writes gridded elevation data as ESRI ASCII
// grids (.asc) and normalizes linear units to meters.
//
// The analysis core assumes elevations and cell sizes are already in
// meters; NormalizeUnits is the single place that conversion happens.
// NoData cells become NaN on read and are restored on write, and header
// georeferencing passes through a Metadata value untouched.
package raster
