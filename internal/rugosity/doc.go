// Package rugosity computes a terrain-complexity index from gridded
// elevation data.
//
// The rugosity index of a cell is the ratio of the estimated true 3-D
// surface area to the flat planar area inside a fixed-size square window
// centered on that cell. Surface area is estimated with the triangulated
// irregular networks method of Jenness (2004): eight triangles per swept
// cell, each area computed with Heron's formula.
//
// Two execution strategies cover the full grid. SequentialProcessor
// visits cells in row-major order and is the correctness baseline.
// ChunkedProcessor partitions the grid into overlapping tiles and
// evaluates them on a worker pool; for any tile shape it reproduces the
// sequential output exactly, so tile shape is purely a speed/memory knob.
//
// Reference: Jenness, J.S. (2004). Calculating landscape surface area
// from digital elevation models. Wildlife Society Bulletin 32:829-839.
package rugosity
