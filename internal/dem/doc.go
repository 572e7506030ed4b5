// Package dem models gridded elevation data (digital elevation models).
//
// Responsibilities: the row-major Grid type, reflect-mode boundary
// sampling, and moving-window extraction. Grids are treated as immutable
// while an analysis is running; nothing in this package mutates a grid it
// did not allocate.
//
// Dependency rule: dem is the bottom layer. It may not import any other
// package in this module.
package dem
