// Package store persists analysis-run history in SQLite: one row per
// run with its parameters and summary statistics, so parameter sweeps
// over the same terrain can be compared later. Grids themselves are
// never stored; rasters on disk remain the source of truth.
package store
