// Package visualize renders analysis results as PNG images: a hillshade
// of the input elevation next to a heatmap of the rugosity index, the
// standard before/after figure for checking a run at a glance.
package visualize
