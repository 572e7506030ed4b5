// Package report renders a self-contained HTML view of an analysis run
// using go-echarts: the rugosity grid as a color-mapped scatter with a
// run summary in the header. The output is a single file suitable for
// sharing without a server.
package report
