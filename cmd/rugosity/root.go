package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rugosity",
		Short: "Terrain complexity analysis for digital elevation models",
		Long: `rugosity estimates terrain complexity as the ratio of true 3-D surface
area to planar area inside a moving window, using the triangulated
surface method of Jenness (2004). Large grids are processed as
overlapping tiles in parallel; results are identical to a sequential
pass for any tile shape.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newHistoryCmd())
	return root
}
