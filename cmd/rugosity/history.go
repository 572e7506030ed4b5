package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/topoforge/rugosity/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tINPUT\tCELLS\tWINDOW\tSTRATEGY\tDURATION\tMEAN\tMAX")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%s\t%s\t%.4f\t%.4f\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"), r.Input,
					r.Rows, r.Cols, r.WindowSize, r.Strategy,
					r.Duration.Round(time.Millisecond), r.RugosityMean, r.RugosityMax)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "rugosity_runs.db", "SQLite history database path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list")

	return cmd
}
