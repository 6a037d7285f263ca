package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"collabtopo/internal/results"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *results.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, len(runs))
				for i, run := range runs {
					message := run.ErrorMessage
					if message == "" {
						message = "-"
					}
					rows[i] = []string{
						shortID(run.ID),
						string(run.Status),
						formatTimestamp(run.StartedAt),
						formatDuration(run.Duration()),
						itoa(run.Processed),
						itoa(run.Skipped),
						message,
					}
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Status", "Started", "Duration", "Processed", "Skipped", "Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run and its windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *results.Store) error {
				if err := store.DeleteRun(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
				return nil
			})
		},
	})
	return cmd
}
