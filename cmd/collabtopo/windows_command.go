package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"collabtopo/internal/pipeline"
)

func newWindowsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "Show the configured time window sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts, err := pipeline.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			wins, err := opts.Windows()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(wins) == 0 {
				fmt.Fprintln(out, "No windows: windows.start is after windows.end")
				return nil
			}
			rows := make([][]string, len(wins))
			for i, w := range wins {
				rows[i] = []string{itoa(i + 1), formatDate(w.Start), formatDate(w.End), pipeline.DiagramFileName(w)}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Diagram"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d windows, width %d days, stride %d days\n", len(wins), cfg.Windows.WidthDays, cfg.Windows.StrideDays)
			return nil
		},
	}
}
