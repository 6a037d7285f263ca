package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"collabtopo/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify corpus, output, and results store readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checks := preflight.RunAll(cfg)
			rows := make([][]string, len(checks))
			for i, c := range checks {
				status := "ok"
				if !c.Passed {
					status = "FAIL"
				}
				rows[i] = []string{c.Name, status, c.Detail}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
			if failed := preflight.Failed(checks); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(checks))
			}
			return nil
		},
	}
}
