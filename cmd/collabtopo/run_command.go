package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"collabtopo/internal/faults"
	"collabtopo/internal/logging"
	"collabtopo/internal/pipeline"
	"collabtopo/internal/results"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dataFile string
	var maxDimension int
	var faceCounting string
	var noDiagrams bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute persistence diagrams for every time window",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			flags := cmd.Flags()
			if flags.Changed("data") {
				cfg.Paths.DataFile = dataFile
			}
			if flags.Changed("max-dimension") {
				cfg.Complex.MaxDimension = maxDimension
			}
			if flags.Changed("face-counting") {
				cfg.Complex.FaceCounting = faceCounting
			}
			if noDiagrams {
				cfg.Diagram.Enabled = false
			}
			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(&cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			summary, run, runErr := pipeline.Execute(runCtx, pipeline.ExecuteParams{
				Config:   &cfg,
				Logger:   logger,
				Progress: pipeline.NewProgress(out, logger),
			})
			if summary != nil {
				printRunSummary(out, summary, run)
			}
			if runErr != nil {
				if pipeline.IsCanceled(runErr) {
					logger.Warn("run canceled", logging.Int("processed", summaryProcessed(summary)))
					return context.Canceled
				}
				if faults.Fatal(runErr) {
					logging.ErrorWithContext(logger, "run rejected before processing", "run_rejected",
						logging.String("error_kind", faults.Kind(runErr)),
						logging.Error(runErr),
					)
					fmt.Fprintln(cmd.ErrOrStderr(), "No windows were processed; fix the configuration or corpus and run again")
					return runErr
				}
				logging.ErrorWithContext(logger, "run failed", "run_failed",
					logging.String("error_kind", faults.Kind(runErr)),
					logging.Error(runErr),
				)
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Corpus file (.csv or .xlsx), overrides paths.data_file")
	cmd.Flags().IntVar(&maxDimension, "max-dimension", 0, "Maximum simplex dimension, overrides complex.max_dimension")
	cmd.Flags().StringVar(&faceCounting, "face-counting", "", "Face counting mode (literal, distinct)")
	cmd.Flags().BoolVar(&noDiagrams, "no-diagrams", false, "Skip persistence diagram rendering")
	return cmd
}

func summaryProcessed(summary *pipeline.Summary) int {
	if summary == nil {
		return 0
	}
	return summary.Processed
}

func printRunSummary(out io.Writer, summary *pipeline.Summary, run *results.Run) {
	if run != nil {
		fmt.Fprintf(out, "Run %s %s\n", run.ID, run.Status)
	}

	if len(summary.Windows) > 0 {
		rows := make([][]string, 0, len(summary.Windows))
		for _, w := range summary.Windows {
			diagramName := "-"
			if w.DiagramPath != "" {
				diagramName = pipeline.DiagramFileName(w.Window)
			}
			rows = append(rows, []string{
				w.Window.String(),
				itoa(w.Documents),
				itoa(w.Simplices),
				formatBetti(w.Betti),
				diagramName,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Window", "Documents", "Simplices", "Betti", "Diagram"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
		))
	}

	fmt.Fprintf(out, "Windows: %d processed, %d skipped (of %d)\n", summary.Processed, summary.Skipped, summary.Total)
	if final, ok := summary.Final(); ok {
		fmt.Fprintf(out, "Final Betti numbers (%s): %s\n", final.Window.String(), formatBetti(final.Betti))
	} else {
		fmt.Fprintln(out, "No window contained documents")
	}
	fmt.Fprintf(out, "Output: %s\n", summary.RunDir)
}
