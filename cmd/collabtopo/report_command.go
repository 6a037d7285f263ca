package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"collabtopo/internal/persistence"
	"collabtopo/internal/results"
)

type reportJSON struct {
	RunID     string            `json:"run_id"`
	Status    string            `json:"status"`
	DataFile  string            `json:"data_file"`
	StartedAt time.Time         `json:"started_at"`
	Windows   []reportWindowRow `json:"windows"`
}

type reportWindowRow struct {
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Documents int             `json:"documents"`
	Betti     []int           `json:"betti"`
	Pairs     []reportPairRow `json:"pairs,omitempty"`
}

// reportPairRow leaves Death nil for essential classes.
type reportPairRow struct {
	Dimension int      `json:"dimension"`
	Birth     float64  `json:"birth"`
	Death     *float64 `json:"death"`
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var withPairs bool

	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Show the Betti number time series of a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *results.Store) error {
				run, err := resolveRun(cmd.Context(), store, args)
				if err != nil {
					return err
				}
				rows, err := loadReportRows(cmd.Context(), store, run.ID, withPairs)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, reportJSON{
						RunID:     run.ID,
						Status:    string(run.Status),
						DataFile:  run.DataFile,
						StartedAt: run.StartedAt,
						Windows:   rows,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s), started %s\n", run.ID, run.Status, formatTimestamp(run.StartedAt))
				if len(rows) == 0 {
					fmt.Fprintln(out, "No processed windows recorded")
					return nil
				}
				table := make([][]string, len(rows))
				for i, row := range rows {
					table[i] = []string{row.Start, row.End, itoa(row.Documents), formatBetti(row.Betti)}
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Start", "End", "Documents", "Betti"},
					table,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				if withPairs {
					fmt.Fprintln(out, renderPairsTable(rows))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&withPairs, "pairs", false, "Include the persistence pairs of every window")
	return cmd
}

func loadReportRows(ctx context.Context, store *results.Store, runID string, withPairs bool) ([]reportWindowRow, error) {
	if !withPairs {
		series, err := store.BettiSeries(ctx, runID)
		if err != nil {
			return nil, err
		}
		rows := make([]reportWindowRow, 0, len(series))
		for _, point := range series {
			rows = append(rows, reportWindowRow{
				Start:     formatDate(point.Start),
				End:       formatDate(point.End),
				Documents: point.Documents,
				Betti:     []int(point.Betti),
			})
		}
		return rows, nil
	}

	records, err := store.Windows(ctx, runID)
	if err != nil {
		return nil, err
	}
	rows := make([]reportWindowRow, 0, len(records))
	for _, rec := range records {
		row := reportWindowRow{
			Start:     formatDate(rec.Start),
			End:       formatDate(rec.End),
			Documents: rec.Documents,
			Betti:     []int(rec.Betti),
			Pairs:     make([]reportPairRow, 0, len(rec.Pairs)),
		}
		for _, p := range rec.Pairs {
			row.Pairs = append(row.Pairs, newReportPair(p))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func newReportPair(p persistence.Pair) reportPairRow {
	row := reportPairRow{Dimension: p.Dimension, Birth: p.Birth}
	if !p.Essential() {
		death := p.Death
		row.Death = &death
	}
	return row
}

func renderPairsTable(rows []reportWindowRow) string {
	var table [][]string
	for _, row := range rows {
		for _, p := range row.Pairs {
			death := "inf"
			if p.Death != nil {
				death = formatValue(*p.Death)
			}
			table = append(table, []string{row.Start, "H" + itoa(p.Dimension), formatValue(p.Birth), death})
		}
	}
	if len(table) == 0 {
		return "No persistence pairs recorded"
	}
	return renderTable(
		[]string{"Window", "Dimension", "Birth", "Death"},
		table,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func resolveRun(ctx context.Context, store *results.Store, args []string) (*results.Run, error) {
	if len(args) > 0 {
		return store.GetRun(ctx, args[0])
	}
	run, err := store.LatestRun(ctx)
	if errors.Is(err, results.ErrNotFound) {
		return nil, errors.New("no runs recorded yet; start one with `collabtopo run`")
	}
	return run, err
}
