package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const runColumns = "id, status, data_file, output_dir, config_json, processed, skipped, error_message, started_at, finished_at"

// BeginRun inserts a new run in the running state.
func (s *Store) BeginRun(ctx context.Context, spec RunSpec) (*Run, error) {
	id := uuid.NewString()
	started := time.Now().UTC()

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (id, status, data_file, output_dir, config_json, started_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		StatusRunning,
		nullableString(spec.DataFile),
		nullableString(spec.OutputDir),
		nullableString(spec.ConfigJSON),
		formatTime(started),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// FinishRun records the final status and window counters of a run.
func (s *Store) FinishRun(ctx context.Context, id string, status Status, processed, skipped int, runErr error) error {
	var message any
	if runErr != nil {
		message = runErr.Error()
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE runs SET status = ?, processed = ?, skipped = ?, error_message = ?, finished_at = ?
        WHERE id = ?`,
		status,
		processed,
		skipped,
		message,
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetRun fetches a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1")
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first. A non-positive limit returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its windows.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.execWithRetry(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id           string
		status       string
		dataFile     sql.NullString
		outputDir    sql.NullString
		configJSON   sql.NullString
		processed    int
		skipped      int
		errorMessage sql.NullString
		startedRaw   sql.NullString
		finishedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&status,
		&dataFile,
		&outputDir,
		&configJSON,
		&processed,
		&skipped,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	return &Run{
		ID:           id,
		Status:       Status(status),
		DataFile:     dataFile.String,
		OutputDir:    outputDir.String,
		ConfigJSON:   configJSON.String,
		Processed:    processed,
		Skipped:      skipped,
		ErrorMessage: errorMessage.String,
		StartedAt:    parseTime(startedRaw),
		FinishedAt:   parseTime(finishedRaw),
	}, nil
}
