package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"collabtopo/internal/persistence"
)

// RecordWindow stores one processed window and its pairs atomically.
func (s *Store) RecordWindow(ctx context.Context, runID string, seq int, rec WindowRecord) error {
	ctx = ensureContext(ctx)
	betti, err := json.Marshal(bettiOrEmpty(rec.Betti))
	if err != nil {
		return fmt.Errorf("marshal betti: %w", err)
	}
	start := formatTime(rec.Start)

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin window tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO windows (
                run_id, seq, window_start, window_end, documents, vertices, simplices, betti_json, diagram_path
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, seq, start, formatTime(rec.End),
			rec.Documents, rec.Vertices, rec.Simplices,
			string(betti), nullableString(rec.DiagramPath),
		); err != nil {
			return fmt.Errorf("insert window: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO pairs (run_id, window_start, dimension, birth, death) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare pair insert: %w", err)
		}
		defer stmt.Close()
		for _, p := range rec.Pairs {
			var death any
			if !p.Essential() {
				death = p.Death
			}
			if _, err := stmt.ExecContext(ctx, runID, start, p.Dimension, p.Birth, death); err != nil {
				return fmt.Errorf("insert pair: %w", err)
			}
		}
		return tx.Commit()
	})
}

// Windows returns the stored windows of a run in processing order.
func (s *Store) Windows(ctx context.Context, runID string) ([]WindowRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT window_start, window_end, documents, vertices, simplices, betti_json, diagram_path
        FROM windows WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	defer rows.Close()

	var (
		records []WindowRecord
		starts  []string
	)
	for rows.Next() {
		var (
			startRaw, endRaw sql.NullString
			bettiRaw         string
			diagramPath      sql.NullString
			rec              WindowRecord
		)
		if err := rows.Scan(&startRaw, &endRaw, &rec.Documents, &rec.Vertices, &rec.Simplices, &bettiRaw, &diagramPath); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		if err := json.Unmarshal([]byte(bettiRaw), &rec.Betti); err != nil {
			return nil, fmt.Errorf("decode betti: %w", err)
		}
		rec.Start = parseTime(startRaw)
		rec.End = parseTime(endRaw)
		rec.DiagramPath = diagramPath.String
		records = append(records, rec)
		starts = append(starts, startRaw.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate windows: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("close window rows: %w", err)
	}

	for i := range records {
		pairs, err := s.pairs(ctx, runID, starts[i])
		if err != nil {
			return nil, err
		}
		records[i].Pairs = pairs
	}
	return records, nil
}

// BettiSeries returns the Betti numbers of every stored window of a run.
func (s *Store) BettiSeries(ctx context.Context, runID string) ([]BettiPoint, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT window_start, window_end, documents, betti_json
        FROM windows WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("betti series: %w", err)
	}
	defer rows.Close()

	var series []BettiPoint
	for rows.Next() {
		var (
			startRaw, endRaw sql.NullString
			bettiRaw         string
			point            BettiPoint
		)
		if err := rows.Scan(&startRaw, &endRaw, &point.Documents, &bettiRaw); err != nil {
			return nil, fmt.Errorf("scan betti point: %w", err)
		}
		if err := json.Unmarshal([]byte(bettiRaw), &point.Betti); err != nil {
			return nil, fmt.Errorf("decode betti: %w", err)
		}
		point.Start = parseTime(startRaw)
		point.End = parseTime(endRaw)
		series = append(series, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate betti series: %w", err)
	}
	return series, nil
}

func (s *Store) pairs(ctx context.Context, runID, start string) ([]persistence.Pair, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dimension, birth, death FROM pairs
        WHERE run_id = ? AND window_start = ? ORDER BY rowid`, runID, start)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	defer rows.Close()

	var pairs []persistence.Pair
	for rows.Next() {
		var (
			p     persistence.Pair
			death sql.NullFloat64
		)
		if err := rows.Scan(&p.Dimension, &p.Birth, &death); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		p.Death = math.Inf(1)
		if death.Valid {
			p.Death = death.Float64
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pairs: %w", err)
	}
	return pairs, nil
}

func bettiOrEmpty(b persistence.Betti) persistence.Betti {
	if b == nil {
		return persistence.Betti{}
	}
	return b
}
