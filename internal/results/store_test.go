package results_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"collabtopo/internal/persistence"
	"collabtopo/internal/results"
)

func openStore(t *testing.T) *results.Store {
	t.Helper()
	store, err := results.Open(filepath.Join(t.TempDir(), "nested", "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBeginAndFinishRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, results.RunSpec{DataFile: "data/documents.csv", OutputDir: "output/20240101_000000"})
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if run.ID == "" || run.Status != results.StatusRunning {
		t.Fatalf("unexpected run: %#v", run)
	}
	if run.Finished() {
		t.Fatal("new run should not be finished")
	}

	if err := store.FinishRun(ctx, run.ID, results.StatusFailed, 3, 2, errors.New("engine: boom")); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}
	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Status != results.StatusFailed || fetched.Processed != 3 || fetched.Skipped != 2 {
		t.Fatalf("unexpected finished run: %#v", fetched)
	}
	if fetched.ErrorMessage != "engine: boom" {
		t.Fatalf("expected error message, got %q", fetched.ErrorMessage)
	}
	if fetched.FinishedAt.IsZero() || fetched.Duration() < 0 {
		t.Fatalf("expected finish time, got %#v", fetched)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	store := openStore(t)
	err := store.FinishRun(context.Background(), "missing", results.StatusCompleted, 0, 0, nil)
	if !errors.Is(err, results.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLatestRunAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.LatestRun(ctx); !errors.Is(err, results.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	first, err := store.BeginRun(ctx, results.RunSpec{})
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	second, err := store.BeginRun(ctx, results.RunSpec{})
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	latest, err := store.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected latest %s, got %s", second.ID, latest.ID)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("unexpected run order: %#v", runs)
	}

	limited, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected one run, got %d", len(limited))
	}

	if err := store.DeleteRun(ctx, first.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if _, err := store.GetRun(ctx, first.ID); !errors.Is(err, results.ErrNotFound) {
		t.Fatalf("expected deleted run to be gone, got %v", err)
	}
}

func TestRecordWindowRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, results.RunSpec{})
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	records := []results.WindowRecord{
		{
			Start:       day(2008, 1, 1),
			End:         day(2008, 12, 31),
			Documents:   2,
			Vertices:    3,
			Simplices:   6,
			Betti:       persistence.Betti{1, 0},
			DiagramPath: "output/run/persistence_diagram_2008_1_1.png",
			Pairs: []persistence.Pair{
				{Dimension: 0, Birth: 48, Death: 49},
				{Dimension: 0, Birth: 48, Death: math.Inf(1)},
			},
		},
		{
			Start:     day(2008, 1, 31),
			End:       day(2009, 1, 30),
			Documents: 1,
			Vertices:  2,
			Simplices: 3,
			Betti:     persistence.Betti{1, 0},
		},
	}
	for i, rec := range records {
		if err := store.RecordWindow(ctx, run.ID, i, rec); err != nil {
			t.Fatalf("RecordWindow %d failed: %v", i, err)
		}
	}

	stored, err := store.Windows(ctx, run.ID)
	if err != nil {
		t.Fatalf("Windows failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(stored))
	}
	if !stored[0].Start.Equal(records[0].Start) || stored[0].DiagramPath != records[0].DiagramPath {
		t.Fatalf("unexpected first window: %#v", stored[0])
	}
	if len(stored[0].Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %#v", stored[0].Pairs)
	}
	if stored[0].Pairs[0].Death != 49 || !stored[0].Pairs[1].Essential() {
		t.Fatalf("unexpected pairs: %#v", stored[0].Pairs)
	}
	if len(stored[1].Pairs) != 0 {
		t.Fatalf("expected no pairs for second window, got %#v", stored[1].Pairs)
	}

	series, err := store.BettiSeries(ctx, run.ID)
	if err != nil {
		t.Fatalf("BettiSeries failed: %v", err)
	}
	if len(series) != 2 || series[1].Documents != 1 || series[1].Betti[0] != 1 {
		t.Fatalf("unexpected series: %#v", series)
	}

	if err := store.RecordWindow(ctx, run.ID, 2, records[0]); err == nil {
		t.Fatal("expected duplicate window start to be rejected")
	}
}

func TestDeleteRunCascadesToWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	store, err := results.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()

	run, err := store.BeginRun(ctx, results.RunSpec{})
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	rec := results.WindowRecord{
		Start:     day(2008, 1, 1),
		End:       day(2008, 12, 31),
		Documents: 1,
		Betti:     persistence.Betti{1},
		Pairs:     []persistence.Pair{{Dimension: 0, Birth: 48, Death: math.Inf(1)}},
	}
	if err := store.RecordWindow(ctx, run.ID, 0, rec); err != nil {
		t.Fatalf("RecordWindow failed: %v", err)
	}
	if err := store.RecordWindow(ctx, "no-such-run", 0, rec); err == nil {
		t.Fatal("expected foreign key violation for unknown run")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := results.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if err := reopened.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	windows, err := reopened.Windows(ctx, run.ID)
	if err != nil {
		t.Fatalf("Windows failed: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("expected windows removed with their run, got %#v", windows)
	}
	if err := reopened.RecordWindow(ctx, run.ID, 0, rec); err == nil {
		t.Fatal("expected foreign key violation for deleted run")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	store, err := results.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	run, err := store.BeginRun(context.Background(), results.RunSpec{ConfigJSON: `{"complex":{}}`})
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := results.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	fetched, err := reopened.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun after reopen failed: %v", err)
	}
	if fetched.ConfigJSON != `{"complex":{}}` {
		t.Fatalf("unexpected config snapshot %q", fetched.ConfigJSON)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := results.Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	lock, err := results.AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	if _, err := results.AcquireLock(dir); !errors.Is(err, results.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	again, err := results.AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock after release failed: %v", err)
	}
	_ = again.Release()
}
