package testsupport

import (
	"context"
	"testing"

	"collabtopo/internal/config"
	"collabtopo/internal/results"
)

// MustOpenStore opens a results.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *results.Store {
	t.Helper()

	store, err := results.Open(cfg.Paths.ResultsDB)
	if err != nil {
		t.Fatalf("results.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// BeginRun starts a run record for tests using the provided store.
func BeginRun(t testing.TB, store *results.Store) *results.Run {
	t.Helper()

	run, err := store.BeginRun(context.Background(), results.RunSpec{DataFile: "fixture.csv"})
	if err != nil {
		t.Fatalf("store.BeginRun: %v", err)
	}
	return run
}
