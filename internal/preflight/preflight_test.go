package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"collabtopo/internal/results"
	"collabtopo/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDataFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "documents.csv")
	testsupport.WriteCorpusCSV(t, csvPath, []testsupport.Row{testsupport.Doc("1", "2008-01-05", "A", "B")})

	if result := CheckDataFile("corpus", csvPath); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckDataFile("corpus", filepath.Join(dir, "missing.csv")); result.Passed {
		t.Fatal("expected failure for missing corpus")
	}
	if result := CheckDataFile("corpus", filepath.Join(dir, "documents.json")); result.Passed {
		t.Fatal("expected failure for unsupported extension")
	}
	if result := CheckDataFile("corpus", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckResultsStoreMissingPasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	result := CheckResultsStore("store", path)
	if !result.Passed {
		t.Fatalf("expected pass for missing database, got: %s", result.Detail)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("check must not create the database")
	}
}

func TestCheckOutputLock(t *testing.T) {
	dir := t.TempDir()
	if result := CheckOutputLock("lock", dir); !result.Passed {
		t.Fatalf("expected free lock, got: %s", result.Detail)
	}

	lock, err := results.AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer lock.Release()

	if result := CheckOutputLock("lock", dir); result.Passed {
		t.Fatal("expected held lock to fail the check")
	}
}

func TestRunAllReportsEveryCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	checks := RunAll(cfg)
	if len(checks) != 5 {
		t.Fatalf("expected 5 checks, got %d", len(checks))
	}
	failed := Failed(checks)
	if len(failed) != 1 || failed[0].Name != "Corpus file" {
		t.Fatalf("expected only the missing corpus to fail, got %+v", failed)
	}
}
