package faults_test

import (
	"errors"
	"strings"
	"testing"

	"collabtopo/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrEngine, "persistence", "reduce", "column failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrEngine) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"persistence", "reduce", "column failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(faults.ErrConfiguration, "", "", "", nil)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindMapping(t *testing.T) {
	cases := map[string]error{
		"configuration": faults.Wrap(faults.ErrConfiguration, "config", "validate", "bad", nil),
		"ingestion":     faults.Wrap(faults.ErrIngestion, "corpus", "parse", "bad row", nil),
		"engine":        faults.Wrap(faults.ErrEngine, "persistence", "compute", "", nil),
		"render":        faults.Wrap(faults.ErrRender, "diagram", "save", "", nil),
		"storage":       faults.Wrap(faults.ErrStorage, "results", "insert", "", nil),
		"unknown":       errors.New("plain"),
	}
	for want, err := range cases {
		if got := faults.Kind(err); got != want {
			t.Fatalf("Kind(%v) = %q, want %q", err, got, want)
		}
	}
	if got := faults.Kind(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}

func TestFatal(t *testing.T) {
	if !faults.Fatal(faults.Wrap(faults.ErrIngestion, "corpus", "load", "", nil)) {
		t.Fatal("expected ingestion error to be fatal")
	}
	if faults.Fatal(faults.Wrap(faults.ErrRender, "diagram", "save", "", nil)) {
		t.Fatal("expected render error to be non-fatal at startup")
	}
}
