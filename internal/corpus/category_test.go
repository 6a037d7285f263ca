package corpus_test

import (
	"testing"

	"collabtopo/internal/corpus"
)

func TestParseSelection(t *testing.T) {
	sel, err := corpus.ParseSelection(nil)
	if err != nil {
		t.Fatalf("ParseSelection(nil): %v", err)
	}
	if !sel.IsUnfiltered() {
		t.Fatal("expected empty list to be unfiltered")
	}

	sel, err = corpus.ParseSelection([]string{"math.CO", "ALL"})
	if err != nil {
		t.Fatalf("ParseSelection with ALL: %v", err)
	}
	if !sel.IsUnfiltered() {
		t.Fatal("expected ALL to mean unfiltered")
	}

	sel, err = corpus.ParseSelection([]string{"math.CO", " MATH.AT ", "math.CO"})
	if err != nil {
		t.Fatalf("ParseSelection: %v", err)
	}
	if sel.IsUnfiltered() {
		t.Fatal("expected restricted selection")
	}
	codes := sel.Codes()
	if len(codes) != 2 || codes[0] != "math.AT" || codes[1] != "math.CO" {
		t.Fatalf("unexpected codes %v", codes)
	}
	if !sel.Allows("math.CO") || sel.Allows("math.GT") {
		t.Fatalf("unexpected Allows behaviour for %v", codes)
	}
	if sel.String() != "math.AT,math.CO" {
		t.Fatalf("unexpected String(): %q", sel.String())
	}

	if _, err := corpus.ParseSelection([]string{"cs.LG"}); err == nil {
		t.Fatal("expected unknown category to be rejected")
	}
}

func TestUnfilteredAllowsEverything(t *testing.T) {
	sel := corpus.Unfiltered()
	for _, c := range []corpus.Category{"math.CO", "cs.LG", ""} {
		if !sel.Allows(c) {
			t.Fatalf("expected unfiltered selection to allow %q", c)
		}
	}
	if sel.Codes() != nil {
		t.Fatal("expected nil codes for unfiltered selection")
	}
	if corpus.RestrictedTo().IsUnfiltered() != true {
		t.Fatal("expected RestrictedTo() without codes to be unfiltered")
	}
}
