package simplex

import (
	"fmt"
	"slices"
	"strings"
)

// CountingMode selects how often a document contributes to a face.
type CountingMode string

const (
	// CountLiteral walks depths d = 0..k-1 for a document with k authors and
	// counts every combination of size min(d+1, MaxDimension+1). Once d+1
	// passes MaxDimension+1 the size stops growing, so each top-size face is
	// counted k-MaxDimension times by a single document.
	CountLiteral CountingMode = "literal"

	// CountDistinct counts each face at most once per document.
	CountDistinct CountingMode = "distinct"
)

// ParseCountingMode converts a configuration value into a CountingMode.
// The empty string selects CountLiteral.
func ParseCountingMode(value string) (CountingMode, error) {
	switch CountingMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", CountLiteral:
		return CountLiteral, nil
	case CountDistinct:
		return CountDistinct, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCountingMode, value)
	}
}

// Counts is the window-scoped occurrence table of faces.
type Counts struct {
	faces  map[string]Face
	counts map[string]int
}

// NewCounts returns an empty table.
func NewCounts() *Counts {
	return &Counts{faces: make(map[string]Face), counts: make(map[string]int)}
}

// Add increments the count of f by n. f must already be sorted.
func (c *Counts) Add(f Face, n int) {
	key := f.Key()
	if _, ok := c.faces[key]; !ok {
		c.faces[key] = slices.Clone(f)
	}
	c.counts[key] += n
}

// Count returns the occurrence count of f (0 when absent).
func (c *Counts) Count(f Face) int {
	return c.counts[f.Key()]
}

// Len returns the number of distinct faces.
func (c *Counts) Len() int {
	return len(c.faces)
}

// Faces returns every counted face ordered by dimension, then lexicographically.
func (c *Counts) Faces() []Face {
	out := make([]Face, 0, len(c.faces))
	for _, f := range c.faces {
		out = append(out, f)
	}
	slices.SortFunc(out, compareFaces)
	return out
}

// MaxFaceSize returns the number of vertices of the largest counted face.
func (c *Counts) MaxFaceSize() int {
	size := 0
	for _, f := range c.faces {
		size = max(size, len(f))
	}
	return size
}

// Enumerator generates candidate faces from author sets.
type Enumerator struct {
	maxDimension int
	mode         CountingMode
}

// NewEnumerator validates the dimension bound and counting mode.
func NewEnumerator(maxDimension int, mode CountingMode) (*Enumerator, error) {
	if maxDimension < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, maxDimension)
	}
	if mode == "" {
		mode = CountLiteral
	}
	if mode != CountLiteral && mode != CountDistinct {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountingMode, mode)
	}
	return &Enumerator{maxDimension: maxDimension, mode: mode}, nil
}

// MaxDimension returns the face dimension bound.
func (e *Enumerator) MaxDimension() int {
	return e.maxDimension
}

// Mode returns the counting mode.
func (e *Enumerator) Mode() CountingMode {
	return e.mode
}

// Count builds a fresh table from the author sets of one window.
func (e *Enumerator) Count(authorSets [][]string) *Counts {
	counts := NewCounts()
	for _, authors := range authorSets {
		e.AddDocument(counts, authors)
	}
	return counts
}

// AddDocument adds the faces of one document to counts. Authors are
// deduplicated and sorted first, so every generated combination is already a
// sorted face.
func (e *Enumerator) AddDocument(counts *Counts, authors []string) {
	vertices := NewFace(authors...)
	k := len(vertices)
	top := e.maxDimension + 1
	increment := func(combo []string) { counts.Add(Face(combo), 1) }

	switch e.mode {
	case CountDistinct:
		for size := 1; size <= min(k, top); size++ {
			Combinations(vertices, size, increment)
		}
	default:
		for depth := 0; depth < k; depth++ {
			Combinations(vertices, min(depth+1, top), increment)
		}
	}
}
