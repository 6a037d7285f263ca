package corpus

import (
	"fmt"
	"slices"
	"strings"
)

// Category is an arXiv subject code such as "math.CO".
type Category string

// KnownCategories lists the subject codes accepted in a Selection.
var KnownCategories = []Category{
	"math.AC", "math.AG", "math.AP", "math.AT", "math.CA", "math.CO",
	"math.CT", "math.CV", "math.DG", "math.DS", "math.FA", "math.GM",
	"math.GN", "math.GR", "math.GT", "math.HO", "math.IT", "math.KT",
	"math.LO", "math.MG", "math.MP", "math.NA", "math.NT", "math.OA",
	"math.OC", "math.PR", "math.QA", "math.RA", "math.RT", "math.SG",
	"math.SP", "math.ST",
}

// allKeyword is accepted in configuration files as a synonym for Unfiltered.
const allKeyword = "ALL"

// ParseCategory validates a subject code against KnownCategories. Matching is
// case-insensitive on the subject prefix and exact on the suffix.
func ParseCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	for _, known := range KnownCategories {
		if strings.EqualFold(string(known), trimmed) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Selection chooses which categories pass the document filter.
// The zero value is Unfiltered.
type Selection struct {
	codes []Category
}

// Unfiltered returns a selection that bypasses category filtering.
func Unfiltered() Selection {
	return Selection{}
}

// RestrictedTo returns a selection admitting only the given categories.
// Calling it without arguments yields Unfiltered.
func RestrictedTo(codes ...Category) Selection {
	if len(codes) == 0 {
		return Unfiltered()
	}
	out := make([]Category, 0, len(codes))
	for _, code := range codes {
		if !slices.Contains(out, code) {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return Selection{codes: out}
}

// ParseSelection converts configuration values into a Selection. An empty list
// or any "ALL" entry means Unfiltered.
func ParseSelection(values []string) (Selection, error) {
	codes := make([]Category, 0, len(values))
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), allKeyword) {
			return Unfiltered(), nil
		}
		code, err := ParseCategory(value)
		if err != nil {
			return Selection{}, err
		}
		codes = append(codes, code)
	}
	return RestrictedTo(codes...), nil
}

// IsUnfiltered reports whether the selection bypasses category filtering.
func (s Selection) IsUnfiltered() bool {
	return len(s.codes) == 0
}

// Allows reports whether a document with category c passes the selection.
func (s Selection) Allows(c Category) bool {
	if s.IsUnfiltered() {
		return true
	}
	_, found := slices.BinarySearch(s.codes, c)
	return found
}

// Codes returns the restricted category codes, or nil when unfiltered.
func (s Selection) Codes() []Category {
	if s.IsUnfiltered() {
		return nil
	}
	return slices.Clone(s.codes)
}

func (s Selection) String() string {
	if s.IsUnfiltered() {
		return "Not filtered"
	}
	parts := make([]string, len(s.codes))
	for i, code := range s.codes {
		parts[i] = string(code)
	}
	return strings.Join(parts, ",")
}
