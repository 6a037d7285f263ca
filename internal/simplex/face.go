package simplex

import (
	"slices"
	"strings"
)

// keySeparator cannot occur in normalized author identifiers.
const keySeparator = "\x1f"

// Face is a sorted tuple of distinct vertex identifiers. Two faces are equal
// when their sorted tuples are equal.
type Face []string

// NewFace sorts and deduplicates vertices into a Face. The input is not
// modified.
func NewFace(vertices ...string) Face {
	f := slices.Clone(vertices)
	slices.Sort(f)
	return Face(slices.Compact(f))
}

// Key is the canonical map key of the face.
func (f Face) Key() string {
	return strings.Join(f, keySeparator)
}

// Dimension is the number of vertices minus one.
func (f Face) Dimension() int {
	return len(f) - 1
}

// SubFaces returns the codimension-one faces of f in lexicographic order.
// Vertices have no sub-faces.
func (f Face) SubFaces() []Face {
	if len(f) <= 1 {
		return nil
	}
	out := make([]Face, 0, len(f))
	for skip := len(f) - 1; skip >= 0; skip-- {
		sub := make(Face, 0, len(f)-1)
		sub = append(sub, f[:skip]...)
		sub = append(sub, f[skip+1:]...)
		out = append(out, sub)
	}
	return out
}

func (f Face) String() string {
	return "{" + strings.Join(f, ",") + "}"
}

// FaceFromKey reverses Face.Key.
func FaceFromKey(key string) Face {
	if key == "" {
		return Face{}
	}
	return Face(strings.Split(key, keySeparator))
}

// compareFaces orders by dimension, then lexicographically.
func compareFaces(a, b Face) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return slices.Compare(a, b)
}

// Combinations calls fn with every size-element subset of items in
// lexicographic index order. The slice handed to fn is reused between calls;
// callers that retain it must copy it. Sizes outside 1..len(items) produce no
// calls.
func Combinations(items []string, size int, fn func([]string)) {
	n := len(items)
	if size <= 0 || size > n {
		return
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	buf := make([]string, size)
	for {
		for i, j := range idx {
			buf[i] = items[j]
		}
		fn(buf)

		// advance the rightmost index that still has room
		i := size - 1
		for i >= 0 && idx[i] == n-size+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
