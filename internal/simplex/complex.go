package simplex

import (
	"cmp"
	"fmt"
	"slices"
)

// Simplex is a face tagged with its filtration value.
type Simplex struct {
	Face       Face
	Filtration float64
}

// Complex is a filtered simplicial complex with a declared dimension bound.
// It is closed under taking faces: inserting a simplex also inserts any
// missing sub-face.
type Complex struct {
	maxDimension int
	values       map[string]float64
	faces        map[string]Face
}

// NewComplex returns an empty complex bounded to faces of dimension at most
// maxDimension.
func NewComplex(maxDimension int) (*Complex, error) {
	if maxDimension < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, maxDimension)
	}
	return &Complex{
		maxDimension: maxDimension,
		values:       make(map[string]float64),
		faces:        make(map[string]Face),
	}, nil
}

// Insert adds f with filtration value v. Sub-faces that are not yet present
// are inserted with the same value; existing ones keep their value.
// Re-inserting a present face replaces its value.
func (c *Complex) Insert(f Face, v float64) error {
	if len(f) == 0 {
		return ErrEmptyFace
	}
	if f.Dimension() > c.maxDimension {
		return fmt.Errorf("%w: %s has dimension %d > %d", ErrFaceTooLarge, f, f.Dimension(), c.maxDimension)
	}
	c.insert(slices.Clone(f), v)
	return nil
}

func (c *Complex) insert(f Face, v float64) {
	key := f.Key()
	if _, ok := c.values[key]; ok {
		c.values[key] = v
		return
	}
	c.values[key] = v
	c.faces[key] = f
	for _, sub := range f.SubFaces() {
		if _, ok := c.values[sub.Key()]; !ok {
			c.insert(sub, v)
		}
	}
}

// MakeFiltrationNonDecreasing raises every simplex to the largest value among
// its faces. It is idempotent and returns the number of raised simplices.
func (c *Complex) MakeFiltrationNonDecreasing() int {
	return RepairMonotone(c.sortedFaces(), c.values)
}

// Validate returns ErrNonMonotone when some simplex has a lower value than one
// of its faces.
func (c *Complex) Validate() error {
	if f := CheckMonotone(c.sortedFaces(), c.values); f != nil {
		return fmt.Errorf("%w: %s", ErrNonMonotone, f)
	}
	return nil
}

// MaxDimension returns the declared dimension bound.
func (c *Complex) MaxDimension() int {
	return c.maxDimension
}

// Filtration returns the value of f.
func (c *Complex) Filtration(f Face) (float64, bool) {
	v, ok := c.values[f.Key()]
	return v, ok
}

// NumSimplices returns the number of faces of every dimension.
func (c *Complex) NumSimplices() int {
	return len(c.faces)
}

// NumVertices returns the number of 0-dimensional faces.
func (c *Complex) NumVertices() int {
	n := 0
	for _, f := range c.faces {
		if len(f) == 1 {
			n++
		}
	}
	return n
}

// Dimension returns the largest dimension present, or -1 for an empty complex.
func (c *Complex) Dimension() int {
	d := -1
	for _, f := range c.faces {
		d = max(d, f.Dimension())
	}
	return d
}

// Simplices returns every simplex in filtration order: by value, then by
// dimension so faces precede cofaces with equal value, then lexicographically.
func (c *Complex) Simplices() []Simplex {
	out := make([]Simplex, 0, len(c.faces))
	for key, f := range c.faces {
		out = append(out, Simplex{Face: f, Filtration: c.values[key]})
	}
	slices.SortFunc(out, func(a, b Simplex) int {
		if r := cmp.Compare(a.Filtration, b.Filtration); r != 0 {
			return r
		}
		return compareFaces(a.Face, b.Face)
	})
	return out
}

func (c *Complex) sortedFaces() []Face {
	out := make([]Face, 0, len(c.faces))
	for _, f := range c.faces {
		out = append(out, f)
	}
	slices.SortFunc(out, compareFaces)
	return out
}

// Assemble converts a count table into a monotone filtered complex bounded to
// maxDimension. counts is not modified.
func Assemble(counts *Counts, ceiling float64, maxDimension int) (*Complex, error) {
	cx, err := NewComplex(maxDimension)
	if err != nil {
		return nil, err
	}
	faces := counts.Faces()
	values := AssignFiltration(counts, ceiling)
	RepairMonotone(faces, values)

	for _, f := range faces {
		if err := cx.Insert(f, values[f.Key()]); err != nil {
			return nil, err
		}
	}
	// Sub-faces filled in by Insert may need another pass.
	cx.MakeFiltrationNonDecreasing()
	if err := cx.Validate(); err != nil {
		return nil, err
	}
	return cx, nil
}
