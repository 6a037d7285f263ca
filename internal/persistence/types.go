package persistence

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"

	"collabtopo/internal/simplex"
)

var (
	// ErrNilComplex is returned when Compute receives a nil complex.
	ErrNilComplex = errors.New("persistence: complex is nil")

	// ErrNonMonotone is returned for complexes violating the monotone
	// filtration contract.
	ErrNonMonotone = errors.New("persistence: filtration is not monotone")
)

// Pair is one persistence interval. Death is +Inf for essential classes.
type Pair struct {
	Dimension int
	Birth     float64
	Death     float64
}

// Essential reports whether the class never dies within the filtration.
func (p Pair) Essential() bool {
	return math.IsInf(p.Death, 1)
}

// Persistence returns Death - Birth (+Inf for essential classes).
func (p Pair) Persistence() float64 {
	return p.Death - p.Birth
}

// Betti holds Betti numbers indexed by homology dimension.
type Betti []int

// Result is the output of one persistence computation.
type Result struct {
	Pairs []Pair
	Betti Betti
}

// Engine computes persistence pairs and Betti numbers of a complex.
type Engine interface {
	Compute(ctx context.Context, cx *simplex.Complex) (Result, error)
}

// SortPairs orders pairs by dimension, birth, then death.
func SortPairs(pairs []Pair) {
	slices.SortFunc(pairs, func(a, b Pair) int {
		if a.Dimension != b.Dimension {
			return a.Dimension - b.Dimension
		}
		if r := cmp.Compare(a.Birth, b.Birth); r != 0 {
			return r
		}
		return cmp.Compare(a.Death, b.Death)
	})
}

// BettiFromPairs counts essential classes per dimension for dimensions
// 0..maxDimension.
func BettiFromPairs(pairs []Pair, maxDimension int) Betti {
	if maxDimension < 0 {
		return Betti{}
	}
	betti := make(Betti, maxDimension+1)
	for _, p := range pairs {
		if p.Essential() && p.Dimension >= 0 && p.Dimension <= maxDimension {
			betti[p.Dimension]++
		}
	}
	return betti
}
