package persistence

import (
	"context"
	"fmt"
	"math"

	"collabtopo/internal/simplex"
)

// cancelCheckInterval bounds how many columns are reduced between context checks.
const cancelCheckInterval = 1024

// ReductionEngine is the default Engine.
type ReductionEngine struct {
	minPersistence float64
}

// NewReductionEngine returns an engine that drops finite pairs whose
// persistence is not strictly greater than minPersistence. Pass a negative
// value to keep zero-length pairs.
func NewReductionEngine(minPersistence float64) *ReductionEngine {
	return &ReductionEngine{minPersistence: minPersistence}
}

// Compute reduces the boundary matrix of cx over Z/2. Persistence is
// computed in every dimension up to and including the declared maximum.
func (e *ReductionEngine) Compute(ctx context.Context, cx *simplex.Complex) (Result, error) {
	if cx == nil {
		return Result{}, ErrNilComplex
	}
	if err := cx.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNonMonotone, err)
	}

	simplices := cx.Simplices()
	columns, err := boundaryColumns(simplices)
	if err != nil {
		return Result{}, err
	}

	pivotOf := make(map[int]int, len(columns))
	for j := range columns {
		if j%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		col := columns[j]
		for len(col) > 0 {
			other, ok := pivotOf[col[len(col)-1]]
			if !ok {
				break
			}
			col = addColumns(col, columns[other])
		}
		columns[j] = col
		if len(col) > 0 {
			pivotOf[col[len(col)-1]] = j
		}
	}

	pairs := make([]Pair, 0, len(simplices))
	for j, col := range columns {
		if len(col) == 0 {
			continue
		}
		birth := simplices[col[len(col)-1]]
		p := Pair{
			Dimension: birth.Face.Dimension(),
			Birth:     birth.Filtration,
			Death:     simplices[j].Filtration,
		}
		if p.Persistence() > e.minPersistence {
			pairs = append(pairs, p)
		}
	}
	for i, col := range columns {
		if len(col) != 0 {
			continue
		}
		if _, killed := pivotOf[i]; killed {
			continue
		}
		pairs = append(pairs, Pair{
			Dimension: simplices[i].Face.Dimension(),
			Birth:     simplices[i].Filtration,
			Death:     math.Inf(1),
		})
	}
	SortPairs(pairs)

	return Result{Pairs: pairs, Betti: BettiFromPairs(pairs, cx.MaxDimension())}, nil
}

// boundaryColumns returns, for every simplex, the ascending positions of its
// codimension-one faces in the filtration order.
func boundaryColumns(simplices []simplex.Simplex) ([][]int, error) {
	position := make(map[string]int, len(simplices))
	for i, s := range simplices {
		position[s.Face.Key()] = i
	}
	columns := make([][]int, len(simplices))
	for j, s := range simplices {
		subs := s.Face.SubFaces()
		if len(subs) == 0 {
			continue
		}
		col := make([]int, 0, len(subs))
		for _, sub := range subs {
			i, ok := position[sub.Key()]
			if !ok {
				return nil, fmt.Errorf("persistence: face %s of %s missing from complex", sub, s.Face)
			}
			if i >= j {
				return nil, fmt.Errorf("%w: face %s enters after %s", ErrNonMonotone, sub, s.Face)
			}
			col = append(col, i)
		}
		sortInts(col)
		columns[j] = col
	}
	return columns, nil
}

// addColumns returns the symmetric difference of two ascending index lists,
// i.e. their sum over Z/2.
func addColumns(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// sortInts is an insertion sort; boundary columns hold at most
// MaxDimension+1 entries.
func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for k := i; k > 0 && xs[k] < xs[k-1]; k-- {
			xs[k], xs[k-1] = xs[k-1], xs[k]
		}
	}
}
