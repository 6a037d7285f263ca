package persistence_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"collabtopo/internal/persistence"
	"collabtopo/internal/simplex"
)

var inf = math.Inf(1)

func triangle(t *testing.T, maxDim int, filled bool) *simplex.Complex {
	t.Helper()
	cx, err := simplex.NewComplex(maxDim)
	require.NoError(t, err)
	for _, v := range []string{"A", "B", "C"} {
		require.NoError(t, cx.Insert(simplex.NewFace(v), 0))
	}
	require.NoError(t, cx.Insert(simplex.NewFace("A", "B"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("B", "C"), 2))
	require.NoError(t, cx.Insert(simplex.NewFace("A", "C"), 3))
	if filled {
		require.NoError(t, cx.Insert(simplex.NewFace("A", "B", "C"), 4))
	}
	return cx
}

func TestReductionEngine_TableDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		maxDim    int
		filled    bool
		wantPairs []persistence.Pair
		wantBetti persistence.Betti
	}{
		{
			name:   "HollowTriangle",
			maxDim: 1,
			wantPairs: []persistence.Pair{
				{Dimension: 0, Birth: 0, Death: 1},
				{Dimension: 0, Birth: 0, Death: 2},
				{Dimension: 0, Birth: 0, Death: inf},
				{Dimension: 1, Birth: 3, Death: inf},
			},
			wantBetti: persistence.Betti{1, 1},
		},
		{
			name:   "FilledTriangle",
			maxDim: 2,
			filled: true,
			wantPairs: []persistence.Pair{
				{Dimension: 0, Birth: 0, Death: 1},
				{Dimension: 0, Birth: 0, Death: 2},
				{Dimension: 0, Birth: 0, Death: inf},
				{Dimension: 1, Birth: 3, Death: 4},
			},
			wantBetti: persistence.Betti{1, 0, 0},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := persistence.NewReductionEngine(0).Compute(context.Background(), triangle(t, tc.maxDim, tc.filled))
			require.NoError(t, err)
			require.Equal(t, tc.wantPairs, res.Pairs)
			require.Equal(t, tc.wantBetti, res.Betti)
		})
	}
}

func TestReductionEngineDropsZeroPersistence(t *testing.T) {
	t.Parallel()

	cx, err := simplex.NewComplex(1)
	require.NoError(t, err)
	require.NoError(t, cx.Insert(simplex.NewFace("A", "B"), 7))

	res, err := persistence.NewReductionEngine(0).Compute(context.Background(), cx)
	require.NoError(t, err)
	require.Equal(t, []persistence.Pair{{Dimension: 0, Birth: 7, Death: inf}}, res.Pairs)

	res, err = persistence.NewReductionEngine(-1).Compute(context.Background(), cx)
	require.NoError(t, err)
	require.Len(t, res.Pairs, 2, "negative threshold keeps zero-length pairs")
	require.Equal(t, persistence.Betti{1, 0}, res.Betti)
}

func TestReductionEngineRejectsNonMonotone(t *testing.T) {
	t.Parallel()

	cx, err := simplex.NewComplex(1)
	require.NoError(t, err)
	require.NoError(t, cx.Insert(simplex.NewFace("A"), 5))
	require.NoError(t, cx.Insert(simplex.NewFace("B"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("A", "B"), 2))

	_, err = persistence.NewReductionEngine(0).Compute(context.Background(), cx)
	require.ErrorIs(t, err, persistence.ErrNonMonotone)
	require.ErrorIs(t, err, simplex.ErrNonMonotone)

	_, err = persistence.NewReductionEngine(0).Compute(context.Background(), nil)
	require.ErrorIs(t, err, persistence.ErrNilComplex)
}

func TestReductionEngineHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := persistence.NewReductionEngine(0).Compute(ctx, triangle(t, 1, false))
	require.ErrorIs(t, err, context.Canceled)
}

func TestReductionEngineOnAssembledComplex(t *testing.T) {
	t.Parallel()

	e, err := simplex.NewEnumerator(2, simplex.CountLiteral)
	require.NoError(t, err)
	counts := e.Count([][]string{{"A", "B"}, {"A", "B", "C"}, {"D", "E"}})
	cx, err := simplex.Assemble(counts, simplex.DefaultCeiling, 2)
	require.NoError(t, err)

	res, err := persistence.NewReductionEngine(0).Compute(context.Background(), cx)
	require.NoError(t, err)
	require.Equal(t, persistence.Betti{2, 0, 0}, res.Betti, "two components, no cycles")
	for _, p := range res.Pairs {
		require.LessOrEqual(t, p.Birth, p.Death)
	}
}

func TestBettiFromPairs(t *testing.T) {
	t.Parallel()

	pairs := []persistence.Pair{
		{Dimension: 0, Birth: 0, Death: inf},
		{Dimension: 0, Birth: 1, Death: 2},
		{Dimension: 1, Birth: 3, Death: inf},
		{Dimension: 3, Birth: 3, Death: inf},
	}
	require.Equal(t, persistence.Betti{1, 1}, persistence.BettiFromPairs(pairs, 1))
	require.Equal(t, persistence.Betti{}, persistence.BettiFromPairs(pairs, -1))
}
