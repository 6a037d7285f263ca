package simplex_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"collabtopo/internal/simplex"
)

func TestComplexInsertClosesUnderFaces(t *testing.T) {
	t.Parallel()

	cx, err := simplex.NewComplex(2)
	require.NoError(t, err)
	require.NoError(t, cx.Insert(simplex.NewFace("A", "B", "C"), 3))
	require.Equal(t, 7, cx.NumSimplices())
	require.Equal(t, 3, cx.NumVertices())
	require.Equal(t, 2, cx.Dimension())

	v, ok := cx.Filtration(simplex.NewFace("A"))
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	// existing sub-faces keep their value
	require.NoError(t, cx.Insert(simplex.NewFace("D"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("C", "D"), 2))
	v, _ = cx.Filtration(simplex.NewFace("D"))
	require.Equal(t, 1.0, v)

	err = cx.Insert(simplex.NewFace("A", "B", "C", "D"), 4)
	require.ErrorIs(t, err, simplex.ErrFaceTooLarge)
	require.ErrorIs(t, cx.Insert(simplex.Face{}, 1), simplex.ErrEmptyFace)

	_, err = simplex.NewComplex(-2)
	require.ErrorIs(t, err, simplex.ErrInvalidDimension)
}

func TestComplexValidateAndRepair(t *testing.T) {
	t.Parallel()

	cx, err := simplex.NewComplex(1)
	require.NoError(t, err)
	require.NoError(t, cx.Insert(simplex.NewFace("A"), 5))
	require.NoError(t, cx.Insert(simplex.NewFace("B"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("A", "B"), 2))
	require.ErrorIs(t, cx.Validate(), simplex.ErrNonMonotone)

	require.Equal(t, 1, cx.MakeFiltrationNonDecreasing())
	require.NoError(t, cx.Validate())
	v, _ := cx.Filtration(simplex.NewFace("A", "B"))
	require.Equal(t, 5.0, v)
	require.Equal(t, 0, cx.MakeFiltrationNonDecreasing(), "repair is idempotent")
}

func TestComplexSimplicesFiltrationOrder(t *testing.T) {
	t.Parallel()

	cx, err := simplex.NewComplex(1)
	require.NoError(t, err)
	require.NoError(t, cx.Insert(simplex.NewFace("A"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("B"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("A", "B"), 1))
	require.NoError(t, cx.Insert(simplex.NewFace("C"), 0))

	got := cx.Simplices()
	require.Len(t, got, 4)
	require.Equal(t, simplex.Face{"C"}, got[0].Face)
	require.Equal(t, simplex.Face{"A"}, got[1].Face)
	require.Equal(t, simplex.Face{"B"}, got[2].Face)
	require.Equal(t, simplex.Face{"A", "B"}, got[3].Face)
}

func TestAssembleMonotoneInvariant(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	pool := authors(12)
	for _, mode := range []simplex.CountingMode{simplex.CountLiteral, simplex.CountDistinct} {
		for maxDim := 0; maxDim <= 3; maxDim++ {
			docs := make([][]string, 40)
			for i := range docs {
				k := 1 + rng.IntN(8)
				perm := rng.Perm(len(pool))
				doc := make([]string, k)
				for j := range doc {
					doc[j] = pool[perm[j]]
				}
				docs[i] = doc
			}
			e, err := simplex.NewEnumerator(maxDim, mode)
			require.NoError(t, err)
			counts := e.Count(docs)
			cx, err := simplex.Assemble(counts, simplex.DefaultCeiling, maxDim)
			require.NoError(t, err)
			require.Equal(t, counts.Len(), cx.NumSimplices(), "counted faces are already closed")

			for _, s := range cx.Simplices() {
				require.LessOrEqual(t, s.Face.Dimension(), maxDim)
				for _, sub := range s.Face.SubFaces() {
					sv, ok := cx.Filtration(sub)
					require.True(t, ok, "missing sub-face %s", sub)
					require.LessOrEqual(t, sv, s.Filtration, "%s <= %s", sub, s.Face)
				}
			}
		}
	}
}

func TestAssembleDoesNotMutateCounts(t *testing.T) {
	t.Parallel()

	e, err := simplex.NewEnumerator(1, simplex.CountLiteral)
	require.NoError(t, err)
	counts := e.Count([][]string{authors(5)})
	before := counts.Count(simplex.NewFace("a00", "a01"))
	_, err = simplex.Assemble(counts, 50, 1)
	require.NoError(t, err)
	require.Equal(t, before, counts.Count(simplex.NewFace("a00", "a01")))
}
