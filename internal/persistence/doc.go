// Package persistence computes persistent homology of filtered simplicial
// complexes.
//
// The pipeline depends only on the Engine interface. The bundled
// ReductionEngine implements the standard column reduction of the boundary
// matrix with Z/2 coefficients:
//
//  1. Order simplices by (filtration, dimension) so every face precedes its
//     cofaces.
//  2. Build each column as the sorted row indices of the simplex's
//     codimension-one faces.
//  3. Left-to-right, add earlier reduced columns with the same lowest row
//     until the lowest row is unique or the column is empty.
//  4. A non-empty reduced column j with lowest row i is the pair (i, j); an
//     empty column whose simplex never becomes a lowest row is an essential
//     class with infinite death.
//
// Complexity is O(n^3) in the worst case for n simplices and near linear on
// the sparse complexes produced by co-authorship data.
//
// Engines never repair their input: a complex whose filtration is not
// monotone is rejected with ErrNonMonotone.
package persistence
