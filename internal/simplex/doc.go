// Package simplex builds filtered simplicial complexes from co-authorship
// data.
//
// The pipeline for one time window is:
//
//   - Enumerator.Count walks every document's author set and tallies each
//     candidate face (a sorted subset of authors) up to MaxDimension+1
//     vertices. Capping the face size keeps the subset explosion polynomial in
//     the author count.
//   - AssignFiltration maps counts to filtration values C - count, so
//     frequent collaborations enter the complex earlier.
//   - RepairMonotone raises every face to at least the value of its faces, the
//     invariant persistence computations depend on.
//   - Assemble inserts the tagged faces into a Complex and verifies the
//     invariant.
//
// Every structure here is scoped to a single window and is never shared.
package simplex
