package simplex

// DefaultCeiling is the constant C of the C - count filtration.
const DefaultCeiling = 50.0

// AssignFiltration maps every counted face to ceiling - count. More frequent
// collaborations get lower values and enter the complex earlier.
func AssignFiltration(counts *Counts, ceiling float64) map[string]float64 {
	values := make(map[string]float64, counts.Len())
	for key, n := range counts.counts {
		values[key] = ceiling - float64(n)
	}
	return values
}

// RepairMonotone raises each face's value to the maximum value among its
// codimension-one faces. faces must be ordered by non-decreasing dimension so
// that every sub-face is final before its cofaces are visited; one sweep then
// restores monotonicity for the whole face poset. Faces missing from values
// are ignored. It returns the number of faces whose value was raised.
func RepairMonotone(faces []Face, values map[string]float64) int {
	raised := 0
	for _, f := range faces {
		key := f.Key()
		v, ok := values[key]
		if !ok {
			continue
		}
		highest := v
		for _, sub := range f.SubFaces() {
			if sv, ok := values[sub.Key()]; ok && sv > highest {
				highest = sv
			}
		}
		if highest > v {
			values[key] = highest
			raised++
		}
	}
	return raised
}

// CheckMonotone returns the first face whose value is below one of its
// sub-faces, or nil when values are monotone.
func CheckMonotone(faces []Face, values map[string]float64) Face {
	for _, f := range faces {
		v, ok := values[f.Key()]
		if !ok {
			continue
		}
		for _, sub := range f.SubFaces() {
			if sv, ok := values[sub.Key()]; ok && sv > v {
				return f
			}
		}
	}
	return nil
}
