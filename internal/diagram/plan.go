package diagram

import (
	"fmt"
	"math"
	"slices"

	"collabtopo/internal/persistence"
)

const (
	// infiniteOffset places essential points slightly above the visible range.
	infiniteOffset = 0.1
	// infiniteHeadroom extends the y axis so essential markers stay visible.
	infiniteHeadroom = 0.2

	fallbackMin = 0.0
	fallbackMax = 1.0
)

// Bounds holds optional manual axis limits. A nil field means data driven.
type Bounds struct {
	XMin, XMax, YMin, YMax *float64
}

// ManualBounds fixes all four limits.
func ManualBounds(xMin, xMax, yMin, yMax float64) Bounds {
	return Bounds{XMin: &xMin, XMax: &xMax, YMin: &yMin, YMax: &yMax}
}

// Axes are the resolved, squared plot limits.
type Axes struct {
	XMin, XMax float64
	YMin, YMax float64
	// PlotYMax is the drawn upper y limit; it exceeds YMax only when essential
	// points need room.
	PlotYMax float64
}

// Point is one scatter coordinate.
type Point struct {
	X, Y float64
}

// Series is the scatter data of one homology dimension.
type Series struct {
	Dimension int
	Label     string
	Points    []Point
}

// Plan is everything needed to draw one persistence diagram.
type Plan struct {
	Title    string
	XLabel   string
	YLabel   string
	Axes     Axes
	Finite   []Series
	Infinite []Series
	Diagonal [2]Point
}

// Empty reports whether the plan has no points at all.
func (p Plan) Empty() bool {
	return len(p.Finite) == 0 && len(p.Infinite) == 0
}

// Partition splits pairs into finite-death and infinite-death pairs,
// preserving order.
func Partition(pairs []persistence.Pair) (finite, infinite []persistence.Pair) {
	for _, p := range pairs {
		if p.Essential() {
			infinite = append(infinite, p)
		} else {
			finite = append(finite, p)
		}
	}
	return finite, infinite
}

// DataBounds returns the min and max over every finite birth and every finite
// death, or 0 and 1 when there is no finite value.
func DataBounds(pairs []persistence.Pair) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	seen := false
	observe := func(v float64) {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return
		}
		seen = true
		lo = min(lo, v)
		hi = max(hi, v)
	}
	for _, p := range pairs {
		observe(p.Birth)
		if !p.Essential() {
			observe(p.Death)
		}
	}
	if !seen {
		return fallbackMin, fallbackMax
	}
	return lo, hi
}

// Resolve applies manual overrides to the data-driven bounds and then squares
// the result: both axes span [min(xMin, yMin), max(xMax, yMax)].
func Resolve(pairs []persistence.Pair, manual Bounds) Axes {
	lo, hi := DataBounds(pairs)
	xMin, xMax, yMin, yMax := lo, hi, lo, hi
	if manual.XMin != nil {
		xMin = *manual.XMin
	}
	if manual.XMax != nil {
		xMax = *manual.XMax
	}
	if manual.YMin != nil {
		yMin = *manual.YMin
	}
	if manual.YMax != nil {
		yMax = *manual.YMax
	}
	axes := Axes{XMin: min(xMin, yMin), XMax: max(xMax, yMax)}
	axes.YMin, axes.YMax = axes.XMin, axes.XMax
	axes.PlotYMax = axes.YMax
	return axes
}

// Build lays out the diagram for one set of pairs.
func Build(pairs []persistence.Pair, manual Bounds) Plan {
	finite, infinite := Partition(pairs)
	axes := Resolve(pairs, manual)

	plan := Plan{
		Title:    "Persistence diagram",
		XLabel:   "Birth",
		YLabel:   "Death",
		Axes:     axes,
		Diagonal: [2]Point{{X: axes.XMin, Y: axes.XMin}, {X: axes.XMax, Y: axes.XMax}},
	}
	plan.Finite = groupByDimension(finite, func(p persistence.Pair) Point {
		return Point{X: p.Birth, Y: p.Death}
	})
	if len(infinite) > 0 {
		y := axes.YMax + infiniteOffset
		plan.Infinite = groupByDimension(infinite, func(p persistence.Pair) Point {
			return Point{X: p.Birth, Y: y}
		})
		for i := range plan.Infinite {
			plan.Infinite[i].Label = ""
		}
		plan.Axes.PlotYMax = axes.YMax + infiniteHeadroom
	}
	return plan
}

func groupByDimension(pairs []persistence.Pair, point func(persistence.Pair) Point) []Series {
	byDim := make(map[int][]Point)
	for _, p := range pairs {
		byDim[p.Dimension] = append(byDim[p.Dimension], point(p))
	}
	dims := make([]int, 0, len(byDim))
	for d := range byDim {
		dims = append(dims, d)
	}
	slices.Sort(dims)
	out := make([]Series, 0, len(dims))
	for _, d := range dims {
		out = append(out, Series{Dimension: d, Label: fmt.Sprintf("H%d", d), Points: byDim[d]})
	}
	return out
}
