package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the rendered canvas size. Equal width and height keep the squared
// axes at an equal aspect ratio.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// SquareInches returns a square canvas of the given edge length.
func SquareInches(edge float64) Size {
	return Size{Width: vg.Length(edge) * vg.Inch, Height: vg.Length(edge) * vg.Inch}
}

var diagonalColor = color.NRGBA{A: 0x80}

// Render draws plan as a PNG image to w.
func Render(plan Plan, size Size, w io.Writer) error {
	p, err := newPlot(plan)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return fmt.Errorf("prepare png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Save renders plan to path, creating the parent directory if needed.
func Save(plan Plan, size Size, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create diagram directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create diagram file: %w", err)
	}
	if err := Render(plan, size, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func newPlot(plan Plan) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = plan.Title
	p.X.Label.Text = plan.XLabel
	p.Y.Label.Text = plan.YLabel
	p.Legend.Top = true
	p.Legend.Left = false

	for _, s := range plan.Finite {
		sc, err := plotter.NewScatter(toXYs(s.Points))
		if err != nil {
			return nil, fmt.Errorf("scatter %s: %w", s.Label, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(s.Dimension)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(s.Label, sc)
	}
	for _, s := range plan.Infinite {
		sc, err := plotter.NewScatter(toXYs(s.Points))
		if err != nil {
			return nil, fmt.Errorf("scatter essential H%d: %w", s.Dimension, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(s.Dimension)
		sc.GlyphStyle.Shape = draw.TriangleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
	}

	diagonal, err := plotter.NewLine(plotter.XYs{
		{X: plan.Diagonal[0].X, Y: plan.Diagonal[0].Y},
		{X: plan.Diagonal[1].X, Y: plan.Diagonal[1].Y},
	})
	if err != nil {
		return nil, fmt.Errorf("diagonal: %w", err)
	}
	diagonal.LineStyle.Color = diagonalColor
	diagonal.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(diagonal)

	// Add widens the axes to fit the data, so the limits are applied last.
	xMin, xMax := padDegenerate(plan.Axes.XMin, plan.Axes.XMax)
	yMin, yMax := padDegenerate(plan.Axes.YMin, plan.Axes.PlotYMax)
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax
	return p, nil
}

// padDegenerate widens a zero-width range so tick generation has room.
func padDegenerate(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	return lo - 0.5, lo + 0.5
}

func toXYs(points []Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}
