// Package plotting renders the Lorenz curve to an image file. It is kept
// apart from the stats package so the numerical core has no graphics
// dependency.
package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/microdata-labs/hbstat/internal/stats"
)

// RenderLorenz writes a PNG of the Lorenz curve with the equality
// diagonal for reference, creating the parent directory if needed.
func RenderLorenz(curve *stats.Curve, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	p := plot.New()
	p.Title.Text = "Lorenz Curve"
	p.X.Label.Text = "Cumulative Population Share"
	p.Y.Label.Text = "Cumulative Expenditure Share"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(curve.Points))
	for i, cp := range curve.Points {
		pts[i].X = cp.CumPopulation
		pts[i].Y = cp.CumExpenditure
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build curve line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return fmt.Errorf("failed to build equality line: %w", err)
	}
	diagonal.Color = color.Black
	diagonal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(line, diagonal)
	p.Legend.Add("Lorenz Curve", line)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
