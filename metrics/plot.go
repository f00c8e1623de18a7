package metrics

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// PlotROC renders the ROC curve of points to path. The image format follows
// the file extension (png, svg, pdf, ...).
func PlotROC(points []ROCPoint, auc float64, path string) error {
	if len(points) == 0 {
		return errors.NewValueError("PlotROC", "no points")
	}

	p := plot.New()
	p.Title.Text = "ROC curve"
	p.X.Label.Text = "False positive rate FP/(TN+FP)"
	p.Y.Label.Text = "True positive rate TP/(TP+FN)"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if errors.IsUndefined(pt.FPR) || errors.IsUndefined(pt.TPR) {
			continue
		}
		pts = append(pts, plotter.XY{X: pt.FPR, Y: pt.TPR})
	}
	if len(pts) == 0 {
		return errors.NewValueError("PlotROC", "all rates are undefined")
	}

	curve, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build ROC line")
	}
	curve.Color = color.RGBA{R: 255, A: 255}
	curve.LineStyle.Width = vg.Points(2)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrap(err, "failed to build chance line")
	}
	chance.Color = color.Gray{Y: 128}
	chance.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(curve, chance)
	p.Legend.Add(fmt.Sprintf("AUC = %.3f", auc), curve)
	p.Legend.Add("chance", chance)
	p.Legend.Top = false
	p.Legend.Left = false

	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save ROC plot to %s", path)
	}
	return nil
}
