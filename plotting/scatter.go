// Package plotting draws the iris figures with gonum/plot: per-class
// scatter plots and a confusion matrix heat map.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
	"github.com/YuminosukeSato/irisvc/sklearn/datasets"
)

// Scatter plots yCol against xCol with one series per class, each drawn
// in the frame's class color and named in the legend.
func Scatter(frame *datasets.Frame, xCol, yCol string) (*plot.Plot, error) {
	xs, err := frame.Column(xCol)
	if err != nil {
		return nil, err
	}
	ys, err := frame.Column(yCol)
	if err != nil {
		return nil, err
	}
	if frame.Len() == 0 {
		return nil, errors.NewModelError("Scatter", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", yCol, xCol)
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	target := frame.Target()
	colors := frame.Colors()
	for k, name := range frame.TargetNames() {
		pts := make(plotter.XYs, 0, len(target))
		first := -1
		for i, c := range target {
			if c != k {
				continue
			}
			if first < 0 {
				first = i
			}
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
		if first < 0 {
			continue
		}

		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "scatter series %q", name)
		}
		s.Color = colors[first]
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(name, s)
	}

	log.GetLoggerWithName("plotting").Debug("Built scatter plot",
		log.OperationKey, log.OperationRender,
		log.SamplesKey, frame.Len(),
		"x", xCol,
		"y", yCol,
	)
	return p, nil
}
