package plotting

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"github.com/YuminosukeSato/irisvc/metrics"
	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
)

// DefaultPalette is the sequential brewer palette of the heat map.
const DefaultPalette = "Blues"

type heatMapConfig struct {
	title   string
	palette string
	colors  int
	xLabel  string
	yLabel  string
}

// HeatMapOption configures ConfusionMatrixHeatMap.
type HeatMapOption func(*heatMapConfig)

// WithTitle sets the figure title.
func WithTitle(title string) HeatMapOption {
	return func(c *heatMapConfig) {
		c.title = title
	}
}

// WithPalette selects a sequential ColorBrewer palette and its size.
func WithPalette(name string, colors int) HeatMapOption {
	return func(c *heatMapConfig) {
		c.palette = name
		c.colors = colors
	}
}

// WithAxisLabels sets the axis titles.
func WithAxisLabels(x, y string) HeatMapOption {
	return func(c *heatMapConfig) {
		c.xLabel = x
		c.yLabel = y
	}
}

// confusionGrid adapts a confusion matrix to plotter.GridXYZ. Grid row 0
// is drawn at the bottom, so rows are flipped to put the first label on
// top.
type confusionGrid struct {
	cm *metrics.Confusion
	n  int
}

func (g confusionGrid) Dims() (c, r int)   { return g.n, g.n }
func (g confusionGrid) Z(c, r int) float64 { return g.cm.Counts.At(g.n-1-r, c) }
func (g confusionGrid) X(c int) float64    { return float64(c) }
func (g confusionGrid) Y(r int) float64    { return float64(r) }

// ConfusionMatrixHeatMap draws the confusion matrix with the true label
// on the Y axis, the predicted label on the X axis and the count written
// in every cell.
func ConfusionMatrixHeatMap(cm *metrics.Confusion, opts ...HeatMapOption) (*plot.Plot, error) {
	cfg := heatMapConfig{
		title:   "Confusion matrix",
		palette: DefaultPalette,
		colors:  9,
		xLabel:  "Predicted label",
		yLabel:  "True label",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cm == nil || len(cm.Labels) == 0 {
		return nil, errors.NewModelError("ConfusionMatrixHeatMap", "empty matrix", errors.ErrEmptyData)
	}

	pal, err := brewer.GetPalette(brewer.TypeSequential, cfg.palette, cfg.colors)
	if err != nil {
		return nil, errors.Wrapf(err, "palette %q", cfg.palette)
	}

	n := len(cm.Labels)
	grid := confusionGrid{cm: cm, n: n}
	hm := plotter.NewHeatMap(grid, pal)
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = cfg.xLabel
	p.Y.Label.Text = cfg.yLabel
	p.Add(hm)

	cells, err := cellLabels(grid, hm.Min, hm.Max)
	if err != nil {
		return nil, err
	}
	p.Add(cells)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, label := range cm.Labels {
		xTicks[i] = plot.Tick{Value: float64(i), Label: label}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5

	log.GetLoggerWithName("plotting").Debug("Built confusion matrix heat map",
		log.OperationKey, log.OperationRender,
		log.ClassesKey, n,
	)
	return p, nil
}

// cellLabels writes each count at its cell center, white on the darker
// half of the palette.
func cellLabels(g confusionGrid, lo, hi float64) (*plotter.Labels, error) {
	c, r := g.Dims()
	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, c*r),
		Labels: make([]string, 0, c*r),
	}
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			data.XYs = append(data.XYs, plotter.XY{X: g.X(x), Y: g.Y(y)})
			data.Labels = append(data.Labels, strconv.Itoa(int(g.Z(x, y))))
		}
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, errors.Wrap(err, "cell labels")
	}
	mid := lo + (hi-lo)/2
	i := 0
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YCenter
			if g.Z(x, y) > mid {
				labels.TextStyle[i].Color = color.White
			} else {
				labels.TextStyle[i].Color = color.Black
			}
			i++
		}
	}
	return labels, nil
}
