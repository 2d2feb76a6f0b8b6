package datasets

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

// Frame is an immutable labeled sample table: a numeric feature matrix,
// an integer target per row and the derived class name and color columns.
type Frame struct {
	featureNames []string
	data         *mat.Dense
	target       []int
	targetNames  []string
	colors       []color.Color
}

// NewFrame builds a Frame. data is not copied. classColors maps a target
// value to the color of its rows; a target without a color is drawn black.
func NewFrame(featureNames []string, data *mat.Dense, target []int, targetNames []string, classColors map[int]color.Color) (*Frame, error) {
	r, c := data.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("NewFrame", "empty data", errors.ErrEmptyData)
	}
	if len(featureNames) != c {
		return nil, errors.NewDimensionError("NewFrame", c, len(featureNames), 1)
	}
	if len(target) != r {
		return nil, errors.NewDimensionError("NewFrame", r, len(target), 0)
	}

	colors := make([]color.Color, r)
	for i, t := range target {
		if t < 0 || t >= len(targetNames) {
			return nil, errors.NewValidationError("target", fmt.Sprintf("row %d has no class name", i), t)
		}
		if col, ok := classColors[t]; ok {
			colors[i] = col
		} else {
			colors[i] = color.Black
		}
	}

	return &Frame{
		featureNames: append([]string(nil), featureNames...),
		data:         data,
		target:       append([]int(nil), target...),
		targetNames:  append([]string(nil), targetNames...),
		colors:       colors,
	}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.target)
}

// FeatureNames returns the feature column names in order.
func (f *Frame) FeatureNames() []string {
	return append([]string(nil), f.featureNames...)
}

// Features returns a copy of the feature matrix.
func (f *Frame) Features() *mat.Dense {
	return mat.DenseCopyOf(f.data)
}

// Column returns a copy of the named feature column.
func (f *Frame) Column(name string) ([]float64, error) {
	for j, fn := range f.featureNames {
		if fn == name {
			return mat.Col(nil, j, f.data), nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnknownColumn, "column %q", name)
}

// Target returns the integer class of each row.
func (f *Frame) Target() []int {
	return append([]int(nil), f.target...)
}

// TargetNames returns the class names indexed by target value.
func (f *Frame) TargetNames() []string {
	return append([]string(nil), f.targetNames...)
}

// Labels returns the derived class name of each row.
func (f *Frame) Labels() []string {
	labels := make([]string, len(f.target))
	for i, t := range f.target {
		labels[i] = f.targetNames[t]
	}
	return labels
}

// Colors returns the derived per-row color column.
func (f *Frame) Colors() []color.Color {
	return append([]color.Color(nil), f.colors...)
}

// Subset returns a new Frame holding the given rows in the given order.
func (f *Frame) Subset(indices []int) (*Frame, error) {
	_, c := f.data.Dims()
	if len(indices) == 0 {
		return nil, errors.NewModelError("Frame.Subset", "no rows selected", errors.ErrEmptyData)
	}

	data := mat.NewDense(len(indices), c, nil)
	target := make([]int, len(indices))
	colors := make([]color.Color, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= f.Len() {
			return nil, errors.NewValueError("Frame.Subset", fmt.Sprintf("row index %d out of range [0, %d)", idx, f.Len()))
		}
		data.SetRow(i, f.data.RawRowView(idx))
		target[i] = f.target[idx]
		colors[i] = f.colors[idx]
	}

	return &Frame{
		featureNames: f.featureNames,
		data:         data,
		target:       target,
		targetNames:  f.targetNames,
		colors:       colors,
	}, nil
}

// FeatureSummary holds descriptive statistics of one feature column.
type FeatureSummary struct {
	Name string
	Mean float64
	Std  float64 // sample standard deviation, as pandas describe()
	Min  float64
	Max  float64
}

// Describe summarizes every feature column.
func (f *Frame) Describe() []FeatureSummary {
	out := make([]FeatureSummary, len(f.featureNames))
	for j, name := range f.featureNames {
		col := mat.Col(nil, j, f.data)
		out[j] = FeatureSummary{
			Name: name,
			Mean: stat.Mean(col, nil),
			Std:  stat.StdDev(col, nil),
			Min:  floats.Min(col),
			Max:  floats.Max(col),
		}
	}
	return out
}

// FormatDescribe renders summaries as a fixed-width table.
func FormatDescribe(summaries []FeatureSummary) string {
	width := len("feature")
	for _, s := range summaries {
		width = max(width, len(s.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %8s %8s %8s %8s\n", width, "feature", "mean", "std", "min", "max")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%-*s %8.3f %8.3f %8.3f %8.3f\n", width, s.Name, s.Mean, s.Std, s.Min, s.Max)
	}
	return b.String()
}
